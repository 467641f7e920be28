package fileio

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads a text file, trying each supported encoding in order:
// UTF-8 with BOM, plain UTF-8, Latin-1, Windows-1252. The first decode that
// yields non-blank content wins. The BOM check runs first because BOM bytes
// are themselves valid UTF-8 and must be stripped, not kept.
func ReadText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("read %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	for _, decode := range decoders {
		content, ok := decode(data)
		if ok && strings.TrimSpace(content) != "" {
			return content, nil
		}
	}
	return "", fmt.Errorf("read %s: no supported encoding decoded a non-empty result", path)
}

// decoders is the candidate ladder, in precedence order.
var decoders = []func([]byte) (string, bool){
	decodeUTF8BOM,
	decodeUTF8,
	decodeCharmapFunc(charmap.ISO8859_1),
	decodeCharmapFunc(charmap.Windows1252),
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8BOM(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return "", false
	}
	return decodeUTF8(data[len(utf8BOM):])
}

func decodeCharmapFunc(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(decoded), true
	}
}
