package value

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// EncodeOptions controls JSON serialization of a converted value.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level. Zero produces
	// compact single-line output.
	Indent int

	// EscapeASCII escapes every non-ASCII rune as \uXXXX.
	EscapeASCII bool
}

// Encode serializes a converted value to JSON. Maps keep insertion order.
func Encode(v any, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := encoder{buf: &buf, opts: opts}
	if err := enc.encode(v, 0); err != nil {
		return nil, err
	}
	if opts.Indent > 0 {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// MarshalJSON emits the map compactly in insertion order, so a Map nested in
// structures handed to encoding/json keeps document order.
func (m *Map) MarshalJSON() ([]byte, error) {
	return Encode(m, EncodeOptions{})
}

type encoder struct {
	buf  *bytes.Buffer
	opts EncodeOptions
}

func (e encoder) encode(v any, depth int) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case int:
		e.buf.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("cannot encode %v as JSON number", t)
		}
		e.buf.Write(strconv.AppendFloat(nil, t, 'g', -1, 64))
	case string:
		e.writeString(t)
	case *Map:
		return e.encodeMap(t, depth)
	case List:
		return e.encodeList(t, depth)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

func (e encoder) encodeMap(m *Map, depth int) error {
	if m == nil || m.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newlineIndent(depth + 1)
		e.writeString(k)
		e.buf.WriteByte(':')
		if e.opts.Indent > 0 {
			e.buf.WriteByte(' ')
		}
		v, _ := m.Get(k)
		if err := e.encode(v, depth+1); err != nil {
			return err
		}
	}
	e.newlineIndent(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e encoder) encodeList(l List, depth int) error {
	if len(l) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newlineIndent(depth + 1)
		if err := e.encode(v, depth+1); err != nil {
			return err
		}
	}
	e.newlineIndent(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e encoder) newlineIndent(depth int) {
	if e.opts.Indent == 0 {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth*e.opts.Indent; i++ {
		e.buf.WriteByte(' ')
	}
}

const hexDigits = "0123456789abcdef"

func (e encoder) writeString(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		default:
			switch {
			case r < 0x20:
				e.writeEscaped(uint16(r))
			case r < utf8.RuneSelf:
				e.buf.WriteByte(byte(r))
			case e.opts.EscapeASCII:
				if r > 0xFFFF {
					hi, lo := utf16.EncodeRune(r)
					e.writeEscaped(uint16(hi))
					e.writeEscaped(uint16(lo))
				} else {
					e.writeEscaped(uint16(r))
				}
			default:
				e.buf.WriteRune(r)
			}
		}
	}
	e.buf.WriteByte('"')
}

func (e encoder) writeEscaped(u uint16) {
	e.buf.WriteString(`\u`)
	e.buf.WriteByte(hexDigits[u>>12&0xf])
	e.buf.WriteByte(hexDigits[u>>8&0xf])
	e.buf.WriteByte(hexDigits[u>>4&0xf])
	e.buf.WriteByte(hexDigits[u&0xf])
}
