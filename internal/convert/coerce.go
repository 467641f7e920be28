package convert

import (
	"strconv"
	"strings"
)

// Coerce converts leaf element text to a typed scalar: nil for an empty
// string, bool for "true"/"false" (any case), int64 for whole numbers,
// float64 for decimals (a single comma is read as a Brazilian decimal
// separator), and the original string when nothing else applies. It never
// fails; every unparseable input falls through to the next rule.
func Coerce(text string) any {
	if text == "" {
		return nil
	}

	switch strings.ToLower(text) {
	case "true":
		return true
	case "false":
		return false
	}

	if isDigits(text) || (strings.HasPrefix(text, "-") && isDigits(text[1:])) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n
		}
	}

	if strings.ContainsAny(text, ".,") && !hasHexPrefix(text) {
		normalized := text
		if strings.Count(text, ",") == 1 {
			normalized = strings.Replace(text, ",", ".", 1)
		}
		if f, err := strconv.ParseFloat(normalized, 64); err == nil {
			return f
		}
	}

	return text
}

// hasHexPrefix reports a leading 0x/0X after an optional sign. ParseFloat
// accepts hex-float syntax like "0x1.8p3", which is not numeric text in a
// document and must stay a string.
func hasHexPrefix(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
