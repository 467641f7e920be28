package nfe

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCNPJ applies the 14-digit CNPJ mask (NN.NNN.NNN/NNNN-NN). Any other
// length passes through unchanged.
func FormatCNPJ(document string) string {
	if len(document) != 14 {
		return document
	}
	return document[:2] + "." + document[2:5] + "." + document[5:8] + "/" + document[8:12] + "-" + document[12:]
}

// FormatCPF applies the 11-digit CPF mask (NNN.NNN.NNN-NN). Any other length
// passes through unchanged.
func FormatCPF(document string) string {
	if len(document) != 11 {
		return document
	}
	return document[:3] + "." + document[3:6] + "." + document[6:9] + "-" + document[9:]
}

// FormatCEP applies the 8-digit postal code mask (NNNNN-NNN). Any other
// length passes through unchanged.
func FormatCEP(cep string) string {
	if len(cep) != 8 {
		return cep
	}
	return cep[:5] + "-" + cep[5:]
}

// FormatPhone applies the Brazilian phone masks for 10 and 11 digit numbers.
// Any other length passes through unchanged.
func FormatPhone(phone string) string {
	digits := onlyDigits(phone)
	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return phone
	}
}

// FormatCurrency renders a monetary value as "R$ N.NN" with exactly two
// decimal digits. The second return is false when the value does not parse
// as a number.
func FormatCurrency(v any) (string, bool) {
	s := stringify(v)
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	return "R$ " + d.StringFixed(2), true
}

// ParseMonetary reads a Brazilian or international monetary string into a
// decimal. Handles "1.234.567,89", "1,234,567.89" and plain "1234,56".
func ParseMonetary(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = parts[0] + "." + parts[1]
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// stringify renders a converted scalar back to its source text. Type
// coercion may have turned digit strings into numbers before extraction.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
