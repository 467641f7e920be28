package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/xmlconv/internal/convert"
	"github.com/rezonia/xmlconv/internal/value"
)

func TestStripNamespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "braced URI", input: "{http://www.portalfiscal.inf.br/nfe}det", expected: "det"},
		{name: "no namespace", input: "det", expected: "det"},
		{name: "empty braces", input: "{}det", expected: "det"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert.StripNamespace(tt.input)
			assert.Equal(t, tt.expected, got)
			// Idempotent.
			assert.Equal(t, got, convert.StripNamespace(got))
		})
	}
}

func TestStripAllNamespaces(t *testing.T) {
	inner := value.NewMap()
	inner.Set("{http://example.com}leaf", int64(1))

	m := value.NewMap()
	m.Set("{http://example.com}root", inner)
	m.Set("plain", value.List{inner, "text"})

	cleaned := convert.StripAllNamespaces(m).(*value.Map)
	assert.Equal(t, []string{"root", "plain"}, cleaned.Keys())

	root, _ := cleaned.Get("root")
	assert.Equal(t, []string{"leaf"}, root.(*value.Map).Keys())

	list, _ := cleaned.Get("plain")
	assert.Equal(t, []string{"leaf"}, list.(value.List)[0].(*value.Map).Keys())
	assert.Equal(t, "text", list.(value.List)[1])
}
