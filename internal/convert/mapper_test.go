package convert_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xmlconv/internal/convert"
	"github.com/rezonia/xmlconv/internal/value"
)

func mapXML(t *testing.T, xml string, s convert.Settings) any {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return convert.MapElement(doc.Root(), s)
}

func TestMapElement_SimpleDocument(t *testing.T) {
	result := mapXML(t, `<person><name>Ana</name><age>30</age></person>`, convert.DefaultSettings())

	m, ok := result.(*value.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age"}, m.Keys())

	name, _ := m.Get("name")
	assert.Equal(t, "Ana", name)
	age, _ := m.Get("age")
	assert.Equal(t, int64(30), age)
}

func TestMapElement_ScalarCollapse(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		expected any
	}{
		{name: "integer leaf", xml: `<answer>42</answer>`, expected: int64(42)},
		{name: "decimal leaf", xml: `<v>12,50</v>`, expected: 12.5},
		{name: "bool leaf", xml: `<flag>true</flag>`, expected: true},
		{name: "text leaf", xml: `<name>Ana</name>`, expected: "Ana"},
		{name: "empty leaf", xml: `<empty></empty>`, expected: nil},
		{name: "self closing leaf", xml: `<empty/>`, expected: nil},
		{name: "whitespace only leaf", xml: "<empty>\n\t  </empty>", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapXML(t, tt.xml, convert.DefaultSettings()))
		})
	}
}

func TestMapElement_RepeatedChildren(t *testing.T) {
	result := mapXML(t, `<items><item>1</item><item>2</item><item>3</item><other>x</other></items>`, convert.DefaultSettings())

	m := result.(*value.Map)
	assert.Equal(t, []string{"item", "other"}, m.Keys())

	items, _ := m.Get("item")
	assert.Equal(t, value.List{int64(1), int64(2), int64(3)}, items)
}

func TestMapElement_AttributesOnLeaf(t *testing.T) {
	result := mapXML(t, `<total currency="BRL">199.90</total>`, convert.DefaultSettings())

	m := result.(*value.Map)
	assert.Equal(t, []string{"@attributes", "_value"}, m.Keys())

	attrs, _ := m.Get("@attributes")
	currency, _ := attrs.(*value.Map).Get("currency")
	// Attribute values are never coerced.
	assert.Equal(t, "BRL", currency)

	v, _ := m.Get("_value")
	assert.Equal(t, 199.9, v)
}

func TestMapElement_AttributesOnlyElement(t *testing.T) {
	result := mapXML(t, `<det nItem="1"/>`, convert.DefaultSettings())

	m := result.(*value.Map)
	assert.Equal(t, []string{"@attributes"}, m.Keys())
	attrs, _ := m.Get("@attributes")
	n, _ := attrs.(*value.Map).Get("nItem")
	assert.Equal(t, "1", n)
}

func TestMapElement_AttributesDisabled(t *testing.T) {
	s := convert.DefaultSettings()
	s.PreserveAttributes = false

	result := mapXML(t, `<total currency="BRL">199.90</total>`, s)
	assert.Equal(t, 199.9, result)

	result = mapXML(t, `<det nItem="1"/>`, s)
	assert.Nil(t, result)
}

func TestMapElement_TypeConversionDisabled(t *testing.T) {
	s := convert.DefaultSettings()
	s.AutoTypeConversion = false

	result := mapXML(t, `<person><age>30</age></person>`, s)
	age, _ := result.(*value.Map).Get("age")
	assert.Equal(t, "30", age)
}

func TestMapElement_TextWithChildren(t *testing.T) {
	result := mapXML(t, `<p>intro<b>bold</b></p>`, convert.DefaultSettings())

	m := result.(*value.Map)
	assert.Equal(t, []string{"_text", "b"}, m.Keys())

	text, _ := m.Get("_text")
	assert.Equal(t, "intro", text)
	b, _ := m.Get("b")
	assert.Equal(t, "bold", b)
}

func TestMapElement_TextKeyCollision(t *testing.T) {
	// A real child named _text overwrites the captured direct text.
	result := mapXML(t, `<p>intro<_text>child</_text></p>`, convert.DefaultSettings())

	m := result.(*value.Map)
	assert.Equal(t, []string{"_text"}, m.Keys())
	text, _ := m.Get("_text")
	assert.Equal(t, "child", text)
}

func TestMapElement_NamespaceCleaning(t *testing.T) {
	xml := `<nfe:root xmlns:nfe="http://www.portalfiscal.inf.br/nfe"><nfe:child>1</nfe:child></nfe:root>`

	result := mapXML(t, xml, convert.DefaultSettings())
	m := result.(*value.Map)
	assert.Equal(t, []string{"child"}, m.Keys())

	s := convert.DefaultSettings()
	s.CleanNamespaces = false
	result = mapXML(t, xml, s)
	m = result.(*value.Map)
	assert.Equal(t, []string{"nfe:child"}, m.Keys())
}

func TestMapElement_XmlnsNotAnAttribute(t *testing.T) {
	xml := `<root xmlns="http://example.com" xmlns:x="http://example.com/x" id="7"><x:leaf>1</x:leaf></root>`

	result := mapXML(t, xml, convert.DefaultSettings())
	m := result.(*value.Map)

	attrs, ok := m.Get("@attributes")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, attrs.(*value.Map).Keys())
}

func TestMapElement_DeepNesting(t *testing.T) {
	result := mapXML(t, `<a><b><c><d>deep</d></c></b></a>`, convert.DefaultSettings())

	b, _ := result.(*value.Map).Get("b")
	c, _ := b.(*value.Map).Get("c")
	d, _ := c.(*value.Map).Get("d")
	assert.Equal(t, "deep", d)
}

func TestRootTag(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<ns:root xmlns:ns="http://example.com"/>`))

	assert.Equal(t, "root", convert.RootTag(doc.Root(), convert.DefaultSettings()))

	s := convert.DefaultSettings()
	s.CleanNamespaces = false
	assert.Equal(t, "ns:root", convert.RootTag(doc.Root(), s))
}

func TestExtractNamespaces(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(
		`<root xmlns="http://example.com/default"><child xmlns:a="http://example.com/a"/></root>`))

	namespaces := convert.ExtractNamespaces(doc.Root())
	assert.Equal(t, map[string]string{
		"default": "http://example.com/default",
		"a":       "http://example.com/a",
	}, namespaces)
}
