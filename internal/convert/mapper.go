package convert

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/xmlconv/internal/value"
)

// Reserved keys used by the mapper. They can collide with real tag names; no
// escaping is performed and the merge order in MapElement decides which value
// wins.
const (
	AttributesKey = "@attributes"
	TextKey       = "_text"
	ValueKey      = "_value"
)

// MapElement converts one XML element (and its subtree) into a value.
//
// An element with children becomes an ordered map keyed by child tag name;
// repeated same-named children are coalesced into a List in document order.
// A leaf element collapses to its coerced scalar unless attributes were
// captured, in which case the scalar is stored under "_value". A leaf with
// neither text nor attributes becomes nil.
//
// Recursion depth is bounded only by the input tree; pathologically deep
// documents can exhaust the stack.
func MapElement(el *etree.Element, s Settings) any {
	result := value.NewMap()

	if s.PreserveAttributes {
		if attrs := attributeMap(el); attrs.Len() > 0 {
			result.Set(AttributesKey, attrs)
		}
	}

	children := el.ChildElements()
	if len(children) > 0 {
		childMap := value.NewMap()
		for _, child := range children {
			key := tagName(child, s)
			data := MapElement(child, s)

			if existing, ok := childMap.Get(key); ok {
				if list, isList := existing.(value.List); isList {
					childMap.Set(key, append(list, data))
				} else {
					childMap.Set(key, value.List{existing, data})
				}
			} else {
				childMap.Set(key, data)
			}
		}

		// Direct text coexisting with children is kept as a trimmed
		// string, never coerced.
		if text := strings.TrimSpace(el.Text()); text != "" {
			result.Set(TextKey, text)
		}

		result.Merge(childMap)
		return result
	}

	text := strings.TrimSpace(el.Text())
	if text != "" {
		scalar := any(text)
		if s.AutoTypeConversion {
			scalar = Coerce(text)
		}
		if result.Len() == 0 {
			return scalar
		}
		result.Set(ValueKey, scalar)
		return result
	}

	if result.Len() == 0 {
		return nil
	}
	return result
}

// tagName resolves the key an element is stored under.
func tagName(el *etree.Element, s Settings) string {
	if s.CleanNamespaces {
		return StripNamespace(el.Tag)
	}
	return el.FullTag()
}

// RootTag returns the key for the document root under the given settings.
func RootTag(el *etree.Element, s Settings) string {
	return tagName(el, s)
}

// attributeMap builds the ordered "@attributes" map. Namespace declarations
// are not attributes of the document's data and are skipped; attribute
// values are always kept as strings.
func attributeMap(el *etree.Element) *value.Map {
	attrs := value.NewMap()
	for _, a := range el.Attr {
		if a.Key == "xmlns" || a.Space == "xmlns" {
			continue
		}
		attrs.Set(a.FullKey(), a.Value)
	}
	return attrs
}

// ExtractNamespaces collects the namespace declarations in a subtree as a
// prefix to URI mapping. The default namespace is reported under "default".
func ExtractNamespaces(el *etree.Element) map[string]string {
	namespaces := make(map[string]string)
	collectNamespaces(el, namespaces)
	return namespaces
}

func collectNamespaces(el *etree.Element, out map[string]string) {
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns":
			out[a.Key] = a.Value
		case a.Key == "xmlns":
			out["default"] = a.Value
		}
	}
	for _, child := range el.ChildElements() {
		collectNamespaces(child, out)
	}
}

// ElementPath returns a slash-separated path from the document root to el,
// e.g. "/nfeProc/NFe/infNFe".
func ElementPath(el *etree.Element) string {
	return el.GetPath()
}
