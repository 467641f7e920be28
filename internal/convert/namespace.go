package convert

import (
	"regexp"

	"github.com/rezonia/xmlconv/internal/value"
)

var namespacePattern = regexp.MustCompile(`\{.*\}`)

// StripNamespace removes a brace-delimited namespace URI from a qualified tag
// name ("{http://...}det" becomes "det"). Idempotent; no URI validation.
func StripNamespace(tag string) string {
	return namespacePattern.ReplaceAllString(tag, "")
}

// StripAllNamespaces returns a copy of a converted value with StripNamespace
// applied to every map key, recursively.
func StripAllNamespaces(v any) any {
	switch t := v.(type) {
	case *value.Map:
		cleaned := value.NewMap()
		t.Range(func(key string, entry any) bool {
			cleaned.Set(StripNamespace(key), StripAllNamespaces(entry))
			return true
		})
		return cleaned
	case value.List:
		cleaned := make(value.List, len(t))
		for i, item := range t {
			cleaned[i] = StripAllNamespaces(item)
		}
		return cleaned
	default:
		return v
	}
}
