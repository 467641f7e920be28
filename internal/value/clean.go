package value

// CleanOptions selects which empty values CleanEmpty removes.
type CleanOptions struct {
	RemoveEmptyStrings bool
	RemoveNulls        bool
	RemoveEmptyMaps    bool
	RemoveEmptyLists   bool
}

// CleanEmpty returns a copy of v with the selected empty values removed
// recursively. Scalars are returned unchanged.
func CleanEmpty(v any, opts CleanOptions) any {
	switch t := v.(type) {
	case *Map:
		cleaned := NewMap()
		t.Range(func(key string, entry any) bool {
			ce := CleanEmpty(entry, opts)
			if !opts.drop(ce) {
				cleaned.Set(key, ce)
			}
			return true
		})
		return cleaned
	case List:
		cleaned := make(List, 0, len(t))
		for _, item := range t {
			ci := CleanEmpty(item, opts)
			if !opts.drop(ci) {
				cleaned = append(cleaned, ci)
			}
		}
		return cleaned
	default:
		return v
	}
}

func (o CleanOptions) drop(v any) bool {
	switch t := v.(type) {
	case nil:
		return o.RemoveNulls
	case string:
		return o.RemoveEmptyStrings && t == ""
	case *Map:
		return o.RemoveEmptyMaps && t.Len() == 0
	case List:
		return o.RemoveEmptyLists && len(t) == 0
	}
	return false
}
