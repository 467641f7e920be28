package convert

// Settings configures how an XML tree is mapped to a value. A Settings value
// is immutable once built; layering happens in the conversion facade
// (built-in defaults, then instance config, then per-call overrides).
type Settings struct {
	// PreserveAttributes stores element attributes under "@attributes".
	PreserveAttributes bool

	// CleanNamespaces strips namespace qualifiers from tag names before
	// they are used as keys.
	CleanNamespaces bool

	// AutoTypeConversion coerces leaf text to typed scalars; when false
	// text is kept verbatim as a string.
	AutoTypeConversion bool

	// PreserveOrder keeps keys in document order. The order-preserving map
	// is the only implementation; the flag exists for configuration
	// symmetry and is always honored.
	PreserveOrder bool
}

// DefaultSettings returns the built-in conversion defaults.
func DefaultSettings() Settings {
	return Settings{
		PreserveAttributes: true,
		CleanNamespaces:    true,
		AutoTypeConversion: true,
		PreserveOrder:      true,
	}
}
