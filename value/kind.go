package value

// Kind identifies which variant of the tagged union a Value currently
// holds. Every consumer of a Value is expected to switch exhaustively on
// Kind rather than performing type assertions against a dynamic interface.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindDecimal
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// StringStyle records the quoting convention a string literal used in its
// source text, so the format-preserving serializer can reproduce it without
// consulting the original bytes.
type StringStyle int

const (
	// StyleDouble is the default style for values constructed in memory.
	StyleDouble StringStyle = iota
	StyleSingle
	StyleTriple
	// StyleImplicit marks an unquoted key or value recognized by the
	// implicit-string scanner.
	StyleImplicit
)

func (s StringStyle) String() string {
	switch s {
	case StyleDouble:
		return "double"
	case StyleSingle:
		return "single"
	case StyleTriple:
		return "triple"
	case StyleImplicit:
		return "implicit"
	default:
		return "unknown"
	}
}
