package value

// Unset is the sentinel stored in a line-count metadata field that has
// never been assigned. It is distinct from 0, which means "immediately
// adjacent, no blank line."
const Unset = -1

// Flags is a small bitfield of boolean properties attached to a value's
// formatting metadata. Bit 31 is reserved as a presence sentinel so a zero
// Flags value (no bits set at all) can be told apart from "explicitly set,
// all flags false."
type Flags uint32

const flagsInitialized Flags = 1 << 31

const (
	// FlagRootOmitted marks a top-level object whose enclosing braces were
	// absent in the source text.
	FlagRootOmitted Flags = 1 << iota
	// FlagTrailingComma marks a container whose last member was followed by
	// a comma before the closing delimiter.
	FlagTrailingComma
	// FlagSameLine marks a member or element that began on the same source
	// line as whatever preceded it (the previous sibling, or the
	// container's opening delimiter). The XJS serializer's condensation
	// scan reads this per-child, at write time, rather than trusting a
	// single precomputed container-level bit.
	FlagSameLine
	// FlagCommaAfter marks a non-last member or element that was followed
	// by an explicit ',' in source, as opposed to relying on a line break
	// alone to separate it from its successor. Set on the member's own
	// value, not on the enclosing container.
	FlagCommaAfter
)

// newFlags returns a Flags value with no optional bits set but marked as
// initialized, so IsInitialized reports true.
func newFlags() Flags {
	return flagsInitialized
}

// IsInitialized reports whether this Flags value has ever been explicitly
// assigned, as opposed to being the zero value of an unset Metadata.
func (f Flags) IsInitialized() bool {
	return f&flagsInitialized != 0
}

// Has reports whether bit is set.
func (f Flags) Has(bit Flags) bool {
	return f&bit != 0
}

// With returns a copy of f with bit set, marked initialized.
func (f Flags) With(bit Flags) Flags {
	return f | bit | flagsInitialized
}

// Without returns a copy of f with bit cleared, marked initialized.
func (f Flags) Without(bit Flags) Flags {
	return (f &^ bit) | flagsInitialized
}

// Metadata holds the formatting trivia attached to a value or object
// member: blank-line counts around it, its comments, and a small flag set.
// All line-count fields default to Unset, meaning "not recorded" rather
// than "zero blank lines" - the difference matters when a value is
// constructed programmatically and later serialized with default
// formatting rules rather than preserved verbatim.
type Metadata struct {
	// LinesAbove is the number of blank lines between the previous sibling
	// (or the opening delimiter) and this value.
	LinesAbove int
	// LinesBetween is the number of blank lines between a member's key and
	// its value, when they are not on the same line.
	LinesBetween int
	// LinesTrailing is the number of blank lines between a container's last
	// member and its closing delimiter. Only meaningful on containers.
	LinesTrailing int
	Comments      *Comments
	Flags         Flags
}

// NewMetadata returns a Metadata with every line-count field Unset and an
// initialized, all-clear Flags.
func NewMetadata() Metadata {
	return Metadata{
		LinesAbove:    Unset,
		LinesBetween:  Unset,
		LinesTrailing: Unset,
		Flags:         newFlags(),
	}
}

// SetDefaults fills every Unset field in m from defaults, leaving fields m
// has already recorded untouched. It is used to apply a document-wide
// default formatting policy to values that were constructed in memory
// rather than parsed from text.
func (m *Metadata) SetDefaults(defaults Metadata) {
	if m.LinesAbove == Unset {
		m.LinesAbove = defaults.LinesAbove
	}
	if m.LinesBetween == Unset {
		m.LinesBetween = defaults.LinesBetween
	}
	if m.LinesTrailing == Unset {
		m.LinesTrailing = defaults.LinesTrailing
	}
	if !m.Flags.IsInitialized() {
		m.Flags = defaults.Flags
	}
	if m.Comments == nil {
		m.Comments = defaults.Comments.Clone()
	}
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	m.Comments = m.Comments.Clone()
	return m
}
