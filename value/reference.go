package value

// CopyMode selects which aspects of a value graph Reference.Copy
// reproduces in the duplicate. The modes are independent bit flags and can
// be combined; Copy always duplicates the value's own data regardless of
// mode.
type CopyMode uint8

const (
	// CopyTracking carries accessed over from the source rather than
	// resetting it on the copy.
	CopyTracking CopyMode = 1 << iota
	// CopyContainers duplicates array and object containers one level deep
	// rather than sharing the same *Array/*Object.
	CopyContainers
	// CopyRecursive duplicates containers all the way down. Implies
	// CopyContainers.
	CopyRecursive
	// CopyFormatting duplicates blank-line metadata rather than resetting
	// it to Unset on the copy.
	CopyFormatting
	// CopyComments duplicates comment slots rather than leaving the copy
	// commentless.
	CopyComments
)

func (m CopyMode) has(bit CopyMode) bool { return m&bit != 0 }

// Reference is the indirection layer every value reachable from a document
// is stored behind. It tracks whether the value has been read (accessed)
// and whether it may still be mutated (mutable, cleared permanently by
// Freeze).
type Reference struct {
	value    *Value
	accessed bool
	mutable  bool
}

// NewReference wraps v in a fresh, mutable, unaccessed Reference.
func NewReference(v *Value) *Reference {
	if v == nil {
		v = NewNull()
	}
	return &Reference{value: v, mutable: true}
}

// Get returns the referenced value and marks it accessed.
func (r *Reference) Get() *Value {
	r.accessed = true
	return r.value
}

// Visit returns the referenced value without marking it accessed. Used by
// diagnostics and tooling that need to inspect a value without disturbing
// unused-key tracking.
func (r *Reference) Visit() *Value {
	return r.value
}

// Accessed reports whether Get has ever been called on r.
func (r *Reference) Accessed() bool { return r.accessed }

// Mutable reports whether r may still be mutated.
func (r *Reference) Mutable() bool { return r.mutable }

// Freeze permanently clears Mutable. Once frozen, a reference can never be
// unfrozen.
func (r *Reference) Freeze() {
	r.mutable = false
}

// Set replaces the referenced value, marking it accessed. Returns
// ErrImmutableReference if r has been frozen. Rejects the assignment with
// ErrCyclicReference if v is a container that (directly or transitively)
// contains r itself.
func (r *Reference) Set(v *Value) error {
	if !r.mutable {
		return newImmutableError()
	}
	if v != nil && v.IsContainer() && containsIdentity(v, r) {
		return newCyclicError()
	}
	r.value = v
	r.accessed = true
	return nil
}

// Copy returns a new Reference per the given CopyMode. The value itself is
// always duplicated at the top level; mode controls whether containers,
// formatting metadata, comments, and access-tracking state are carried
// over or reset.
func (r *Reference) Copy(mode CopyMode) *Reference {
	return r.copyDepth(mode, 0)
}

func (r *Reference) copyDepth(mode CopyMode, depth int) *Reference {
	src := r.value
	dup := &Value{kind: src.kind, b: src.b, i: src.i, d: src.d, s: src.s, style: src.style}

	if mode.has(CopyFormatting) {
		dup.meta.LinesAbove = src.meta.LinesAbove
		dup.meta.LinesBetween = src.meta.LinesBetween
		dup.meta.LinesTrailing = src.meta.LinesTrailing
		dup.meta.Flags = src.meta.Flags
	} else {
		dup.meta = NewMetadata()
	}
	if mode.has(CopyComments) {
		dup.meta.Comments = src.meta.Comments.Clone()
	}

	switch src.kind {
	case KindArray:
		if mode.has(CopyContainers) || mode.has(CopyRecursive) {
			dup.arr = src.arr.copyWith(mode, depth)
		} else {
			dup.arr = src.arr
		}
	case KindObject:
		if mode.has(CopyContainers) || mode.has(CopyRecursive) {
			dup.obj = src.obj.copyWith(mode, depth)
		} else {
			dup.obj = src.obj
		}
	}

	out := &Reference{value: dup, mutable: true}
	if mode.has(CopyTracking) {
		out.accessed = r.accessed
	}
	return out
}

// containsIdentity reports whether candidate (a container value) already
// contains target anywhere in its reachable graph, directly or
// transitively. It is used to reject construction that would introduce a
// cycle.
func containsIdentity(candidate *Value, target *Reference) bool {
	seen := make(map[*Reference]bool)
	var walk func(v *Value) bool
	walk = func(v *Value) bool {
		if v == nil {
			return false
		}
		switch v.kind {
		case KindArray:
			for _, ref := range v.arr.items {
				if ref == target || seen[ref] {
					if ref == target {
						return true
					}
					continue
				}
				seen[ref] = true
				if walk(ref.value) {
					return true
				}
			}
		case KindObject:
			for _, ref := range v.obj.refs {
				if ref == target || seen[ref] {
					if ref == target {
						return true
					}
					continue
				}
				seen[ref] = true
				if walk(ref.value) {
					return true
				}
			}
		}
		return false
	}
	return walk(candidate)
}
