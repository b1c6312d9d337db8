package value

// Array is an ordered sequence of References.
type Array struct {
	items []*Reference
	meta  Metadata
}

// NewEmptyArray returns an empty array.
func NewEmptyArray() *Array {
	return &Array{meta: NewMetadata()}
}

// NewArrayOf returns an array containing refs in order.
func NewArrayOf(refs ...*Reference) *Array {
	a := NewEmptyArray()
	a.items = append(a.items, refs...)
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Meta returns a pointer to the array's own formatting metadata (applies to
// the container as a whole: its trailing blank lines and flags).
func (a *Array) Meta() *Metadata { return &a.meta }

// At returns the reference at index, or an error if out of bounds.
func (a *Array) At(index int) (*Reference, error) {
	if index < 0 || index >= len(a.items) {
		return nil, newOutOfBoundsError(index, len(a.items))
	}
	return a.items[index], nil
}

// Items returns the array's references in order. The returned slice must
// not be mutated by the caller.
func (a *Array) Items() []*Reference {
	return a.items
}

// Append adds ref to the end of the array. Returns ErrCyclicReference if
// ref's value transitively contains this array.
func (a *Array) Append(ref *Reference) error {
	return a.Insert(len(a.items), ref)
}

// Insert places ref at index, shifting later elements right. Returns
// ErrCyclicReference if ref's value transitively contains this array, or
// ErrOutOfBounds if index is not in [0, Len()].
func (a *Array) Insert(index int, ref *Reference) error {
	if index < 0 || index > len(a.items) {
		return newOutOfBoundsError(index, len(a.items))
	}
	if wouldCycleArray(a, ref) {
		return newCyclicError()
	}
	a.items = append(a.items, nil)
	copy(a.items[index+1:], a.items[index:])
	a.items[index] = ref
	return nil
}

// Remove deletes the element at index, shifting later elements left, and
// returns the removed reference.
func (a *Array) Remove(index int) (*Reference, error) {
	if index < 0 || index >= len(a.items) {
		return nil, newOutOfBoundsError(index, len(a.items))
	}
	ref := a.items[index]
	a.items = append(a.items[:index], a.items[index+1:]...)
	return ref, nil
}

// wouldCycleArray reports whether inserting ref into a would create a
// reference cycle: true if ref's value is (or transitively contains) a
// container that itself contains a reference pointing back to a.
func wouldCycleArray(a *Array, ref *Reference) bool {
	if ref == nil || ref.value == nil || !ref.value.IsContainer() {
		return false
	}
	seen := make(map[*Value]bool)
	var walk func(v *Value) bool
	walk = func(v *Value) bool {
		if v == nil || seen[v] {
			return false
		}
		seen[v] = true
		switch v.kind {
		case KindArray:
			if v.arr == a {
				return true
			}
			for _, r := range v.arr.items {
				if walk(r.value) {
					return true
				}
			}
		case KindObject:
			for _, r := range v.obj.refs {
				if walk(r.value) {
					return true
				}
			}
		}
		return false
	}
	return walk(ref.value)
}

func (a *Array) copyWith(mode CopyMode, depth int) *Array {
	dup := NewEmptyArray()
	if mode.has(CopyFormatting) {
		dup.meta.LinesTrailing = a.meta.LinesTrailing
		dup.meta.Flags = a.meta.Flags
	}
	recurse := mode.has(CopyRecursive)
	for _, ref := range a.items {
		if recurse {
			dup.items = append(dup.items, ref.copyDepth(mode, depth+1))
		} else if depth == 0 {
			dup.items = append(dup.items, ref.copyDepth(mode, depth+1))
		} else {
			dup.items = append(dup.items, ref)
		}
	}
	return dup
}
