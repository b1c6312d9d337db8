package value

// tableSize is the fixed size of an Object's hash side-table. Because each
// slot stores index+1 in a single byte, only indices up to 254 can be
// represented; an object that grows past that, or that exhausts every
// probe slot on a collision, falls back to a linear scan for all future
// lookups. This trades a small amount of lookup speed on pathologically
// large or collision-heavy objects for a compact, allocation-free common
// case.
const tableSize = 256

// Object is an ordered sequence of (key, Reference) members. Keys may
// repeat: the parser preserves every member in source order for
// round-trip serialization, while IndexOf and Get resolve a key to its
// last-inserted occurrence, matching "last assignment wins" lookup
// semantics.
type Object struct {
	keys       []string
	refs       []*Reference
	table      [tableSize]uint8
	overflowed bool
	meta       Metadata
}

// NewEmptyObject returns an empty object.
func NewEmptyObject() *Object {
	return &Object{meta: NewMetadata()}
}

// Len returns the number of members, including repeated keys.
func (o *Object) Len() int { return len(o.keys) }

// Meta returns a pointer to the object's own formatting metadata.
func (o *Object) Meta() *Metadata { return &o.meta }

// Keys returns every key in source order, including repeats.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// At returns the key and reference at position index in source order.
func (o *Object) At(index int) (string, *Reference, error) {
	if index < 0 || index >= len(o.keys) {
		return "", nil, newOutOfBoundsError(index, len(o.keys))
	}
	return o.keys[index], o.refs[index], nil
}

func hashKey(key string) uint8 {
	var h uint32 = 2166136261
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= 16777619
	}
	return uint8(h)
}

// IndexOf returns the position of key's last occurrence in source order, or
// -1 if key is absent.
func (o *Object) IndexOf(key string) int {
	if o.overflowed {
		return o.linearIndexOf(key)
	}
	slot := hashKey(key)
	for probe := 0; probe < tableSize; probe++ {
		s := uint8(int(slot) + probe)
		v := o.table[s]
		if v == 0 {
			return -1
		}
		idx := int(v) - 1
		if idx < len(o.keys) && o.keys[idx] == key {
			return idx
		}
	}
	return o.linearIndexOf(key)
}

func (o *Object) linearIndexOf(key string) int {
	for i := len(o.keys) - 1; i >= 0; i-- {
		if o.keys[i] == key {
			return i
		}
	}
	return -1
}

// Get returns the reference at key's last occurrence and marks it
// accessed. ok is false if key is absent.
func (o *Object) Get(key string) (ref *Reference, ok bool) {
	idx := o.IndexOf(key)
	if idx < 0 {
		return nil, false
	}
	r := o.refs[idx]
	r.Get()
	return r, true
}

// Visit is like Get but does not mark the reference accessed.
func (o *Object) Visit(key string) (ref *Reference, ok bool) {
	idx := o.IndexOf(key)
	if idx < 0 {
		return nil, false
	}
	return o.refs[idx], true
}

// Has reports whether key has any occurrence.
func (o *Object) Has(key string) bool {
	return o.IndexOf(key) >= 0
}

// Set assigns ref to key: if key already has an occurrence, that
// occurrence's reference is replaced in place, preserving source position.
// Otherwise a new member is appended. Returns ErrCyclicReference if ref's
// value transitively contains this object.
func (o *Object) Set(key string, ref *Reference) error {
	if wouldCycleObject(o, ref) {
		return newCyclicError()
	}
	if idx := o.IndexOf(key); idx >= 0 {
		o.refs[idx] = ref
		return nil
	}
	return o.appendMember(key, ref)
}

// AppendMember always appends a new (key, ref) member, even if key already
// has an occurrence - the parser uses this to preserve every textual
// assignment in source order while IndexOf still resolves to the last one.
func (o *Object) AppendMember(key string, ref *Reference) error {
	if wouldCycleObject(o, ref) {
		return newCyclicError()
	}
	return o.appendMember(key, ref)
}

func (o *Object) appendMember(key string, ref *Reference) error {
	idx := len(o.keys)
	o.keys = append(o.keys, key)
	o.refs = append(o.refs, ref)

	if o.overflowed {
		return nil
	}
	if idx > 254 {
		o.overflowed = true
		return nil
	}
	slot := hashKey(key)
	for probe := 0; probe < tableSize; probe++ {
		s := uint8(int(slot) + probe)
		v := o.table[s]
		if v == 0 {
			o.table[s] = uint8(idx + 1)
			return nil
		}
		existing := int(v) - 1
		if existing < idx && o.keys[existing] == key {
			o.table[s] = uint8(idx + 1)
			return nil
		}
	}
	o.overflowed = true
	return nil
}

// Delete removes key's last occurrence, if any, and reports whether
// anything was removed.
func (o *Object) Delete(key string) bool {
	idx := o.IndexOf(key)
	if idx < 0 {
		return false
	}
	o.keys = append(o.keys[:idx], o.keys[idx+1:]...)
	o.refs = append(o.refs[:idx], o.refs[idx+1:]...)
	o.rebuildTable()
	return true
}

func (o *Object) rebuildTable() {
	o.table = [tableSize]uint8{}
	o.overflowed = false
	keys, refs := o.keys, o.refs
	o.keys, o.refs = nil, nil
	for i, k := range keys {
		o.keys = append(o.keys, k)
		o.refs = append(o.refs, refs[i])
		if o.overflowed {
			continue
		}
		if i > 254 {
			o.overflowed = true
			continue
		}
		slot := hashKey(k)
		placed := false
		for probe := 0; probe < tableSize; probe++ {
			s := uint8(int(slot) + probe)
			v := o.table[s]
			if v == 0 {
				o.table[s] = uint8(i + 1)
				placed = true
				break
			}
			existing := int(v) - 1
			if existing < i && o.keys[existing] == k {
				o.table[s] = uint8(i + 1)
				placed = true
				break
			}
		}
		if !placed {
			o.overflowed = true
		}
	}
}

// UnaccessedKeys returns the keys (last occurrence only, in source order)
// whose reference has never been read via Get, useful for "unused
// configuration key" diagnostics.
func (o *Object) UnaccessedKeys() []string {
	var out []string
	seen := make(map[string]bool)
	for i := len(o.keys) - 1; i >= 0; i-- {
		k := o.keys[i]
		if seen[k] {
			continue
		}
		seen[k] = true
		if !o.refs[i].Accessed() {
			out = append(out, k)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func wouldCycleObject(o *Object, ref *Reference) bool {
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
		case KindObject:
			if v.obj == o {
				return true
			}
			for _, r := range v.obj.refs {
				if walk(r.value) {
					return true
				}
			}
		case KindArray:
			for _, r := range v.arr.items {
				if walk(r.value) {
					return true
				}
			}
		}
		return false
	}
	return walk(ref.value)
}

func (o *Object) copyWith(mode CopyMode, depth int) *Object {
	dup := NewEmptyObject()
	if mode.has(CopyFormatting) {
		dup.meta.LinesTrailing = o.meta.LinesTrailing
		dup.meta.Flags = o.meta.Flags
	}
	recurse := mode.has(CopyRecursive)
	for i, k := range o.keys {
		ref := o.refs[i]
		var newRef *Reference
		if recurse || depth == 0 {
			newRef = ref.copyDepth(mode, depth+1)
		} else {
			newRef = ref
		}
		_ = dup.appendMember(k, newRef)
	}
	return dup
}
