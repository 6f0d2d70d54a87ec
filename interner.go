package cahn

// InternedString is an opaque handle into the byte arena owned by a
// StringInterner. Two handles compare equal iff they were produced
// from equal content by the same interner.
type InternedString struct {
	start, end int
}

func (s InternedString) Len() int { return s.end - s.start }

// StringInterner deduplicates byte sequences into a single growing
// arena so that identifiers and numeric lexemes can be compared by a
// cheap (start, end) pair instead of by their contents. It has a
// single-threaded lifecycle matched to one compilation: lexer,
// parser and code generator all share the same instance.
type StringInterner struct {
	arena []byte
	index map[uint64][]InternedString
}

// NewStringInterner returns an interner with an empty arena.
func NewStringInterner() *StringInterner {
	return &StringInterner{
		index: make(map[uint64][]InternedString),
	}
}

// Intern returns a handle for bytes, reusing an existing arena range
// when the same content was interned before.
func (si *StringInterner) Intern(bytes []byte) InternedString {
	h := fnv1a(bytes)
	for _, candidate := range si.index[h] {
		if si.equalRange(candidate, bytes) {
			return candidate
		}
	}

	start := len(si.arena)
	si.arena = append(si.arena, bytes...)
	handle := InternedString{start: start, end: len(si.arena)}
	si.index[h] = append(si.index[h], handle)
	return handle
}

// InternString is a convenience wrapper around Intern for Go strings.
func (si *StringInterner) InternString(s string) InternedString {
	return si.Intern([]byte(s))
}

// Slice returns a read-only view of the bytes behind handle.
func (si *StringInterner) Slice(handle InternedString) []byte {
	return si.arena[handle.start:handle.end]
}

// String is a convenience wrapper around Slice.
func (si *StringInterner) String(handle InternedString) string {
	return string(si.Slice(handle))
}

// Cut strips dropPrefix bytes from the front and dropSuffix bytes
// from the back of handle, re-interning the resulting sub-range so
// equality extends to derived slices (used to strip the quotes off a
// string literal lexeme).
func (si *StringInterner) Cut(handle InternedString, dropPrefix, dropSuffix int) InternedString {
	return si.Intern(si.arena[handle.start+dropPrefix : handle.end-dropSuffix])
}

func (si *StringInterner) equalRange(handle InternedString, bytes []byte) bool {
	if handle.Len() != len(bytes) {
		return false
	}
	existing := si.arena[handle.start:handle.end]
	for i := range bytes {
		if existing[i] != bytes[i] {
			return false
		}
	}
	return true
}

// fnv1a is the 64-bit Fowler-Noll-Vo hash, used to bucket candidate
// ranges before falling back to a byte-wise comparison.
func fnv1a(data []byte) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for _, b := range data {
		h ^= uint64(b)
		h *= prime
	}
	return h
}
