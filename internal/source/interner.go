package source

import "sync"

// StringID is a 32-bit handle for an interned atom (identifier text, literal
// text, property name, ...). The checker and every downstream layer compare
// atoms by handle rather than by string.
type StringID uint32

// NoStringID marks the absence of an interned atom.
const NoStringID StringID = 0

// Interner deduplicates strings into stable StringIDs. It is safe for
// concurrent use so that multiple files can be checked on worker goroutines
// while sharing one atom table.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an Interner seeded with the empty string at NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the StringID for s, allocating a new one if s was not seen
// before.
func (in *Interner) Intern(s string) StringID {
	in.mu.RLock()
	if id, ok := in.index[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	// Copy so the interner does not retain a reference into a caller's
	// larger buffer (e.g. a slice of file content).
	cpy := string([]byte(s))

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[cpy]; ok {
		return id
	}
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the text for id, or "" if id is out of range.
func (in *Interner) Lookup(id StringID) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.byID) {
		return ""
	}
	return in.byID[id]
}

// Len returns the number of distinct atoms interned so far (including the
// empty string at index 0).
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byID)
}
