package memory

// ExcludeSet holds memory ids already surfaced during one turn.
// It is owned by a single run and is not safe for concurrent use.
type ExcludeSet struct {
	ids map[string]struct{}
}

// NewExcludeSet seeds the set with ids.
func NewExcludeSet(ids ...string) *ExcludeSet {
	s := &ExcludeSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id was already surfaced.
func (s *ExcludeSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records id and reports whether it was new.
func (s *ExcludeSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len is the number of ids in the set.
func (s *ExcludeSet) Len() int {
	return len(s.ids)
}
