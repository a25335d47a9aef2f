package utils

// NameSet is an insertion-ordered set of names. Regency selections use it to
// drop duplicates while keeping the order the user picked them in.
type NameSet struct {
	seen  map[string]struct{}
	order []string
}

// NewNameSet creates a set holding names, duplicates dropped.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{seen: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add returns true if the name was newly added, false if already present.
func (s *NameSet) Add(name string) bool {
	if _, exists := s.seen[name]; exists {
		return false
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// Contains reports whether name is in the set.
func (s *NameSet) Contains(name string) bool {
	_, exists := s.seen[name]
	return exists
}

// Size returns the number of unique names tracked.
func (s *NameSet) Size() int { return len(s.order) }

// Names returns the names in insertion order.
func (s *NameSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
