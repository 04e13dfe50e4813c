package generator

import "sort"

// TypeNameSet accumulates canonical type names. Uniqueness is exact string equality.
type TypeNameSet struct {
	names map[string]struct{}
}

// NewTypeNameSet creates a set holding the given names
func NewTypeNameSet(names ...string) *TypeNameSet {
	s := &TypeNameSet{names: make(map[string]struct{}, len(names))}
	s.AddAll(names)
	return s
}

// Add inserts a name and reports whether it was new. Empty names are ignored.
func (s *TypeNameSet) Add(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// AddAll inserts every name in names
func (s *TypeNameSet) AddAll(names []string) {
	for _, name := range names {
		s.Add(name)
	}
}

// Union folds other into s and returns s
func (s *TypeNameSet) Union(other *TypeNameSet) *TypeNameSet {
	if other == nil {
		return s
	}
	for name := range other.names {
		s.names[name] = struct{}{}
	}
	return s
}

// Len returns the number of names
func (s *TypeNameSet) Len() int {
	return len(s.names)
}

// Sorted returns the names in ordinal (byte-wise) ascending order
func (s *TypeNameSet) Sorted() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
