package checkin

// OrderedSet is a set of strings that remembers insertion order.
// Column registries are built from it so that header order only depends on
// the order positions are visited in, never on map iteration.
// The zero value is ready to use.
type OrderedSet struct {
	values []string
	index  map[string]struct{}
}

// NewOrderedSet returns a set pre-populated with values, in order, skipping duplicates.
func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v if it is not already a member. It reports whether v was added.
func (s *OrderedSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is a member.
func (s *OrderedSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Remove deletes v, keeping the relative order of the remaining members.
// It reports whether v was present.
func (s *OrderedSet) Remove(v string) bool {
	if !s.Contains(v) {
		return false
	}
	delete(s.index, v)
	for i, cur := range s.values {
		if cur == v {
			s.values = append(s.values[:i], s.values[i+1:]...)
			break
		}
	}
	return true
}

// Prepend moves v to the front, inserting it if it was not a member.
func (s *OrderedSet) Prepend(v string) {
	s.Remove(v)
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[v] = struct{}{}
	s.values = append([]string{v}, s.values...)
}

// Len returns the number of members.
func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns a copy of the members in order.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
