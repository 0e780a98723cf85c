package interaction

import "sort"

// Selection is a set of emoji ids. The zero value is empty and ready to use.
type Selection struct {
	ids map[int]struct{}
}

// Toggle adds id when absent and removes it when present.
func (s *Selection) Toggle(id int) {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.ids) == 0 }

// Clear deselects everything.
func (s *Selection) Clear() { s.ids = nil }

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Prune drops ids for which exists returns false.
func (s *Selection) Prune(exists func(id int) bool) {
	for id := range s.ids {
		if !exists(id) {
			delete(s.ids, id)
		}
	}
}
