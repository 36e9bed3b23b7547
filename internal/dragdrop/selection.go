package dragdrop

// selection is an insertion-ordered set of item ids.
type selection struct {
	ids   []ItemID
	index map[ItemID]struct{}
}

func newSelection() *selection {
	return &selection{index: make(map[ItemID]struct{})}
}

func (s *selection) has(id ItemID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *selection) len() int {
	return len(s.ids)
}

// add appends id and reports whether it was missing.
func (s *selection) add(id ItemID) bool {
	if s.has(id) {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// remove drops id and reports whether it was present.
func (s *selection) remove(id ItemID) bool {
	if !s.has(id) {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

// clear empties the set and returns what was in it.
func (s *selection) clear() []ItemID {
	old := s.ids
	s.ids = nil
	s.index = make(map[ItemID]struct{})
	return old
}

// list returns a copy safe to hand to observers.
func (s *selection) list() []ItemID {
	out := make([]ItemID, len(s.ids))
	copy(out, s.ids)
	return out
}
