package state

// MaxSeen caps the persisted notification history. Oldest ids fall off first.
const MaxSeen = 2000

// SeenSet is the ordered set of job ids notified in this and earlier runs.
// A run owns its SeenSet exclusively; there is no concurrent access.
type SeenSet struct {
	ids   []string
	index map[string]bool
	added int
}

func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{index: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if id == "" || s.index[id] {
			continue
		}
		s.index[id] = true
		s.ids = append(s.ids, id)
	}
	return s
}

func (s *SeenSet) Has(id string) bool { return s.index[id] }

// Add appends a new id, reporting whether it was actually new.
func (s *SeenSet) Add(id string) bool {
	if id == "" || s.index[id] {
		return false
	}
	s.index[id] = true
	s.ids = append(s.ids, id)
	s.added++
	return true
}

func (s *SeenSet) Len() int { return len(s.ids) }

// Added reports how many ids were added since load.
func (s *SeenSet) Added() int { return s.added }

// IDs returns the retained ids in insertion order, truncated to the most
// recent MaxSeen.
func (s *SeenSet) IDs() []string {
	ids := s.ids
	if len(ids) > MaxSeen {
		ids = ids[len(ids)-MaxSeen:]
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
