package metrics

import (
	"slices"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

// ItemSet is the set of column ids relevant to one subject.
type ItemSet map[int]struct{}

func NewItemSet(ids ...int) ItemSet {
	s := make(ItemSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ItemSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

func (s ItemSet) Len() int { return len(s) }

// IDs returns the members in ascending order.
func (s ItemSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Relevance holds one ItemSet per subject, indexed by global subject id.
type Relevance []ItemSet

func RelevanceFromLists(lists [][]int) Relevance {
	r := make(Relevance, len(lists))
	for i, ids := range lists {
		r[i] = NewItemSet(ids...)
	}
	return r
}

// At returns the set for subject i or an IndexError when i is out of range.
func (r Relevance) At(i int) (ItemSet, error) {
	return r.lookup("relevance", i)
}

func (r Relevance) lookup(name string, i int) (ItemSet, error) {
	if i < 0 || i >= len(r) {
		return nil, apperr.NewIndex(name, i, len(r))
	}
	return r[i], nil
}
