// Package selection tracks the subjects a shopper is considering for one
// course view. The aggregator is single-owner state: the active view
// creates it empty on entry and drops (or Clears) it on navigation away.
// It is never persisted.
package selection

import (
	"edustore/internal/domain"
	"edustore/internal/entitlement"
)

type Aggregator struct {
	order  []string
	member map[string]bool
}

func New() *Aggregator {
	return &Aggregator{member: map[string]bool{}}
}

// Toggle flips membership of subjectID and reports whether the subject is
// selected afterwards. Owned content can never enter the selection: the
// entitlement gate is consulted first and purchased ids are a no-op.
// Two toggles of the same id cancel out.
func (a *Aggregator) Toggle(user domain.User, subjectID string) bool {
	if !entitlement.CanSelect(user, subjectID) {
		return false
	}

	if a.member[subjectID] {
		delete(a.member, subjectID)
		for i, id := range a.order {
			if id == subjectID {
				a.order = append(a.order[:i], a.order[i+1:]...)
				break
			}
		}
		return false
	}

	a.member[subjectID] = true
	a.order = append(a.order, subjectID)
	return true
}

// Total sums the price of selected subjects that exist in the course.
// Ids unknown to the course contribute zero. The result depends only on
// (selection, course).
func (a *Aggregator) Total(course domain.Course) int {
	total := 0
	for _, id := range a.order {
		if s, ok := course.Subject(id); ok {
			total += s.Price
		}
	}
	return total
}

func (a *Aggregator) Has(subjectID string) bool {
	return a.member[subjectID]
}

// Selected returns the selected ids in the order they were chosen.
func (a *Aggregator) Selected() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Aggregator) Len() int {
	return len(a.order)
}

// Clear empties the selection (used on navigation away).
func (a *Aggregator) Clear() {
	a.order = nil
	a.member = map[string]bool{}
}
