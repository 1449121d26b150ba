// Package planner computes remaining-budget projections from a spending
// goal and maintains the set of projected expenses with replace-not-stack
// semantics per (person, criticality, subcategory) key.
package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"budgetbook/internal/collection"
	"budgetbook/internal/core"
)

// Projection is the result of one goal computation.
type Projection struct {
	Amount  float64 // remaining projected spend, floored at zero
	Weeks   int     // ceil(days/7), minimum 1
	PerWeek float64
}

// Compute derives the remaining projection for one (person, criticality,
// category) key. actualSpent must already carry the caller's halved share of
// joint transactions; alreadyProjected is the sum of existing projections
// for the same key.
func Compute(goal float64, daysRemaining int, actualSpent, alreadyProjected float64) Projection {
	weeks := int(math.Ceil(float64(daysRemaining) / 7))
	if weeks < 1 {
		weeks = 1
	}
	amount := goal - actualSpent - alreadyProjected
	if amount < 0 {
		amount = 0
	}
	return Projection{
		Amount:  amount,
		Weeks:   weeks,
		PerWeek: amount / float64(weeks),
	}
}

// ParseGoal parses a user-typed goal amount. Unlike the lenient CSV amount
// codec, user-typed monetary goals must never silently degrade to zero; a
// malformed value rejects the whole operation.
func ParseGoal(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidGoal, s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidGoal, s)
	}
	return v, nil
}

// ParseDays parses a user-typed days-remaining value, rejecting anything
// that is not a non-negative integer.
func ParseDays(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidDays, s)
	}
	return v, nil
}

// ProjectionSet owns the ordered list of projected expenses. Recomputing a
// projection for a key replaces the previous entry instead of stacking a
// second one.
type ProjectionSet struct {
	items []core.ProjectedExpense
}

// NewProjectionSet seeds a set from existing records (for example the
// projections file or "active" rows of a budget import).
func NewProjectionSet(items []core.ProjectedExpense) *ProjectionSet {
	s := &ProjectionSet{items: make([]core.ProjectedExpense, len(items))}
	copy(s.items, items)
	return s
}

// Items returns a copy of the current records.
func (s *ProjectionSet) Items() []core.ProjectedExpense {
	out := make([]core.ProjectedExpense, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records.
func (s *ProjectionSet) Len() int { return len(s.items) }

// Add appends records without replacement, for manual entries.
func (s *ProjectionSet) Add(items ...core.ProjectedExpense) {
	s.items = append(s.items, items...)
}

// SumFor totals the existing projections for one key.
func (s *ProjectionSet) SumFor(person, criticality, subcategory string) float64 {
	var total float64
	for _, p := range s.items {
		if p.MatchesKey(person, criticality, subcategory) {
			total += p.Amount
		}
	}
	return total
}

// Remove deletes every record for the key and reports how many went away.
func (s *ProjectionSet) Remove(person, criticality, subcategory string) int {
	kept := s.items[:0]
	removed := 0
	for _, p := range s.items {
		if p.MatchesKey(person, criticality, subcategory) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.items = kept
	return removed
}

// RemoveAt deletes the record at index i, for explicit user selection.
func (s *ProjectionSet) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Replace removes any previous entry for the key, then inserts the new
// amount if it is positive. A zero amount just clears the key.
func (s *ProjectionSet) Replace(person, criticality, subcategory string, amount float64, isJoint bool) {
	s.Remove(person, criticality, subcategory)
	if amount <= 0 {
		return
	}
	s.items = append(s.items, core.ProjectedExpense{
		Person:      person,
		Criticality: core.NormalizeCriticality(criticality),
		Subcategory: subcategory,
		Amount:      amount,
		IsJoint:     isJoint,
	})
}

// PlanGoal runs the projection for one individual: actual spend for the key
// is taken from the collection (joint halves included), the previous
// projection for the key is replaced by the newly computed one.
func PlanGoal(set *ProjectionSet, col *collection.Collection, person, criticality, category string, goal float64, daysRemaining int) Projection {
	return planGoal(set, col, person, criticality, category, goal, daysRemaining, false)
}

// PlanJointGoal halves the goal up front and runs the computation
// independently for each individual against their own actuals. Both
// resulting records carry the joint flag. The returned projections are keyed
// by person.
func PlanJointGoal(set *ProjectionSet, col *collection.Collection, criticality, category string, goal float64, daysRemaining int) map[string]Projection {
	out := make(map[string]Projection, len(core.Persons))
	half := goal / 2
	for _, person := range core.Persons {
		out[person] = planGoal(set, col, person, criticality, category, half, daysRemaining, true)
	}
	return out
}

func planGoal(set *ProjectionSet, col *collection.Collection, person, criticality, category string, goal float64, daysRemaining int, isJoint bool) Projection {
	// The superseded projection goes away before the recompute, so running
	// the calculator twice with the same inputs lands on the same amount.
	set.Remove(person, criticality, category)
	actual := col.CategoryTotal(person, criticality, category)
	already := set.SumFor(person, criticality, category)
	proj := Compute(goal, daysRemaining, actual, already)
	set.Replace(person, criticality, category, proj.Amount, isJoint)
	return proj
}
