package core

import (
	"errors"
	"strings"
)

const (
	PersonJosh   = "Josh"
	PersonAnna   = "Anna"
	AccountJoint = "Joint"

	CriticalityEssential    = "Essential"
	CriticalityNonEssential = "NonEssential"

	StatusImported = "imported"
	StatusActive   = "active"

	// Uncategorized is the bucket for transactions with a blank category.
	Uncategorized = "(Uncategorized)"
)

// Persons lists the two individuals every aggregate is keyed by.
// Joint-account amounts are always attributed half to each.
var Persons = []string{PersonJosh, PersonAnna}

// Criticalities lists the two spending classes in their canonical form.
var Criticalities = []string{CriticalityEssential, CriticalityNonEssential}

var (
	ErrInvalidGoal = errors.New("invalid goal amount")
	ErrInvalidDays = errors.New("invalid days remaining")
	ErrEmptyName   = errors.New("empty transaction name")
)

type (
	// Transaction is a single spending event, immutable after construction.
	Transaction struct {
		Name            string
		Amount          float64
		Category        string
		Criticality     string
		TransactionDate string
		Account         string
		Status          string
		CreatedTime     string
		PaymentMethod   string
		StatementPeriod string
	}

	// ProjectedExpense is a planned spending amount for one person.
	// Joint plans never exist as a single record; see NewProjectedExpenses.
	ProjectedExpense struct {
		Person      string
		Criticality string
		Subcategory string
		Amount      float64
		IsJoint     bool
	}
)

// NewTransaction normalizes a transaction at construction: criticality is
// trimmed and stripped of internal spaces so "Non Essential" and
// "NonEssential" compare equal, and a missing status defaults to "imported".
func NewTransaction(t Transaction) Transaction {
	t.Criticality = NormalizeCriticality(t.Criticality)
	if strings.TrimSpace(t.Status) == "" {
		t.Status = StatusImported
	}
	return t
}

// NormalizeCriticality trims the value and removes internal spaces.
func NormalizeCriticality(c string) string {
	return strings.ReplaceAll(strings.TrimSpace(c), " ", "")
}

// CanonicalPerson maps any case/whitespace variant of a known person or the
// joint account onto its canonical spelling. The boolean reports whether the
// value was recognized.
func CanonicalPerson(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "josh":
		return PersonJosh, true
	case "anna":
		return PersonAnna, true
	case "joint":
		return AccountJoint, true
	}
	return "", false
}

// IsJointAccount reports whether the account names the shared joint account.
func IsJointAccount(account string) bool {
	return strings.EqualFold(strings.TrimSpace(account), AccountJoint)
}

// NewProjectedExpenses builds the projected-expense records for a plan entry.
// A "Joint" person is expanded at creation into two per-person records, each
// carrying half the amount and the joint flag; it never exists as a single
// record. Any other person yields exactly one record.
func NewProjectedExpenses(person, criticality, subcategory string, amount float64) []ProjectedExpense {
	criticality = NormalizeCriticality(criticality)
	canonical, ok := CanonicalPerson(person)
	if ok && canonical == AccountJoint {
		half := amount / 2
		return []ProjectedExpense{
			{Person: PersonJosh, Criticality: criticality, Subcategory: subcategory, Amount: half, IsJoint: true},
			{Person: PersonAnna, Criticality: criticality, Subcategory: subcategory, Amount: half, IsJoint: true},
		}
	}
	if ok {
		person = canonical
	} else {
		person = strings.TrimSpace(person)
	}
	return []ProjectedExpense{
		{Person: person, Criticality: criticality, Subcategory: subcategory, Amount: amount},
	}
}

// MatchesKey reports whether the projected expense belongs to the given
// (person, criticality, subcategory) tuple, comparing case-insensitively
// after trimming.
func (p ProjectedExpense) MatchesKey(person, criticality, subcategory string) bool {
	return equalFoldTrim(p.Person, person) &&
		strings.EqualFold(NormalizeCriticality(p.Criticality), NormalizeCriticality(criticality)) &&
		equalFoldTrim(p.Subcategory, subcategory)
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
