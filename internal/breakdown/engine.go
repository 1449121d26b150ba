// Package breakdown computes the person/criticality/category spending
// aggregate the summary views are driven by.
//
// The aggregate is stored flat, keyed by the full (person, criticality,
// category) tuple, instead of as nested maps; grouped views are derived on
// demand and always contain every (person, criticality) pair so callers
// never have to existence-check the first two levels.
package breakdown

import (
	"log/slog"
	"sort"
	"strings"

	"budgetbook/internal/core"
)

// Key identifies one cell of the aggregate.
type Key struct {
	Person      string
	Criticality string
	Category    string
}

// Breakdown is an immutable aggregate built fresh on every recompute.
type Breakdown struct {
	amounts map[Key]float64
}

// Build aggregates actual transactions only.
func Build(txs []core.Transaction) *Breakdown {
	return BuildWithProjections(txs, nil)
}

// BuildWithProjections aggregates transactions and folds projected expenses
// into the same cells. Joint transactions contribute half their amount to
// each person; projected expenses are already halved at creation and
// contribute their full amount. Transactions on unrecognized accounts are
// excluded and logged.
func BuildWithProjections(txs []core.Transaction, projs []core.ProjectedExpense) *Breakdown {
	b := &Breakdown{amounts: make(map[Key]float64)}

	for _, tx := range txs {
		switch strings.ToLower(strings.TrimSpace(tx.Account)) {
		case "josh":
			b.add(core.PersonJosh, tx.Criticality, tx.Category, tx.Amount)
		case "anna":
			b.add(core.PersonAnna, tx.Criticality, tx.Category, tx.Amount)
		case "joint":
			half := tx.Amount / 2
			b.add(core.PersonJosh, tx.Criticality, tx.Category, half)
			b.add(core.PersonAnna, tx.Criticality, tx.Category, half)
		default:
			slog.Warn("Excluding transaction on unknown account",
				"account", tx.Account, "name", tx.Name, "amount", tx.Amount)
		}
	}

	for _, p := range projs {
		person, ok := core.CanonicalPerson(p.Person)
		if !ok || person == core.AccountJoint {
			slog.Warn("Excluding projection for unknown person", "person", p.Person)
			continue
		}
		b.add(person, p.Criticality, p.Subcategory, p.Amount)
	}

	return b
}

func (b *Breakdown) add(person, criticality, category string, amount float64) {
	criticality = core.NormalizeCriticality(criticality)
	category = strings.TrimSpace(category)
	if category == "" {
		category = core.Uncategorized
	}
	b.amounts[Key{Person: person, Criticality: criticality, Category: category}] += amount
}

// Amount returns the summed amount for one cell, zero when absent.
func (b *Breakdown) Amount(person, criticality, category string) float64 {
	return b.amounts[Key{
		Person:      person,
		Criticality: core.NormalizeCriticality(criticality),
		Category:    strings.TrimSpace(category),
	}]
}

// CriticalityTotal sums every category for one (person, criticality) pair.
func (b *Breakdown) CriticalityTotal(person, criticality string) float64 {
	criticality = core.NormalizeCriticality(criticality)
	var total float64
	for k, v := range b.amounts {
		if k.Person == person && k.Criticality == criticality {
			total += v
		}
	}
	return total
}

// PersonTotal sums everything attributed to one person.
func (b *Breakdown) PersonTotal(person string) float64 {
	var total float64
	for k, v := range b.amounts {
		if k.Person == person {
			total += v
		}
	}
	return total
}

// Keys returns every populated cell key in a stable order.
func (b *Breakdown) Keys() []Key {
	keys := make([]Key, 0, len(b.amounts))
	for k := range b.amounts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Person != keys[j].Person {
			return keys[i].Person < keys[j].Person
		}
		if keys[i].Criticality != keys[j].Criticality {
			return keys[i].Criticality < keys[j].Criticality
		}
		return keys[i].Category < keys[j].Category
	})
	return keys
}

// Grouped renders the aggregate as person → criticality → category → amount.
// All four (person × criticality) groups are always present, even when
// empty, so presentation code can iterate without existence checks.
func (b *Breakdown) Grouped() map[string]map[string]map[string]float64 {
	out := make(map[string]map[string]map[string]float64, len(core.Persons))
	for _, person := range core.Persons {
		out[person] = make(map[string]map[string]float64, len(core.Criticalities))
		for _, criticality := range core.Criticalities {
			out[person][criticality] = make(map[string]float64)
		}
	}
	for k, v := range b.amounts {
		crits, ok := out[k.Person]
		if !ok {
			crits = make(map[string]map[string]float64)
			out[k.Person] = crits
		}
		cats, ok := crits[k.Criticality]
		if !ok {
			cats = make(map[string]float64)
			crits[k.Criticality] = cats
		}
		cats[k.Category] += v
	}
	return out
}
