// Package collection wraps an ordered snapshot of transactions and provides
// the filtering and per-category aggregation views the summary screens are
// built from. All filters return new collections; nothing here mutates.
package collection

import (
	"math"
	"strings"

	"budgetbook/internal/core"
)

// SplitMarker is appended to the name of a joint transaction's derived
// per-person copy so split halves are recognizable in drill-down views.
const SplitMarker = " (split)"

// Collection is an immutable snapshot of transactions plus totals computed
// once at construction.
type Collection struct {
	description string
	txs         []core.Transaction
	totalAmount float64
}

// New copies the given transactions into a fresh collection. Later mutation
// of the caller's slice does not affect the collection.
func New(description string, txs []core.Transaction) *Collection {
	snapshot := make([]core.Transaction, len(txs))
	copy(snapshot, txs)

	var total float64
	for _, tx := range snapshot {
		total += tx.Amount
	}
	return &Collection{description: description, txs: snapshot, totalAmount: total}
}

// Description returns the free-text label the collection was built with.
func (c *Collection) Description() string { return c.description }

// Transactions returns a copy of the snapshot.
func (c *Collection) Transactions() []core.Transaction {
	out := make([]core.Transaction, len(c.txs))
	copy(out, c.txs)
	return out
}

// TotalAmount is the sum of all amounts, computed at construction.
func (c *Collection) TotalAmount() float64 { return c.totalAmount }

// Count is the number of transactions in the snapshot.
func (c *Collection) Count() int { return len(c.txs) }

// SplitForIndividual is the single joint-splitting rule: given a transaction
// and a target individual, it returns the transaction as-is when the account
// matches the individual exactly, a derived half-amount copy when the
// account is the joint account, and nothing otherwise. Every aggregation in
// the system that attributes joint spending goes through here.
func SplitForIndividual(tx core.Transaction, individual string) (core.Transaction, bool) {
	if fieldEqual(tx.Account, individual) {
		return tx, true
	}
	if core.IsJointAccount(tx.Account) {
		derived := tx
		derived.Amount = tx.Amount / 2
		derived.Name = tx.Name + SplitMarker
		derived.Account = individual
		return derived, true
	}
	return core.Transaction{}, false
}

// FilterByAccount returns the transactions attributed to the account. For
// "Josh" or "Anna" this includes their own transactions plus a half-amount
// derived copy of every joint transaction; for any other account value only
// exact case-insensitive matches are returned.
func (c *Collection) FilterByAccount(account string) *Collection {
	canonical, ok := core.CanonicalPerson(account)
	if ok && canonical != core.AccountJoint {
		var out []core.Transaction
		for _, tx := range c.txs {
			if derived, match := SplitForIndividual(tx, canonical); match {
				out = append(out, derived)
			}
		}
		return New(c.description, out)
	}

	var out []core.Transaction
	for _, tx := range c.txs {
		if fieldEqual(tx.Account, account) {
			out = append(out, tx)
		}
	}
	return New(c.description, out)
}

// FilterByName filters on the transaction name, optionally restricted to an
// account (with joint splitting applied after the name match).
func (c *Collection) FilterByName(name string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.Name, name) }, account)
}

// FilterByCategory filters on the category label.
func (c *Collection) FilterByCategory(category string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.Category, category) }, account)
}

// FilterByCriticality filters on the normalized criticality, so
// "Non Essential" matches "NonEssential".
func (c *Collection) FilterByCriticality(criticality string, account ...string) *Collection {
	want := core.NormalizeCriticality(criticality)
	return c.filterBy(func(tx core.Transaction) bool {
		return strings.EqualFold(core.NormalizeCriticality(tx.Criticality), want)
	}, account)
}

// FilterByDate filters on the free-text transaction date.
func (c *Collection) FilterByDate(date string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.TransactionDate, date) }, account)
}

// FilterByStatus filters on the status field.
func (c *Collection) FilterByStatus(status string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.Status, status) }, account)
}

// FilterByPaymentMethod filters on the payment method.
func (c *Collection) FilterByPaymentMethod(method string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.PaymentMethod, method) }, account)
}

// FilterByStatementPeriod filters on the statement-period label.
func (c *Collection) FilterByStatementPeriod(period string, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool { return fieldEqual(tx.StatementPeriod, period) }, account)
}

// FilterByAmount filters on the amount with cent-level tolerance.
func (c *Collection) FilterByAmount(amount float64, account ...string) *Collection {
	return c.filterBy(func(tx core.Transaction) bool {
		return math.Abs(tx.Amount-amount) < 0.005
	}, account)
}

// PersonalizedTransactions returns the individual's view of the data: their
// own transactions plus their half of joint ones, optionally restricted to a
// criticality.
func (c *Collection) PersonalizedTransactions(individual string, criticality ...string) *Collection {
	result := c.FilterByAccount(individual)
	if len(criticality) > 0 && strings.TrimSpace(criticality[0]) != "" {
		result = result.FilterByCriticality(criticality[0])
	}
	return result
}

// CategoryTotals sums amounts per category for the given account and
// criticality, with joint splitting applied. Transactions with a blank
// category land in the "(Uncategorized)" bucket; categories absent from the
// data are never invented.
func (c *Collection) CategoryTotals(account, criticality string) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range c.PersonalizedTransactions(account, criticality).txs {
		category := strings.TrimSpace(tx.Category)
		if category == "" {
			category = core.Uncategorized
		}
		totals[category] += tx.Amount
	}
	return totals
}

// CategoryTotal is the actual spend for a single category under the same
// rules as CategoryTotals, with the category matched case-insensitively
// after trimming. A blank category reads the "(Uncategorized)" bucket.
func (c *Collection) CategoryTotal(account, criticality, category string) float64 {
	if strings.TrimSpace(category) == "" {
		category = core.Uncategorized
	}
	var total float64
	for label, amount := range c.CategoryTotals(account, criticality) {
		if fieldEqual(label, category) {
			total += amount
		}
	}
	return total
}

func (c *Collection) filterBy(match func(core.Transaction) bool, account []string) *Collection {
	var out []core.Transaction
	for _, tx := range c.txs {
		if match(tx) {
			out = append(out, tx)
		}
	}
	result := New(c.description, out)
	if len(account) > 0 && strings.TrimSpace(account[0]) != "" {
		result = result.FilterByAccount(account[0])
	}
	return result
}

func fieldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
