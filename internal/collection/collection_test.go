package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/core"
)

func tx(name string, amount float64, category, criticality, account string) core.Transaction {
	return core.NewTransaction(core.Transaction{
		Name:        name,
		Amount:      amount,
		Category:    category,
		Criticality: criticality,
		Account:     account,
	})
}

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		tx("Coffee", 4.50, "Dining", "NonEssential", "Josh"),
		tx("Yoga", 25, "Health", "Essential", "Anna"),
		tx("Groceries", 120, "Food", "Essential", "Joint"),
		tx("Rent", 1800, "Housing", "Essential", "Joint"),
	}
}

func TestNew_CopiesSnapshot(t *testing.T) {
	src := sampleTxs()
	c := New("test", src)

	src[0].Amount = 9999
	src[0].Name = "mutated"

	got := c.Transactions()
	assert.Equal(t, "Coffee", got[0].Name)
	assert.InDelta(t, 4.50, got[0].Amount, 0.0001)
}

func TestNew_TotalsComputedAtConstruction(t *testing.T) {
	c := New("test", sampleTxs())
	assert.Equal(t, 4, c.Count())
	assert.InDelta(t, 4.50+25+120+1800, c.TotalAmount(), 0.0001)
}

func TestFilterByAccount_JointHalving(t *testing.T) {
	c := New("test", sampleTxs())

	josh := c.FilterByAccount("Josh")
	anna := c.FilterByAccount("anna") // case-insensitive

	// Josh: his coffee plus half of both joint transactions.
	require.Equal(t, 3, josh.Count())
	// Anna: her yoga plus half of both joint transactions.
	require.Equal(t, 3, anna.Count())

	var joshGroceries, annaGroceries core.Transaction
	for _, tr := range josh.Transactions() {
		if tr.Category == "Food" {
			joshGroceries = tr
		}
	}
	for _, tr := range anna.Transactions() {
		if tr.Category == "Food" {
			annaGroceries = tr
		}
	}

	assert.InDelta(t, 60, joshGroceries.Amount, 0.005)
	assert.InDelta(t, 60, annaGroceries.Amount, 0.005)
	assert.InDelta(t, 120, joshGroceries.Amount+annaGroceries.Amount, 0.005)
	assert.Equal(t, "Groceries"+SplitMarker, joshGroceries.Name)
	assert.Equal(t, "Josh", joshGroceries.Account)
}

// The two halves of every joint transaction must sum back to the original
// amount, whatever the amount is.
func TestFilterByAccount_HalvesSumToOriginal(t *testing.T) {
	amounts := []float64{120, 0.01, 99.99, 1833.33}
	for _, amount := range amounts {
		c := New("test", []core.Transaction{tx("J", amount, "Cat", "Essential", "Joint")})
		josh := c.FilterByAccount("Josh").Transactions()[0]
		anna := c.FilterByAccount("Anna").Transactions()[0]
		assert.InDelta(t, amount, josh.Amount+anna.Amount, 0.005, "amount %v", amount)
	}
}

func TestFilterByAccount_OtherAccountExactOnly(t *testing.T) {
	txs := append(sampleTxs(), tx("Misc", 10, "Other", "NonEssential", "Visitor"))
	c := New("test", txs)

	visitor := c.FilterByAccount("visitor")
	require.Equal(t, 1, visitor.Count())
	assert.Equal(t, "Misc", visitor.Transactions()[0].Name)
	// No joint halves leak into unknown accounts.
	assert.InDelta(t, 10, visitor.TotalAmount(), 0.0001)
}

func TestFieldFilters(t *testing.T) {
	c := New("test", sampleTxs())

	t.Run("by name trimmed case-insensitive", func(t *testing.T) {
		got := c.FilterByName("  coffee ")
		require.Equal(t, 1, got.Count())
		assert.Equal(t, "Coffee", got.Transactions()[0].Name)
	})

	t.Run("by category", func(t *testing.T) {
		assert.Equal(t, 1, c.FilterByCategory("housing").Count())
	})

	t.Run("by criticality normalized", func(t *testing.T) {
		got := c.FilterByCriticality("Non Essential")
		require.Equal(t, 1, got.Count())
		assert.Equal(t, "Coffee", got.Transactions()[0].Name)
	})

	t.Run("by amount", func(t *testing.T) {
		assert.Equal(t, 1, c.FilterByAmount(25).Count())
		assert.Equal(t, 0, c.FilterByAmount(25.10).Count())
	})

	t.Run("by status default imported", func(t *testing.T) {
		assert.Equal(t, 4, c.FilterByStatus("imported").Count())
	})

	t.Run("no match yields empty collection", func(t *testing.T) {
		got := c.FilterByCategory("nothing here")
		assert.Equal(t, 0, got.Count())
		assert.InDelta(t, 0, got.TotalAmount(), 0.0001)
	})
}

func TestFieldFilter_WithAccountAppliesSplitting(t *testing.T) {
	c := New("test", sampleTxs())

	got := c.FilterByCategory("Food", "Josh")
	require.Equal(t, 1, got.Count())
	derived := got.Transactions()[0]
	assert.InDelta(t, 60, derived.Amount, 0.005)
	assert.Equal(t, "Josh", derived.Account)
}

func TestPersonalizedTransactions(t *testing.T) {
	c := New("test", sampleTxs())

	all := c.PersonalizedTransactions("Josh")
	assert.Equal(t, 3, all.Count())

	essential := c.PersonalizedTransactions("Josh", "Essential")
	require.Equal(t, 2, essential.Count())
	for _, tr := range essential.Transactions() {
		assert.Equal(t, "Essential", tr.Criticality)
	}
}

func TestCategoryTotals(t *testing.T) {
	c := New("test", sampleTxs())

	got := c.CategoryTotals("Josh", "Essential")
	require.Len(t, got, 2)
	assert.InDelta(t, 60, got["Food"], 0.005)
	assert.InDelta(t, 900, got["Housing"], 0.005)
}

func TestCategoryTotals_UncategorizedBucket(t *testing.T) {
	c := New("test", []core.Transaction{
		tx("Mystery", 15, "", "Essential", "Anna"),
		tx("Also mystery", 5, "   ", "Essential", "Anna"),
	})

	got := c.CategoryTotals("Anna", "Essential")
	require.Len(t, got, 1)
	assert.InDelta(t, 20, got[core.Uncategorized], 0.0001)
}

func TestCategoryTotal_CaseInsensitive(t *testing.T) {
	c := New("test", sampleTxs())

	assert.InDelta(t, 60, c.CategoryTotal("Josh", "Essential", "Food"), 0.005)
	assert.InDelta(t, 60, c.CategoryTotal("Josh", "Essential", "food"), 0.005)
	assert.InDelta(t, 60, c.CategoryTotal("Josh", "Essential", "  FOOD  "), 0.005)
	assert.Zero(t, c.CategoryTotal("Josh", "Essential", "Travel"))
}

func TestCategoryTotal_BlankCategoryReadsUncategorized(t *testing.T) {
	c := New("test", []core.Transaction{
		tx("Mystery", 15, "", "Essential", "Anna"),
	})

	assert.InDelta(t, 15, c.CategoryTotal("Anna", "Essential", ""), 0.0001)
	assert.InDelta(t, 15, c.CategoryTotal("Anna", "Essential", core.Uncategorized), 0.0001)
}
