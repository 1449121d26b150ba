package csvio

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"budgetbook/internal/core"
)

// BudgetHeader is the required first row of a budget file. The Payment
// Method column is optional (8- vs 9-column variant).
const BudgetHeader = "Name,Amount,Category,Criticality,Transaction Date,Account,status,Created time,Payment Method"

// ProjectionsHeader is the first row of a projections file.
const ProjectionsHeader = "Person,Criticality,Subcategory,Amount,IsJoint"

const minBudgetColumns = 8

// ProjectionsFileName is the conventional sibling of a budget file.
const ProjectionsFileName = "projections.csv"

// ProjectionsPathFor derives the projections file path living next to the
// given budget file.
func ProjectionsPathFor(budgetPath string) string {
	return filepath.Join(filepath.Dir(budgetPath), ProjectionsFileName)
}

// ImportResult is what a budget file read produces. Rows whose status is
// "active" are planned expenses, not actual transactions, and surface as
// projections.
type ImportResult struct {
	Transactions []core.Transaction
	Projections  []core.ProjectedExpense
	SkippedRows  int
}

// ReadBudgetFile reads a budget CSV. The header row is required. Blank rows,
// rows starting with a comma, and rows with fewer than eight fields are
// skipped individually; the rest of the import proceeds. Partial success is
// normal here.
func ReadBudgetFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open budget file: %w", err)
	}
	defer f.Close()

	res := &ImportResult{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			// Header row; nothing to validate beyond its presence.
			continue
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ",") {
			continue
		}

		fields := SplitLine(line)
		if len(fields) < minBudgetColumns {
			res.SkippedRows++
			slog.Warn("Skipping malformed budget row",
				"path", path, "line", lineNo, "fields", len(fields))
			continue
		}

		tx := core.NewTransaction(core.Transaction{
			Name:            strings.TrimSpace(fields[0]),
			Amount:          ParseAmount(fields[1]),
			Category:        strings.TrimSpace(fields[2]),
			Criticality:     fields[3],
			TransactionDate: strings.TrimSpace(fields[4]),
			Account:         strings.TrimSpace(fields[5]),
			Status:          strings.TrimSpace(fields[6]),
			CreatedTime:     strings.TrimSpace(fields[7]),
		})
		if len(fields) > 8 {
			tx.PaymentMethod = strings.TrimSpace(fields[8])
		}
		if len(fields) > 9 {
			tx.StatementPeriod = strings.TrimSpace(fields[9])
		}

		if strings.EqualFold(tx.Status, core.StatusActive) {
			res.Projections = append(res.Projections,
				core.NewProjectedExpenses(tx.Account, tx.Criticality, tx.Category, tx.Amount)...)
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}

	return res, nil
}

// WriteBudgetFile writes transactions back out with proper field escaping.
func WriteBudgetFile(path string, txs []core.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create budget file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, BudgetHeader)
	for _, tx := range txs {
		fields := []string{
			EscapeField(tx.Name),
			FormatAmount(tx.Amount),
			EscapeField(tx.Category),
			EscapeField(tx.Criticality),
			EscapeField(tx.TransactionDate),
			EscapeField(tx.Account),
			EscapeField(tx.Status),
			EscapeField(tx.CreatedTime),
			EscapeField(tx.PaymentMethod),
		}
		if tx.StatementPeriod != "" {
			fields = append(fields, EscapeField(tx.StatementPeriod))
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write budget file: %w", err)
	}
	return nil
}

// ReadProjectionsFile reads a projections CSV. A missing file is not an
// error; it simply means no projections have been recorded yet.
func ReadProjectionsFile(path string) ([]core.ProjectedExpense, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open projections file: %w", err)
	}
	defer f.Close()

	var projs []core.ProjectedExpense
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if len(fields) < 4 {
			slog.Warn("Skipping malformed projection row", "path", path, "line", lineNo)
			continue
		}
		p := core.ProjectedExpense{
			Person:      strings.TrimSpace(fields[0]),
			Criticality: core.NormalizeCriticality(fields[1]),
			Subcategory: strings.TrimSpace(fields[2]),
			Amount:      ParseAmount(fields[3]),
		}
		if len(fields) > 4 {
			p.IsJoint = strings.EqualFold(strings.TrimSpace(fields[4]), "true")
		}
		projs = append(projs, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read projections file: %w", err)
	}
	return projs, nil
}

// WriteProjectionsFile writes the projection records next to the budget file.
func WriteProjectionsFile(path string, projs []core.ProjectedExpense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create projections file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, ProjectionsHeader)
	for _, p := range projs {
		joint := "false"
		if p.IsJoint {
			joint = "true"
		}
		fmt.Fprintln(w, strings.Join([]string{
			EscapeField(p.Person),
			EscapeField(p.Criticality),
			EscapeField(p.Subcategory),
			FormatAmount(p.Amount),
			joint,
		}, ","))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write projections file: %w", err)
	}
	return nil
}

// EnsureBudgetFile creates an empty budget file with a header row if nothing
// exists at path yet. Used on first run.
func EnsureBudgetFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat budget file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create budget directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(BudgetHeader+"\n"), 0644); err != nil {
		return fmt.Errorf("initialize budget file: %w", err)
	}
	return nil
}
