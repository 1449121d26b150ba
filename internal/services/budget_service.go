// Package services orchestrates the budget operations the CLI exposes:
// loading and importing files, computing breakdowns, running goal plans,
// and building sync snapshots.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"budgetbook/internal/breakdown"
	"budgetbook/internal/collection"
	"budgetbook/internal/core"
	"budgetbook/internal/csvio"
	"budgetbook/internal/log"
	"budgetbook/internal/planner"
	"budgetbook/internal/syncsnap"
	"budgetbook/internal/workspace"
)

// BudgetService owns the current transaction collection and projection set.
// Both are replaced wholesale on every load or import, never mutated in
// place, so nothing here needs locking.
type BudgetService struct {
	ws     *workspace.Store
	logger *log.Logger

	budgetPath      string
	projectionsPath string
	txs             *collection.Collection
	projections     *planner.ProjectionSet
}

// NewBudgetService wires a service. The workspace store may be nil, in which
// case last-used paths are simply not remembered.
func NewBudgetService(ws *workspace.Store, logger *log.Logger) *BudgetService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &BudgetService{
		ws:          ws,
		logger:      logger.WithComponent(log.ComponentService),
		txs:         collection.New("empty", nil),
		projections: planner.NewProjectionSet(nil),
	}
}

// Load reads the budget file and its sibling projections file, replacing the
// current state wholesale. The two files are independent and read
// concurrently. "Active" rows found in the budget file fold into the
// projection set alongside the projections file contents.
func (s *BudgetService) Load(ctx context.Context, budgetPath string) error {
	projectionsPath := csvio.ProjectionsPathFor(budgetPath)

	var (
		res       *csvio.ImportResult
		fileProjs []core.ProjectedExpense
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res, err = csvio.ReadBudgetFile(budgetPath)
		return err
	})
	g.Go(func() error {
		var err error
		fileProjs, err = csvio.ReadProjectionsFile(projectionsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load budget: %w", err)
	}

	s.budgetPath = budgetPath
	s.projectionsPath = projectionsPath
	s.txs = collection.New(budgetPath, res.Transactions)
	s.projections = planner.NewProjectionSet(append(fileProjs, res.Projections...))

	s.registerPeriods(ctx, res.Transactions)

	if s.ws != nil {
		if err := s.ws.RememberBudgetPath(ctx, budgetPath, projectionsPath); err != nil {
			s.logger.WarnContext(ctx, "Could not remember budget path", log.FieldError, err)
		}
	}

	s.logger.InfoContext(ctx, "Budget loaded",
		log.FieldPath, budgetPath,
		log.FieldCount, s.txs.Count(),
		"projections", s.projections.Len(),
		log.FieldSkipped, res.SkippedRows)
	return nil
}

// Import merges another budget file into the current state and writes both
// files back out. Skipped row counts are reported so callers can surface
// partial success.
func (s *BudgetService) Import(ctx context.Context, path string) (added, skipped int, err error) {
	if s.budgetPath == "" {
		return 0, 0, fmt.Errorf("import: no budget file loaded")
	}

	res, err := csvio.ReadBudgetFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}

	merged := append(s.txs.Transactions(), res.Transactions...)
	s.txs = collection.New(s.budgetPath, merged)
	s.projections.Add(res.Projections...)
	s.registerPeriods(ctx, res.Transactions)

	if err := csvio.WriteBudgetFile(s.budgetPath, s.txs.Transactions()); err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}
	if err := s.SaveProjections(); err != nil {
		return 0, 0, fmt.Errorf("import: %w", err)
	}

	added = len(res.Transactions) + len(res.Projections)
	s.logger.InfoContext(ctx, "Budget imported",
		log.FieldPath, path, log.FieldCount, added, log.FieldSkipped, res.SkippedRows)
	return added, res.SkippedRows, nil
}

// Collection returns the current transaction collection.
func (s *BudgetService) Collection() *collection.Collection { return s.txs }

// Projections returns the current projection set.
func (s *BudgetService) Projections() *planner.ProjectionSet { return s.projections }

// BudgetPath returns the currently loaded budget file path.
func (s *BudgetService) BudgetPath() string { return s.budgetPath }

// Summary builds a fresh breakdown over the current state. Projected
// expenses are folded in unless actualsOnly is set.
func (s *BudgetService) Summary(actualsOnly bool) *breakdown.Breakdown {
	if actualsOnly {
		return breakdown.Build(s.txs.Transactions())
	}
	return breakdown.BuildWithProjections(s.txs.Transactions(), s.projections.Items())
}

// PlanGoal recomputes one individual's projection for a category and
// persists the updated projection set.
func (s *BudgetService) PlanGoal(person, criticality, category string, goal float64, days int) (planner.Projection, error) {
	proj := planner.PlanGoal(s.projections, s.txs, person, criticality, category, goal, days)
	if err := s.SaveProjections(); err != nil {
		return planner.Projection{}, err
	}
	return proj, nil
}

// PlanJointGoal halves the goal across both individuals and persists the
// updated projection set.
func (s *BudgetService) PlanJointGoal(criticality, category string, goal float64, days int) (map[string]planner.Projection, error) {
	projs := planner.PlanJointGoal(s.projections, s.txs, criticality, category, goal, days)
	if err := s.SaveProjections(); err != nil {
		return nil, err
	}
	return projs, nil
}

// SaveProjections writes the projection set to its sibling file.
func (s *BudgetService) SaveProjections() error {
	if s.projectionsPath == "" {
		return fmt.Errorf("save projections: no budget file loaded")
	}
	return csvio.WriteProjectionsFile(s.projectionsPath, s.projections.Items())
}

// Snapshot assembles the hashed backup document over the current state.
func (s *BudgetService) Snapshot(ctx context.Context) (*syncsnap.Snapshot, error) {
	state := map[string]string{}
	if s.ws != nil {
		var err error
		state, err = s.ws.State(ctx)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	return syncsnap.Build(s.txs.Transactions(), s.projections.Items(), state)
}

func (s *BudgetService) registerPeriods(ctx context.Context, txs []core.Transaction) {
	if s.ws == nil {
		return
	}
	seen := make(map[string]bool)
	for _, tx := range txs {
		if tx.StatementPeriod == "" || seen[tx.StatementPeriod] {
			continue
		}
		seen[tx.StatementPeriod] = true
		if err := s.ws.AddStatementPeriod(ctx, tx.StatementPeriod); err != nil {
			s.logger.WarnContext(ctx, "Could not register statement period",
				log.FieldPeriod, tx.StatementPeriod, log.FieldError, err)
		}
	}
}
