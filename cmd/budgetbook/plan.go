package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetbook/internal/core"
	"budgetbook/internal/planner"
)

var (
	flagPlanPerson      string
	flagPlanJoint       bool
	flagPlanCriticality string
	flagPlanCategory    string
	flagPlanGoal        string
	flagPlanDays        string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a per-week budget projection toward a spending goal",
	Long: `Plan takes a spending goal and the days remaining, subtracts what has
already been spent (joint amounts halved) for the chosen person, criticality
and category, and spreads the remainder across the remaining weeks. The
previous projection for the same key is replaced, never stacked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Goal and days are user-typed required fields: a parse failure
		// rejects the whole operation instead of planning with a zero.
		goal, err := planner.ParseGoal(flagPlanGoal)
		if err != nil {
			return err
		}
		days, err := planner.ParseDays(flagPlanDays)
		if err != nil {
			return err
		}
		if !flagPlanJoint {
			if _, ok := core.CanonicalPerson(flagPlanPerson); !ok {
				return fmt.Errorf("unknown person %q: use --person Josh|Anna or --joint", flagPlanPerson)
			}
		}

		svc, err := loadService(cmd)
		if err != nil {
			return err
		}

		if flagPlanJoint {
			projs, err := svc.PlanJointGoal(flagPlanCriticality, flagPlanCategory, goal, days)
			if err != nil {
				return err
			}
			for _, person := range core.Persons {
				printProjection(person, projs[person])
			}
			return nil
		}

		proj, err := svc.PlanGoal(flagPlanPerson, flagPlanCriticality, flagPlanCategory, goal, days)
		if err != nil {
			return err
		}
		printProjection(flagPlanPerson, proj)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&flagPlanPerson, "person", "", "individual to plan for (Josh or Anna)")
	planCmd.Flags().BoolVar(&flagPlanJoint, "joint", false, "halve the goal and plan for both individuals")
	planCmd.Flags().StringVar(&flagPlanCriticality, "criticality", core.CriticalityEssential, "Essential or NonEssential")
	planCmd.Flags().StringVar(&flagPlanCategory, "category", "", "category the goal applies to")
	planCmd.Flags().StringVar(&flagPlanGoal, "goal", "", "target spending amount, e.g. 800 or $1,200.50")
	planCmd.Flags().StringVar(&flagPlanDays, "days", "", "days remaining in the budgeting period")
	planCmd.MarkFlagRequired("category")
	planCmd.MarkFlagRequired("goal")
	planCmd.MarkFlagRequired("days")
}

func printProjection(person string, proj planner.Projection) {
	fmt.Printf("%s: $%.2f remaining over %d week(s) = $%.2f per week\n",
		person, proj.Amount, proj.Weeks, proj.PerWeek)
}
