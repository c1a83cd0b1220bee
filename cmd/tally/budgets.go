package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/ledger"
	"tally/internal/model"
	"tally/internal/report"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budgets",
		Long: `Set, list, and delete per-category spending limits. Setting a budget for a
category and period that already has one updates the existing budget in place.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		period string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "set <category-id>",
		Short: "Set a budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := l.SetBudget(ctx, ledger.BudgetInput{
				CategoryID: args[0],
				Period:     model.BudgetPeriod(period),
				Amount:     amount,
			})
			if err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Set %s budget of %s (ID: %s)", period, formatAmount(amount), id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "budget period (monthly, weekly)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "spending limit in currency units (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with current-period progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			statuses := report.BudgetStatuses(l.Budgets(), l.Transactions(), l.Categories(), time.Now())
			if len(statuses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets set. Use 'tally budget set' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Period"),
				cli.HeaderStyle.Render("Limit"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Progress"),
				cli.HeaderStyle.Render("ID"))

			for _, status := range statuses {
				progress := fmt.Sprintf("%d%%", status.Percent)
				if status.Over {
					progress = cli.WarningStyle.Render(progress + " over budget")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					status.CategoryName,
					status.Period,
					formatAmount(status.Limit),
					formatAmount(status.Spent),
					progress,
					cli.SubtleStyle.Render(status.BudgetID))
			}

			return nil
		},
	}
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := l.DeleteBudget(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted budget %s", args[0])))
			return nil
		},
	}
}
