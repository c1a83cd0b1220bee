package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render summaries, breakdowns, and trends",
	}

	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(breakdownCmd())
	cmd.AddCommand(trendCmd())

	return cmd
}

// monthWindow returns the bounds of the calendar month containing now.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func summaryCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses, and balance",
		Long:  `Totals for the current month, or for an explicit --from/--to window.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, err := parseDateFlag(from, "from")
			if err != nil {
				return err
			}
			end, err := parseDateFlag(to, "to")
			if err != nil {
				return err
			}
			if start.IsZero() && end.IsZero() {
				start, end = monthWindow(time.Now())
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txns := l.Transactions()
			income := report.TotalIncome(txns, start, end)
			expenses := report.TotalExpenses(txns, start, end)
			balance := report.Balance(txns, start, end)

			fmt.Println(cli.TitleStyle.Render("Summary"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income\t%s\n", cli.SuccessStyle.Render(formatAmount(income)))
			fmt.Fprintf(w, "Expenses\t%s\n", cli.ErrorStyle.Render(formatAmount(expenses)))
			balanceStyle := cli.SuccessStyle
			if balance < 0 {
				balanceStyle = cli.ErrorStyle
			}
			fmt.Fprintf(w, "Balance\t%s\n", balanceStyle.Render(formatAmount(balance)))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date as YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&to, "to", "", "end date as YYYY-MM-DD (default: end of month)")

	return cmd
}

func breakdownCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show spending per category",
		Long:  `Per-category expense totals and shares for the current month, or for an explicit --from/--to window.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, err := parseDateFlag(from, "from")
			if err != nil {
				return err
			}
			end, err := parseDateFlag(to, "to")
			if err != nil {
				return err
			}
			if start.IsZero() && end.IsZero() {
				start, end = monthWindow(time.Now())
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			shares := report.CategoryBreakdown(l.Transactions(), l.Categories(), start, end)
			if len(shares) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses in this window."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Spending by category"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, share := range shares {
				fmt.Fprintf(w, "%s\t%s\t%d%%\n", share.CategoryName, formatAmount(share.Amount), share.Percentage)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date as YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&to, "to", "", "end date as YYYY-MM-DD (default: end of month)")

	return cmd
}

func trendCmd() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show spending over time",
		Long: `A dense spending series: the last 30 days, 12 weeks, or 12 months
depending on --by. Periods with no spending show as zero.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			g := report.Granularity(granularity)
			switch g {
			case report.Daily, report.Weekly, report.Monthly:
			default:
				return fmt.Errorf("invalid granularity %q (want daily, weekly, or monthly)", granularity)
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			series := report.TrendSeries(l.Transactions(), g, time.Now())

			var maxAmount float64
			for _, bucket := range series {
				if bucket.Amount > maxAmount {
					maxAmount = bucket.Amount
				}
			}

			fmt.Println(cli.TitleStyle.Render("Spending trend"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			const barWidth = 40
			for _, bucket := range series {
				bar := ""
				if maxAmount > 0 {
					bar = strings.Repeat("█", int(bucket.Amount/maxAmount*barWidth))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", bucket.Key, formatAmount(bucket.Amount), cli.InfoStyle.Render(bar))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "by", "daily", "bucket size (daily, weekly, monthly)")

	return cmd
}
