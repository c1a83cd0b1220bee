package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/ledger"
	"tally/internal/model"
	"tally/internal/query"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add, list, update, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType     string
		amount     float64
		categoryID string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a transaction",
		Long:  `Record a new income or expense transaction. Expenses require --category.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			when, err := parseDateFlag(date, "transaction")
			if err != nil {
				return err
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := l.AddTransaction(ctx, ledger.TransactionInput{
				Date:        when,
				Description: args[0],
				CategoryID:  categoryID,
				Type:        model.TransactionType(txType),
				Amount:      amount,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s of %s (ID: %s)", txType, formatAmount(amount), id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "expense", "transaction type (income, expense)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in currency units (required)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required for expenses)")
	cmd.Flags().StringVar(&date, "date", "", "transaction date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		search     string
		categoryID string
		txType     string
		from       string
		to         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `Display transactions newest first, optionally filtered by text, category, type, and date range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			fromDate, err := parseDateFlag(from, "from")
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag(to, "to")
			if err != nil {
				return err
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txns := query.Apply(l.Transactions(), query.Filter{
				Search:     search,
				CategoryID: categoryID,
				Type:       model.TransactionType(txType),
				From:       fromDate,
				To:         toDate,
			})
			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("ID"))

			for _, txn := range txns {
				categoryName := ""
				if txn.CategoryID != "" {
					categoryName = model.UnknownCategoryName
					if cat, ok := l.CategoryByID(txn.CategoryID); ok {
						categoryName = cat.Name
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.Date.Format("2006-01-02"),
					txn.Type,
					formatAmount(txn.Amount),
					txn.Description,
					categoryName,
					cli.SubtleStyle.Render(txn.ID))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring match on description")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	cmd.Flags().StringVar(&txType, "type", "", "filter by type (income, expense)")
	cmd.Flags().StringVar(&from, "from", "", "start date as YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date as YYYY-MM-DD (inclusive)")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		description string
		txType      string
		amount      float64
		categoryID  string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Long:  `Change fields of an existing transaction. The result must still be a valid transaction.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			patch := ledger.TransactionPatch{}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("type") {
				t := model.TransactionType(txType)
				patch.Type = &t
			}
			if cmd.Flags().Changed("amount") {
				patch.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("date") {
				when, err := parseDateFlag(date, "transaction")
				if err != nil {
					return err
				}
				patch.Date = &when
			}
			if patch == (ledger.TransactionPatch{}) {
				return fmt.Errorf("must specify at least one field to update")
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := l.UpdateTransaction(ctx, args[0], patch); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated transaction %s", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&txType, "type", "", "new type (income, expense)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&categoryID, "category", "", "new category id")
	cmd.Flags().StringVar(&date, "date", "", "new date as YYYY-MM-DD")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long:  `Remove a transaction permanently. Deleting an unknown id is a no-op.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := l.DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted transaction %s", args[0])))
			return nil
		},
	}
}

// userFacingError rewrites core errors that deserve a specific message.
func userFacingError(err error) error {
	var inUse *ledger.CategoryInUseError
	if errors.As(err, &inUse) {
		return fmt.Errorf("cannot delete: %d transaction(s) still use this category; reassign or delete them first", inUse.Transactions)
	}
	return err
}
