package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/transfer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from a file",
		Long: `Read transactions from a CSV or JSON file and add them to the ledger.
Rows that fail validation are reported and skipped; the rest import.`,
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importJSONCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Import transactions from a CSV file",
		Long: `Import comma-delimited transactions. The first row may be a header naming
date, type, amount, description, and categoryId columns in any order;
without one, columns are read in that order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			records, err := transfer.ParseCSV(f)
			if err != nil {
				return err
			}

			return runImport(ctx, records)
		},
	}
}

func importJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file>",
		Short: "Import transactions or restore a backup from a JSON file",
		Long: `Import a JSON file. A bare array of transactions is validated row by row
and appended to the ledger. A backup object (as written by 'tally export
json') replaces the transactions, categories, and budgets wholesale.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			backup, records, err := transfer.ParseJSON(data)
			if err != nil {
				return err
			}

			if backup != nil {
				l, store, err := openLedger(ctx)
				if err != nil {
					return err
				}
				defer store.Close()

				if err := l.Restore(ctx, backup.Transactions, backup.Categories, backup.Budgets); err != nil {
					return fmt.Errorf("failed to restore backup: %w", err)
				}

				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
					"✓ Restored backup: %d transaction(s), %d categories, %d budget(s)",
					len(backup.Transactions), len(backup.Categories), len(backup.Budgets))))
				return nil
			}

			return runImport(ctx, records)
		},
	}
}

// runImport normalizes candidate records and appends the valid ones.
func runImport(ctx context.Context, records []transfer.Record) error {
	if len(records) == 0 {
		fmt.Println(cli.InfoStyle.Render("Nothing to import."))
		return nil
	}

	txns, rowErrs, err := transfer.Normalize(records)
	if err != nil {
		return err
	}

	l, store, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	imported, err := l.ImportTransactions(ctx, txns)
	if err != nil {
		return fmt.Errorf("failed to import transactions: %w", err)
	}

	for _, rowErr := range rowErrs {
		fmt.Println(cli.WarningStyle.Render("⚠ skipped " + rowErr.String()))
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transaction(s), skipped %d", imported, len(rowErrs))))
	return nil
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a file",
	}

	cmd.AddCommand(exportCSVCmd())
	cmd.AddCommand(exportJSONCmd())

	return cmd
}

// openOutput opens path for writing, or stdout when path is "-" or empty.
func openOutput(path string) (io.WriteCloser, bool, error) {
	if path == "" || path == "-" {
		return os.Stdout, false, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, true, nil
}

func exportCSVCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export transactions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out, isFile, err := openOutput(output)
			if err != nil {
				return err
			}
			if isFile {
				defer out.Close()
			}

			txns := l.Transactions()
			if err := transfer.WriteCSV(out, txns); err != nil {
				return err
			}

			if isFile {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d transaction(s) to %s", len(txns), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default: stdout)")

	return cmd
}

func exportJSONCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export a full JSON backup",
		Long:  `Write transactions, categories, and budgets as one backup object that 'tally import json' can restore.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out, isFile, err := openOutput(output)
			if err != nil {
				return err
			}
			if isFile {
				defer out.Close()
			}

			backup := transfer.Backup{
				Transactions: l.Transactions(),
				Categories:   l.Categories(),
				Budgets:      l.Budgets(),
			}
			if err := transfer.WriteJSON(out, backup); err != nil {
				return err
			}

			if isFile {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported backup to %s", output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default: stdout)")

	return cmd
}
