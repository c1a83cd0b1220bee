package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/ledger"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, update, and delete the categories used to group expenses.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := l.Categories()
			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'tally categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Color"),
				cli.HeaderStyle.Render("Icon"))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Color, cat.Icon)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create an expense category. Color and icon fall back to defaults when omitted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := l.AddCategory(ctx, ledger.CategoryInput{
				Name:  args[0],
				Color: color,
				Icon:  icon,
			})
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created category %q (ID: %s)", args[0], id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color for display (e.g. #ef4444)")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name for display")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name  string
		color string
		icon  string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Update the name, color, or icon of an existing category.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if name == "" && color == "" && icon == "" {
				return fmt.Errorf("must specify --name, --color, or --icon to update")
			}

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			patch := ledger.CategoryPatch{}
			if name != "" {
				patch.Name = &name
			}
			if color != "" {
				patch.Color = &color
			}
			if icon != "" {
				patch.Icon = &icon
			}

			if err := l.UpdateCategory(ctx, args[0], patch); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated category %s", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon name")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. The deletion fails while transactions still reference
the category; budgets for the category are removed along with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := l.DeleteCategory(ctx, args[0]); err != nil {
				return userFacingError(err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted category %s", args[0])))
			return nil
		},
	}
}
