package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/spf13/cobra"
)

func newCategoriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage product categories",
	}
	cmd.AddCommand(
		newCategoriesListCommand(a),
		newCategoriesGetCommand(a),
		newCategoriesCreateCommand(a),
		newCategoriesUpdateCommand(a),
		newCategoriesDeleteCommand(a),
	)
	return cmd
}

func newCategoriesListCommand(a *app) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client.Categories.List(cmd.Context(), page, limit)
			if err != nil {
				return explain("failed to list categories", err)
			}
			return a.render(result, func(w io.Writer) {
				if len(result.Data) == 0 {
					fmt.Fprintln(w, "No categories found.")
					return
				}
				writeCategories(w, result.Data)
				pageFooter(w, result.Meta)
			})
		},
	}
	addPageFlags(cmd, &page, &limit)
	return cmd
}

func newCategoriesGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.client.Categories.Get(cmd.Context(), args[0])
			if err != nil {
				return explain("failed to get category", err)
			}
			return a.render(category, func(w io.Writer) {
				writeCategories(w, []client.Category{*category})
			})
		},
	}
}

func newCategoriesCreateCommand(a *app) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"add"},
		Short:   "Create a category",
		Long: `Create a category, optionally below a parent.

Examples:
  backoffice-cli categories create Bebidas
  backoffice-cli categories create Gaseosas --parent 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.client.Categories.Create(cmd.Context(), client.CategoryInput{
				Name:     args[0],
				ParentID: parent,
			})
			if err != nil {
				return explain("failed to create category", err)
			}
			return a.render(category, func(w io.Writer) {
				fmt.Fprintf(w, "Created category %s (%s)\n", category.Name, category.ID)
			})
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "Parent category ID")
	return cmd
}

func newCategoriesUpdateCommand(a *app) *cobra.Command {
	var (
		name        string
		parent      string
		position    int
		clearParent bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long: `Update a category. Only the flags given are changed.

Examples:
  backoffice-cli categories update 7 --name Lacteos
  backoffice-cli categories update 7 --position 2
  backoffice-cli categories update 7 --clear-parent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("parent") && clearParent {
				return errors.New("--parent and --clear-parent are mutually exclusive")
			}

			patch := client.CategoryPatch{ClearParent: clearParent}
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("parent") {
				patch.ParentID = &parent
			}
			if flags.Changed("position") {
				patch.Position = &position
			}
			if patch.Name == nil && patch.ParentID == nil && patch.Position == nil && !patch.ClearParent {
				return errors.New("nothing to update")
			}

			category, err := a.client.Categories.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return explain("failed to update category", err)
			}
			return a.render(category, func(w io.Writer) {
				fmt.Fprintf(w, "Updated category %s (%s)\n", category.Name, category.ID)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent category ID")
	cmd.Flags().IntVar(&position, "position", 0, "New position among siblings")
	cmd.Flags().BoolVar(&clearParent, "clear-parent", false, "Move the category to the top level")
	return cmd
}

func newCategoriesDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Categories.Delete(cmd.Context(), args[0]); err != nil {
				return explain("failed to delete category", err)
			}
			fmt.Fprintf(a.out, "Deleted category %s\n", args[0])
			return nil
		},
	}
}

func writeCategories(w io.Writer, categories []client.Category) {
	fmt.Fprintln(w, "ID\tNAME\tPARENT\tPOSITION\tCHILDREN\tPRODUCTS")
	for _, c := range categories {
		parent := "-"
		if c.Parent != nil {
			parent = c.Parent.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			c.ID, c.Name, parent, c.Position, c.ChildrenCount, c.ProductsCount)
	}
}

func addPageFlags(cmd *cobra.Command, page, limit *int) {
	cmd.Flags().IntVar(page, "page", 1, "Page number")
	cmd.Flags().IntVar(limit, "limit", 10, "Items per page")
}
