package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/spf13/cobra"
)

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
	}
	cmd.AddCommand(
		newProductsListCommand(a),
		newProductsGetCommand(a),
		newProductsCreateCommand(a),
		newProductsUpdateCommand(a),
		newProductsDeleteCommand(a),
	)
	return cmd
}

func newProductsListCommand(a *app) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client.Products.List(cmd.Context(), page, limit)
			if err != nil {
				return explain("failed to list products", err)
			}
			return a.render(result, func(w io.Writer) {
				if len(result.Data) == 0 {
					fmt.Fprintln(w, "No products found.")
					return
				}
				writeProducts(w, result.Data)
				pageFooter(w, result.Meta)
			})
		},
	}
	addPageFlags(cmd, &page, &limit)
	return cmd
}

func newProductsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.client.Products.Get(cmd.Context(), args[0])
			if err != nil {
				return explain("failed to get product", err)
			}
			return a.render(product, func(w io.Writer) {
				writeProducts(w, []client.Product{*product})
			})
		},
	}
}

func newProductsCreateCommand(a *app) *cobra.Command {
	var (
		price    float64
		category string
	)
	cmd := &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"add"},
		Short:   "Create a product",
		Long: `Create a product in a category.

Examples:
  backoffice-cli products create "Agua 500ml" --price 1.25 --category 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				return errors.New("--category is required")
			}
			product, err := a.client.Products.Create(cmd.Context(), client.ProductInput{
				Name:       args[0],
				Price:      price,
				CategoryID: category,
			})
			if err != nil {
				return explain("failed to create product", err)
			}
			return a.render(product, func(w io.Writer) {
				fmt.Fprintf(w, "Created product %s (%s)\n", product.Name, product.ID)
			})
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "Unit price")
	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	return cmd
}

func newProductsUpdateCommand(a *app) *cobra.Command {
	var (
		name     string
		price    float64
		category string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Long:  `Update a product. Only the flags given are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch client.ProductPatch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("price") {
				patch.Price = &price
			}
			if flags.Changed("category") {
				patch.CategoryID = &category
			}
			if patch == (client.ProductPatch{}) {
				return errors.New("nothing to update")
			}

			product, err := a.client.Products.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return explain("failed to update product", err)
			}
			return a.render(product, func(w io.Writer) {
				fmt.Fprintf(w, "Updated product %s (%s)\n", product.Name, product.ID)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&price, "price", 0, "New unit price")
	cmd.Flags().StringVar(&category, "category", "", "New category ID")
	return cmd
}

func newProductsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Products.Delete(cmd.Context(), args[0]); err != nil {
				return explain("failed to delete product", err)
			}
			fmt.Fprintf(a.out, "Deleted product %s\n", args[0])
			return nil
		},
	}
}

func writeProducts(w io.Writer, products []client.Product) {
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range products {
		category := p.CategoryName
		if category == "" {
			category = p.CategoryID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, orDash(category))
	}
}
