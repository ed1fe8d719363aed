package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/spf13/cobra"
)

func newSalesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sales",
		Aliases: []string{"sale"},
		Short:   "Record and review sales",
		Long:    `Sales can be listed, shown and recorded. They cannot be changed or deleted.`,
	}
	cmd.AddCommand(
		newSalesListCommand(a),
		newSalesGetCommand(a),
		newSalesCreateCommand(a),
	)
	return cmd
}

func newSalesListCommand(a *app) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client.Sales.List(cmd.Context(), page, limit)
			if err != nil {
				return explain("failed to list sales", err)
			}
			return a.render(result, func(w io.Writer) {
				if len(result.Data) == 0 {
					fmt.Fprintln(w, "No sales found.")
					return
				}
				writeSales(w, result.Data)
				pageFooter(w, result.Meta)
			})
		},
	}
	addPageFlags(cmd, &page, &limit)
	return cmd
}

func newSalesGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a sale and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sale, err := a.client.Sales.Get(cmd.Context(), args[0])
			if err != nil {
				return explain("failed to get sale", err)
			}
			return a.render(sale, func(w io.Writer) {
				fmt.Fprintf(w, "Sale %s\t%s\ttotal %s\n\n", sale.ID, sale.CreatedAt, sale.Total)
				fmt.Fprintln(w, "PRODUCT\tQUANTITY\tUNIT PRICE")
				for _, item := range sale.Items {
					name := item.Product.Name
					if name == "" {
						name = item.ProductID
					}
					fmt.Fprintf(w, "%s\t%d\t%s\n", name, item.Quantity, item.UnitPrice)
				}
			})
		},
	}
}

func newSalesCreateCommand(a *app) *cobra.Command {
	var items []string
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Record a sale",
		Long: `Record a sale of one or more products.

Examples:
  backoffice-cli sales create --item 12:2 --item 40:1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseSaleLines(items)
			if err != nil {
				return err
			}
			sale, err := a.client.Sales.Create(cmd.Context(), client.SaleInput{Items: lines})
			if err != nil {
				return explain("failed to record sale", err)
			}
			return a.render(sale, func(w io.Writer) {
				fmt.Fprintf(w, "Recorded sale %s (total %s)\n", sale.ID, sale.Total)
			})
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "Line as <product-id>:<quantity>; repeatable")
	return cmd
}

// parseSaleLines parses <product-id>:<quantity> pairs
func parseSaleLines(items []string) ([]client.SaleLine, error) {
	if len(items) == 0 {
		return nil, errors.New("at least one --item is required")
	}
	lines := make([]client.SaleLine, 0, len(items))
	for _, item := range items {
		id, qty, ok := strings.Cut(item, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid item %q: want <product-id>:<quantity>", item)
		}
		n, err := strconv.Atoi(qty)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q: must be a positive integer", item)
		}
		lines = append(lines, client.SaleLine{ProductID: id, Quantity: n})
	}
	return lines, nil
}

func writeSales(w io.Writer, sales []client.Sale) {
	fmt.Fprintln(w, "ID\tDATE\tITEMS\tTOTAL")
	for _, s := range sales {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, orDash(s.CreatedAt), len(s.Items), s.Total)
	}
}
