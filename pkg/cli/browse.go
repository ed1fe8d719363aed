package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/paginate"
	"github.com/spf13/cobra"
)

const browseHelp = "[n]ext [p]rev [g]oto N [l]imit N [r]efresh [q]uit"

func newBrowseCommand(a *app) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "browse <categories|products|sales>",
		Short: "Page through a collection interactively",
		Long: `Page through a collection, reading navigation commands from stdin:

  n, next        next page
  p, prev        previous page
  g, goto N      jump to page N
  l, limit N     show N items per page (returns to page 1)
  r, refresh     reload the current page
  q, quit        exit`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"categories", "products", "sales"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := paginate.Options{
				InitialPage:  page,
				InitialLimit: limit,
				Logger:       observability.NewLogger(observability.WarnLevel, a.errOut),
			}
			ctx := cmd.Context()
			switch args[0] {
			case "categories":
				return browse(ctx, a, paginate.New(a.client.Categories.Fetcher(), opts), writeCategories)
			case "products":
				return browse(ctx, a, paginate.New(a.client.Products.Fetcher(), opts), writeProducts)
			case "sales":
				return browse(ctx, a, paginate.New(a.client.Sales.Fetcher(), opts), writeSales)
			default:
				return fmt.Errorf("unknown collection %q", args[0])
			}
		},
	}
	addPageFlags(cmd, &page, &limit)
	return cmd
}

// browse drives res from line commands on a.in and prints each settled state
func browse[T any](ctx context.Context, a *app, res *paginate.Resource[T], table func(io.Writer, []T)) error {
	res.Start(ctx)
	res.Wait()
	if err := renderState(a, res.Snapshot(), table); err != nil {
		return err
	}

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprintf(a.out, "%s > ", browseHelp)
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		state := res.Snapshot()
		switch fields[0] {
		case "q", "quit", "exit":
			return nil
		case "n", "next":
			if state.Page >= state.TotalPages() {
				fmt.Fprintln(a.out, "Already on the last page.")
				continue
			}
			res.SetPage(state.Page + 1)
		case "p", "prev":
			if state.Page <= 1 {
				fmt.Fprintln(a.out, "Already on the first page.")
				continue
			}
			res.SetPage(state.Page - 1)
		case "g", "goto":
			n, ok := numberArg(a.out, fields)
			if !ok {
				continue
			}
			res.SetPage(n)
		case "l", "limit":
			n, ok := numberArg(a.out, fields)
			if !ok {
				continue
			}
			res.SetLimit(n)
			res.ResetToFirstPage()
		case "r", "refresh":
			res.Refetch()
		default:
			fmt.Fprintf(a.out, "Unknown command %q.\n", fields[0])
			continue
		}

		res.Wait()
		if err := renderState(a, res.Snapshot(), table); err != nil {
			return err
		}
	}
}

func numberArg(out io.Writer, fields []string) (int, bool) {
	if len(fields) != 2 {
		fmt.Fprintf(out, "%s needs a number.\n", fields[0])
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		fmt.Fprintf(out, "Invalid number %q.\n", fields[1])
		return 0, false
	}
	return n, true
}

// browseView is the machine-readable form of a browse state
type browseView[T any] struct {
	Data  []T           `json:"data" yaml:"data"`
	Meta  paginate.Meta `json:"meta" yaml:"meta"`
	Error string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func renderState[T any](a *app, state paginate.State[T], table func(io.Writer, []T)) error {
	view := browseView[T]{Data: state.Data, Meta: state.Meta, Error: state.Err}
	return a.render(view, func(w io.Writer) {
		if state.Err != "" {
			fmt.Fprintf(w, "Error: %s\n", state.Err)
		} else if len(state.Data) == 0 {
			fmt.Fprintln(w, "No results.")
		} else {
			table(w, state.Data)
		}
		pageFooter(w, paginate.Meta{
			Page:       state.Page,
			TotalPages: state.TotalPages(),
			Total:      state.Meta.Total,
		})
	})
}
