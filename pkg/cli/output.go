package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/platinummonkey/backoffice/pkg/paginate"
	"gopkg.in/yaml.v3"
)

// render writes data as JSON or YAML, or calls table for the default format
func (a *app) render(data any, table func(w io.Writer)) error {
	switch a.opts.output {
	case "json":
		encoder := json.NewEncoder(a.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = a.out.Write(out)
		return err
	default:
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		table(w)
		return w.Flush()
	}
}

func pageFooter(w io.Writer, meta paginate.Meta) {
	fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
