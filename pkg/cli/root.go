package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/platinummonkey/backoffice/pkg/client"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "0.1.0"

const (
	defaultServer = "http://localhost:3000"
	serverEnv     = "BACKOFFICE_SERVER"
)

// options are the persistent flags shared by every command
type options struct {
	server      string
	sessionFile string
	output      string
	timeout     time.Duration
}

// app carries the state shared by the commands of one invocation
type app struct {
	opts   options
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	// httpClient overrides the transport; tests point it at httptest servers
	httpClient *http.Client
	client     *client.Client
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice-cli",
		Short: "Back-office console CLI",
		Long: `backoffice-cli drives the back-office console from a terminal.

It signs in through the console, keeps the session cookie in a local file,
and manages categories, products and sales through the console's /api proxy.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.connect()
		},
	}

	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.in)

	server := os.Getenv(serverEnv)
	if server == "" {
		server = defaultServer
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.server, "server", server, "Console base URL (env "+serverEnv+")")
	flags.StringVar(&a.opts.sessionFile, "session-file", "", "Session file (default: <user config dir>/backoffice/session)")
	flags.StringVarP(&a.opts.output, "output", "o", "table", "Output format: table, json, yaml")
	flags.DurationVar(&a.opts.timeout, "timeout", 30*time.Second, "Request timeout")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newMeCommand(a),
		newCategoriesCommand(a),
		newProductsCommand(a),
		newSalesCommand(a),
		newBrowseCommand(a),
	)

	return root
}

// connect validates the global flags and builds the console client with the
// saved session, if any
func (a *app) connect() error {
	switch a.opts.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (must be table, json or yaml)", a.opts.output)
	}

	if a.opts.sessionFile == "" {
		path, err := defaultSessionFile()
		if err != nil {
			return err
		}
		a.opts.sessionFile = path
	}

	hc := a.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	hc.Timeout = a.opts.timeout

	c, err := client.New(a.opts.server, client.WithHTTPClient(hc))
	if err != nil {
		return err
	}

	token, err := loadSession(a.opts.sessionFile)
	if err != nil {
		return err
	}
	if token != "" {
		c.SetSessionToken(token)
	}

	a.client = c
	return nil
}

// explain turns client errors into CLI errors
func explain(action string, err error) error {
	if client.IsUnauthenticated(err) {
		return fmt.Errorf("%s: not logged in or session expired; run 'backoffice-cli login'", action)
	}
	return fmt.Errorf("%s: %w", action, err)
}
