package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/internal/views"
	"github.com/vango-dev/admindash/pkg/router"
)

func routesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long: `Print every entry of the dashboard's route table in match order.

Examples:
  admindash routes
  admindash routes --format=yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := views.NewTable(views.NewCatalog(views.Deps{}))
			if err != nil {
				return err
			}
			return writeRoutes(cmd.OutOrStdout(), table.Routes(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")

	return cmd
}

func writeRoutes(w io.Writer, routes []router.Route, format string) error {
	switch format {
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GROUP\tLAYOUT\tPATTERN\tTARGET")
		for _, r := range routes {
			target := r.View
			if r.Redirect != "" {
				target = "→ " + r.Redirect
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Group, r.Layout, r.Pattern, target)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(routes)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(routes); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New("D600").WithDetail(fmt.Sprintf("Unknown format %q", format))
	}
}
