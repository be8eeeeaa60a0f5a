package main

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/errors"
)

func configCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after files and environment are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json", "":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			case "toml":
				return toml.NewEncoder(out).Encode(cfg)
			default:
				return errors.New("D600").
					WithDetail(fmt.Sprintf("Unknown format %q", format)).
					WithSuggestion("Use one of: json, toml.")
			}
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or toml")

	env := &cobra.Command{
		Use:   "env",
		Short: "List the recognized environment variables",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.EnvNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	cmd.AddCommand(show, env)
	return cmd
}
