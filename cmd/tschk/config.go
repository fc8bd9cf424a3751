package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"tschecker/internal/config"
)

var configPath string

func init() {
	configCmd.Flags().StringVar(&configPath, "path", "tschecker.toml", "project file to load")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved compiler options a project file expands to",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := config.Load(configPath)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(effectiveOptionsJSON(opts))
	},
}

// effectiveOptionsJSON gives config.EffectiveOptions's unexported-by-convention
// bool grid JSON field names, since that struct itself carries no tags (it is
// an in-process value object, not a wire format).
func effectiveOptionsJSON(o config.EffectiveOptions) map[string]bool {
	return map[string]bool{
		"no_implicit_any":                o.NoImplicitAny,
		"strict_null_checks":             o.StrictNullChecks,
		"strict_function_types":          o.StrictFunctionTypes,
		"strict_property_initialization": o.StrictPropertyInitialization,
		"no_implicit_this":               o.NoImplicitThis,
		"use_unknown_in_catch_variables": o.UseUnknownInCatchVariables,
		"no_implicit_returns":            o.NoImplicitReturns,
		"allow_unreachable_code":         o.AllowUnreachableCode,
		"isolated_modules":               o.IsolatedModules,
	}
}
