// Package config loads and resolves compiler options, the way the teacher's
// internal/project resolves a surge.toml project manifest: a TOML file with
// layered defaults, decoded with github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Options is the raw, as-declared compiler-options table. Any field left at
// its zero value falls back to EffectiveOptions' defaults, except Strict
// itself which has no "unset" state distinct from false.
type Options struct {
	Strict                       bool `toml:"strict"`
	NoImplicitAny                *bool `toml:"no_implicit_any"`
	StrictNullChecks             *bool `toml:"strict_null_checks"`
	StrictFunctionTypes          *bool `toml:"strict_function_types"`
	StrictPropertyInitialization *bool `toml:"strict_property_initialization"`
	NoImplicitThis               *bool `toml:"no_implicit_this"`
	UseUnknownInCatchVariables   *bool `toml:"use_unknown_in_catch_variables"`
	NoImplicitReturns            bool `toml:"no_implicit_returns"`
	AllowUnreachableCode         bool `toml:"allow_unreachable_code"`
	IsolatedModules              bool `toml:"isolated_modules"`
}

// EffectiveOptions is the fully-resolved option set the checker consults.
// It is computed once per project load so no file-level check re-derives
// the `strict` expansion.
type EffectiveOptions struct {
	NoImplicitAny                bool
	StrictNullChecks             bool
	StrictFunctionTypes          bool
	StrictPropertyInitialization bool
	NoImplicitThis                bool
	UseUnknownInCatchVariables   bool
	NoImplicitReturns            bool
	AllowUnreachableCode         bool
	IsolatedModules              bool
}

func boolOr(p *bool, strict bool) bool {
	if p != nil {
		return *p
	}
	return strict
}

// Resolve expands Strict into its six sub-flags, honoring any flag the
// project explicitly overrode.
func (o Options) Resolve() EffectiveOptions {
	return EffectiveOptions{
		NoImplicitAny:                boolOr(o.NoImplicitAny, o.Strict),
		StrictNullChecks:             boolOr(o.StrictNullChecks, o.Strict),
		StrictFunctionTypes:          boolOr(o.StrictFunctionTypes, o.Strict),
		StrictPropertyInitialization: boolOr(o.StrictPropertyInitialization, o.Strict),
		NoImplicitThis:               boolOr(o.NoImplicitThis, o.Strict),
		UseUnknownInCatchVariables:   boolOr(o.UseUnknownInCatchVariables, o.Strict),
		NoImplicitReturns:            o.NoImplicitReturns,
		AllowUnreachableCode:         o.AllowUnreachableCode,
		IsolatedModules:              o.IsolatedModules,
	}
}

type fileShape struct {
	Options Options `toml:"options"`
}

// Load reads path, a tschecker.toml project file, and returns its resolved
// options. A missing [options] table resolves to all-defaults (Strict off).
func Load(path string) (EffectiveOptions, error) {
	var doc fileShape
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}.Resolve(), nil
		}
		return EffectiveOptions{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("options") {
		return Options{}.Resolve(), nil
	}
	return doc.Options.Resolve(), nil
}
