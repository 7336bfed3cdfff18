// Package config composes and validates the configuration for an
// inference run.
//
// A run document is a YAML file whose defaults: list names the
// sub-config documents to merge, in order, with _self_ marking the run
// document's own position:
//
//	defaults:
//	  - _self_
//	  - model: base
//	  - logging: custom-no-rank
//
// Sub-configs live under the config directory as <group>/<name>.yaml.
// The model and logging groups merge under their section key; any other
// group (dataset presets, quality presets) merges at the top level and
// records the chosen name under the group key. On top of the composed
// document, environment variables and explicit key=value overrides
// apply.
//
// Composition order (lowest to highest priority):
//  1. Built-in defaults (Default())
//  2. Layers of the defaults: list, in listed order
//  3. Environment variables (MATRUN_*)
//  4. Explicit overrides (--set key=value)
//
// Environment Variable Convention:
//   - Prefix: MATRUN_
//   - Nested fields: use underscores (MATRUN_LONG_TERM_MAX_MEM_FRAMES)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
//
// Example usage:
//
//	run, err := config.NewLoader("configs").Load("matanyone.yaml")
//	if err != nil {
//	    return err
//	}
//	settings := run.ToEngineSettings()
//
// The resolved Run is immutable by convention: it is built once at
// process start and handed to the engine as a value projection.
package config
