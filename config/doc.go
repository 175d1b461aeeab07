// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config loads INI files whose parameters are described by a declarative schema.
//
// Every parameter is addressed by a [key.Key] of the form "section/name" and
// described by [Metadata]: a default, whether it holds multiple comma separated
// items, an ordered list of processors and validators, an optional closed set of
// allowed options and a usage text.
//
// # Value pipeline
//
// Raw input, either read from the file or given to [Config.Set], always passes
// through the same steps in the same order:
//
//   - Split: multi values are split on "," into trimmed, non-empty items. Scalar
//     values are kept verbatim as a single item.
//   - Process: every [Processor] is applied, in order, to every item.
//   - Options: if declared, every processed item must be one of the options.
//   - Validate: every [Validator] is applied, in order, to every item.
//
// The first failure aborts the pipeline with a [ValidationError] and nothing is
// stored, so a [Config] never holds a value which did not pass its pipeline.
//
// # Basic Usage
//
//	schema := config.MustSchema(
//	    config.Define("general/log_level", config.Metadata{
//	        Default: "info",
//	        Options: []string{"debug", "info", "warning"},
//	        Usage:   "Verbosity of the installer.",
//	    }),
//	    config.Define("general/hosts", config.Metadata{
//	        Default: "localhost",
//	        Multi:   true,
//	    }),
//	)
//
//	cfg, err := config.Load("answers.ini", schema)
//	if err != nil {
//	    return err
//	}
//	err = cfg.Set("general/log_level", "debug")
//	if err != nil {
//	    return err
//	}
//	return cfg.Save()
//
// # Cross parameter validation
//
// Processors and validators receive a read-only [Reader] over the config being
// built. Keys are loaded in schema declaration order, so during [Load] a key
// declared earlier is seen validated while a key declared later is seen split
// but otherwise unprocessed. After loading, [Config.GetValidated] re-runs the
// pipeline for a key whose validity depends on others.
package config
