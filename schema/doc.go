// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema builds a config.Schema from a declarative YAML, TOML or JSON document.
//
// A document lists parameters in declaration order:
//
//	parameters:
//	  - key: general/log_level
//	    default: info
//	    usage: Verbosity of the installer.
//	    options: [debug, info, warning]
//	    processors: [trim, lower]
//	  - key: general/hosts
//	    multi: true
//	    validators: [required, ip]
//
// Processor and validator names are resolved through a [Catalog].
package schema
