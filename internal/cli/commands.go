// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/z5labs/iniconf/config"
	"github.com/z5labs/iniconf/config/key"
	"github.com/z5labs/iniconf/internal/try"

	"github.com/spf13/cobra"
)

func getCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY...",
		Short: "Print the validated value of each key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				k, err := key.Parse(arg)
				if err != nil {
					return err
				}
				v, err := cfg.GetValidated(k)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s=%s\n", k, v)
			}
			return nil
		},
	}
}

// InvalidAssignmentError occurs when a set argument is not of the form KEY=VALUE.
type InvalidAssignmentError struct {
	Arg string
}

// Error implements the error interface.
func (e InvalidAssignmentError) Error() string {
	return fmt.Sprintf("expected KEY=VALUE: %q", e.Arg)
}

func setCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY=VALUE...",
		Short: "Validate and store new values, then save the file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}

			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					return InvalidAssignmentError{Arg: arg}
				}
				k, err := key.Parse(name)
				if err != nil {
					return err
				}
				err = cfg.Set(k, value)
				if err != nil {
					return err
				}
			}
			return cfg.Save()
		},
	}
}

func checkCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the file and report whether every value is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d parameters)\n", cfg.Path(), len(cfg.Keys()))
			return nil
		},
	}
}

func describeCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [KEY...]",
		Short: "Print the metadata of each key, or of every key in the schema",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			sch, err := s.schema()
			if err != nil {
				return err
			}

			keys := sch.Keys()
			if len(args) > 0 {
				keys = make([]key.Key, 0, len(args))
				for _, arg := range args {
					k, err := key.Parse(arg)
					if err != nil {
						return err
					}
					keys = append(keys, k)
				}
			}

			out := cmd.OutOrStdout()
			for _, k := range keys {
				m, ok := sch.Lookup(k)
				if !ok {
					return config.UnknownKeyError{Key: k}
				}
				describe(out, k, m)
			}
			return nil
		},
	}
}

func describe(w io.Writer, k key.Key, m config.Metadata) {
	fmt.Fprintln(w, k)
	fmt.Fprintf(w, "  default: %q\n", m.Default)
	fmt.Fprintf(w, "  multi: %s\n", strconv.FormatBool(m.Multi))
	if len(m.Options) > 0 {
		fmt.Fprintf(w, "  options: %s\n", strings.Join(m.Options, ", "))
	}
	if m.Usage != "" {
		fmt.Fprintf(w, "  usage: %s\n", strings.Join(strings.Fields(m.Usage), " "))
	}
}

func fmtCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite the file in schema order with usage comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			return cfg.Save()
		},
	}
}
