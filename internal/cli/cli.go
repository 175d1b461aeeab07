// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the iniconf command line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/z5labs/iniconf/config"
	"github.com/z5labs/iniconf/pkg/maskslog"
	"github.com/z5labs/iniconf/schema"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every flag name, upper cased and with dashes
// replaced by underscores, to form the environment variable it can be
// set with, e.g. INICONF_LOG_LEVEL.
const EnvPrefix = "INICONF"

const (
	schemaFlag   = "schema"
	fileFlag     = "file"
	logLevelFlag = "log-level"
	maskFlag     = "mask-values"
)

// Option configures an [App].
type Option func(*App)

// FS sets the filesystem schema documents and INI files are read from.
func FS(fs afero.Fs) Option {
	return func(a *App) {
		a.fs = fs
	}
}

// Catalog sets the catalog schema documents are built against.
func Catalog(c *schema.Catalog) Option {
	return func(a *App) {
		a.catalog = c
	}
}

// App is the iniconf command line tool.
type App struct {
	fs      afero.Fs
	catalog *schema.Catalog
}

// New returns a fully initialized App.
func New(opts ...Option) *App {
	app := &App{
		fs:      afero.NewOsFs(),
		catalog: schema.NewCatalog(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run executes the command given by args. It also handles listening
// for interrupts from the underlying OS.
func (app *App) Run(args ...string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	cmd := app.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Command builds the root cobra.Command.
func (app *App) Command() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "iniconf",
		Short:        "Inspect and edit schema validated INI files",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String(schemaFlag, "", "path to the schema document (.yaml, .yml, .toml or .json)")
	flags.String(fileFlag, "", "path to the INI file")
	flags.String(logLevelFlag, "warn", "log level (debug, info, warn or error)")
	flags.Bool(maskFlag, false, "hide parameter values in log output")

	err := v.BindPFlags(flags)
	if err != nil {
		panic(err)
	}

	s := &session{app: app, v: v}
	root.AddCommand(
		getCommand(s),
		setCommand(s),
		checkCommand(s),
		describeCommand(s),
		fmtCommand(s),
	)
	return root
}

// MissingFlagError occurs when a required setting was provided neither
// as a flag nor through its environment variable.
type MissingFlagError struct {
	Name string
}

// Error implements the error interface.
func (e MissingFlagError) Error() string {
	env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(e.Name, "-", "_"))
	return fmt.Sprintf("missing required flag --%s (or %s)", e.Name, env)
}

// session carries the resolved settings of a single invocation.
type session struct {
	app *App
	v   *viper.Viper
}

func (s *session) logHandler(cmd *cobra.Command) (slog.Handler, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(s.v.GetString(logLevelFlag)))
	if err != nil {
		return nil, err
	}
	var h slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	if s.v.GetBool(maskFlag) {
		h = maskslog.NewHandler(h, "value", "from", "to")
	}
	return h, nil
}

func (s *session) schema() (*config.Schema, error) {
	path := s.v.GetString(schemaFlag)
	if path == "" {
		return nil, MissingFlagError{Name: schemaFlag}
	}
	return schema.Load(s.app.fs, path, s.app.catalog)
}

func (s *session) load(cmd *cobra.Command) (*config.Config, error) {
	h, err := s.logHandler(cmd)
	if err != nil {
		return nil, err
	}

	path := s.v.GetString(fileFlag)
	if path == "" {
		return nil, MissingFlagError{Name: fileFlag}
	}

	sch, err := s.schema()
	if err != nil {
		return nil, err
	}

	return config.Load(path, sch, config.FS(s.app.fs), config.LogHandler(h))
}
