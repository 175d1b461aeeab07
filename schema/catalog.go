// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/z5labs/iniconf/config"
	"github.com/z5labs/iniconf/config/key"
	"github.com/z5labs/iniconf/internal/try"

	"github.com/go-playground/validator/v10"
)

// UnknownProcessorError occurs when a processor name is not registered in the [Catalog].
type UnknownProcessorError struct {
	Name string
}

// Error implements the error interface.
func (e UnknownProcessorError) Error() string {
	return fmt.Sprintf("unknown processor: %s", e.Name)
}

// UnknownValidatorError occurs when a validator expression is neither
// registered in the [Catalog] nor a valid validator tag.
type UnknownValidatorError struct {
	Expr  string
	Cause error
}

// Error implements the error interface.
func (e UnknownValidatorError) Error() string {
	return fmt.Sprintf("unknown validator %q: %s", e.Expr, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e UnknownValidatorError) Unwrap() error {
	return e.Cause
}

var errEmptyExpr = errors.New("empty validator expression")

// CatalogOption registers additional entries with a [Catalog].
type CatalogOption func(*Catalog)

// WithProcessor registers p under name, replacing any builtin of the same name.
func WithProcessor(name string, p config.Processor) CatalogOption {
	return func(c *Catalog) {
		c.processors[name] = config.NamedProcessor(name, p)
	}
}

// WithValidator registers v under name, replacing any builtin of the same name.
func WithValidator(name string, v config.Validator) CatalogOption {
	return func(c *Catalog) {
		c.validators[name] = config.NamedValidator(name, v)
	}
}

// Catalog resolves the processor and validator names used in a [Document].
//
// Builtin processors are trim, lower, upper, bool and abspath. Validators
// are either registered by name, the cross parameter "requires=<key>" or
// any github.com/go-playground/validator tag expression, e.g. "required",
// "ip", "min=1,max=8". Additional tags "port" and "yesno" are registered.
type Catalog struct {
	processors map[string]config.Processor
	validators map[string]config.Validator
	validate   *validator.Validate
}

// NewCatalog returns a Catalog with the builtin entries and the given options applied.
func NewCatalog(opts ...CatalogOption) *Catalog {
	v := validator.New()
	mustRegister(v, "port", validatePort)
	mustRegister(v, "yesno", validateYesNo)

	c := &Catalog{
		processors: make(map[string]config.Processor),
		validators: make(map[string]config.Validator),
		validate:   v,
	}
	builtins := map[string]func(string) (string, error){
		"trim":    trimValue,
		"lower":   lowerValue,
		"upper":   upperValue,
		"bool":    boolValue,
		"abspath": absPath,
	}
	for name, f := range builtins {
		c.processors[name] = config.NamedProcessor(name, ignoreContext(f))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func mustRegister(v *validator.Validate, tag string, f validator.Func) {
	if err := v.RegisterValidation(tag, f); err != nil {
		panic(err)
	}
}

// Processor returns the processor registered under name.
func (c *Catalog) Processor(name string) (config.Processor, error) {
	p, ok := c.processors[name]
	if !ok {
		return nil, UnknownProcessorError{Name: name}
	}
	return p, nil
}

// Validator resolves expr to a validator.
func (c *Catalog) Validator(expr string) (config.Validator, error) {
	if v, ok := c.validators[expr]; ok {
		return v, nil
	}
	if strings.TrimSpace(expr) == "" {
		return nil, UnknownValidatorError{Expr: expr, Cause: errEmptyExpr}
	}

	if ref, ok := strings.CutPrefix(expr, "requires="); ok {
		k, err := key.Parse(ref)
		if err != nil {
			return nil, UnknownValidatorError{Expr: expr, Cause: err}
		}
		return config.NamedValidator(expr, requires(k)), nil
	}

	err := checkTag(c.validate, expr)
	if err != nil {
		return nil, UnknownValidatorError{Expr: expr, Cause: err}
	}
	return tagValidator{validate: c.validate, tag: expr}, nil
}

// checkTag relies on validator panicking for undefined tags.
func checkTag(v *validator.Validate, tag string) (err error) {
	defer try.Recover(&err)

	_ = v.Var("", tag)
	return nil
}

func ignoreContext(f func(string) (string, error)) config.ProcessorFunc {
	return func(value string, _ key.Key, _ config.Reader) (string, error) {
		return f(value)
	}
}

func trimValue(s string) (string, error)  { return strings.TrimSpace(s), nil }
func lowerValue(s string) (string, error) { return strings.ToLower(s), nil }
func upperValue(s string) (string, error) { return strings.ToUpper(s), nil }

// boolValue normalizes common boolean spellings to y or n and leaves
// anything else untouched for validators to reject.
func boolValue(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "on":
		return "y", nil
	case "n", "no", "false", "0", "off":
		return "n", nil
	default:
		return s, nil
	}
}

func absPath(s string) (string, error) {
	if s == "" {
		return s, nil
	}
	return filepath.Abs(s)
}

func validatePort(fl validator.FieldLevel) bool {
	n, err := strconv.ParseUint(fl.Field().String(), 10, 16)
	return err == nil && n > 0
}

func validateYesNo(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "y" || s == "n"
}

// TagError describes which validator tag rejected a value.
type TagError struct {
	Tag   string
	Param string
}

// Error implements the error interface.
func (e TagError) Error() string {
	switch e.Tag {
	case "required":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", e.Param)
	case "min":
		return fmt.Sprintf("value must be at least %s", e.Param)
	case "max":
		return fmt.Sprintf("value must be at most %s", e.Param)
	case "port":
		return "value must be a port number between 1 and 65535"
	case "yesno":
		return "value must be y or n"
	}
	if e.Param != "" {
		return fmt.Sprintf("value failed %s=%s validation", e.Tag, e.Param)
	}
	return fmt.Sprintf("value failed %s validation", e.Tag)
}

type tagValidator struct {
	validate *validator.Validate
	tag      string
}

func (v tagValidator) String() string { return v.tag }

func (v tagValidator) Validate(value string, _ key.Key, _ config.Reader) error {
	err := v.validate.Var(value, v.tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return TagError{Tag: verrs[0].Tag(), Param: verrs[0].Param()}
	}
	return err
}

// DependencyError occurs when a value is set although the parameter it
// depends on is not enabled.
type DependencyError struct {
	Requires key.Key
}

// Error implements the error interface.
func (e DependencyError) Error() string {
	return fmt.Sprintf("value must be empty unless %s is set to y", e.Requires)
}

func requires(dep key.Key) config.ValidatorFunc {
	return func(value string, _ key.Key, cfg config.Reader) error {
		if value == "" {
			return nil
		}
		v, err := cfg.Get(dep)
		if err != nil {
			return err
		}
		if v.String() != "y" {
			return DependencyError{Requires: dep}
		}
		return nil
	}
}
