// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cimeika/seomatrix/internal/validate"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested matrix file does not exist.
	ErrConfigNotFound = errors.New("seo matrix config not found")

	// ErrConfigInvalid classifies every structural or semantic load failure.
	ErrConfigInvalid = errors.New("seo matrix config invalid")

	// ErrUnknownField classifies strict YAML decode failures caused by unknown keys.
	// It is always reported together with ErrConfigInvalid.
	ErrUnknownField = errors.New("unknown config field")

	// ErrUnrecognizedShape is reported when the root carries none of the
	// characteristic keys of a known shape. It is also an ErrConfigInvalid.
	ErrUnrecognizedShape = errors.New("unrecognized root shape")
)

// ConfigError is the typed, fatal load error. It names every problem found.
type ConfigError struct {
	Kind     error // ErrConfigNotFound or ErrConfigInvalid
	Path     string
	Shape    Shape
	Problems []string
	Cause    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Shape != ShapeUnknown {
		fmt.Fprintf(&b, " (%s shape)", e.Shape)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	switch {
	case len(e.Problems) > 0:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Problems, "; "))
	case e.Cause != nil:
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is/As.
func (e *ConfigError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func invalidf(shape Shape, format string, args ...any) *ConfigError {
	msg := fmt.Sprintf(format, args...)
	return &ConfigError{Kind: ErrConfigInvalid, Shape: shape, Problems: []string{msg}}
}

func invalidCause(shape Shape, cause error) *ConfigError {
	return &ConfigError{Kind: ErrConfigInvalid, Shape: shape, Cause: cause}
}

// fromValidation converts accumulated validation failures into a ConfigError.
func fromValidation(shape Shape, err error) *ConfigError {
	cerr := &ConfigError{Kind: ErrConfigInvalid, Shape: shape, Cause: err}
	var verr validate.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors() {
			cerr.Problems = append(cerr.Problems, fe.Field+": "+fe.Message)
		}
	}
	return cerr
}

func withPath(err error, path string) error {
	var cerr *ConfigError
	if errors.As(err, &cerr) && cerr.Path == "" {
		cerr.Path = path
	}
	return err
}
