package pipeline

import (
	"errors"
	"fmt"
)

// SchemaError reports an input that fails the minimum shape checks or
// carries columns the configuration does not declare.
type SchemaError struct {
	Rows    int
	Cols    int
	Column  string
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("schema: %s (rows=%d, cols=%d)", e.Message, e.Rows, e.Cols)
}

// InvalidStepError reports a transformation step that is inapplicable to a
// column's declared type or current state.
type InvalidStepError struct {
	Column  string
	Step    StepKind
	Message string
}

// Error implements the error interface.
func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step %s on column %q: %s", e.Step, e.Column, e.Message)
}

// ConfigurationError reports a pipeline specification that references an
// absent column or carries unusable step parameters.
type ConfigurationError struct {
	Column  string
	Step    StepKind
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	switch {
	case e.Column != "" && e.Step != "":
		return fmt.Sprintf("configuration: column %q, step %s: %s", e.Column, e.Step, e.Message)
	case e.Column != "":
		return fmt.Sprintf("configuration: column %q: %s", e.Column, e.Message)
	default:
		return fmt.Sprintf("configuration: %s", e.Message)
	}
}

func newSchemaError(rows, cols int, message string) *SchemaError {
	return &SchemaError{Rows: rows, Cols: cols, Message: message}
}

func newColumnSchemaError(column, message string) *SchemaError {
	return &SchemaError{Column: column, Message: message}
}

func newInvalidStepError(column string, step StepKind, message string) *InvalidStepError {
	return &InvalidStepError{Column: column, Step: step, Message: message}
}

func newConfigurationError(column string, step StepKind, message string) *ConfigurationError {
	return &ConfigurationError{Column: column, Step: step, Message: message}
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsInvalidStepError reports whether err is an InvalidStepError.
func IsInvalidStepError(err error) bool {
	var ie *InvalidStepError
	return errors.As(err, &ie)
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
