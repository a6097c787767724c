package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration file not found: %s (run 'relpub init' to create one)", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("relpub.yml is not a valid yaml document: %v", e.Wrapped)
}

type SchemaViolationError struct {
	Wrapped error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("relpub.yml does not match the expected structure: %v", e.Wrapped)
}

type InvalidURLError struct {
	Wrapped  error
	Property string
	Value    string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf(
		"relpub.yml property %s has invalid URL '%s': %v",
		e.Property,
		e.Value,
		e.Wrapped,
	)
}
