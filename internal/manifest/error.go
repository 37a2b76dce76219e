package manifest

import "fmt"

// NotFoundError reports a manifest location that could not be opened or read.
type NotFoundError struct {
	URL string
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("manifest: %s not found", e.URL)
	}
	return fmt.Sprintf("manifest: %s not found: %v", e.URL, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports manifest content that is not valid YAML.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest: invalid YAML in %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a manifest without a required field.
type MissingFieldError struct {
	URL   string
	Field string
	Err   error
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("manifest: %s is missing required field %q", e.URL, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return e.Err }
