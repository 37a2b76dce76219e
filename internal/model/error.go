package model

import "fmt"

// PackageMissingError reports a manifest whose import is not available in
// the running process. Hint holds a ready-to-copy install command.
type PackageMissingError struct {
	Import string
	URL    string
	Hint   string
	Err    error
}

func (e *PackageMissingError) Error() string {
	return fmt.Sprintf("package %q is not available. Try installing it with:\n`%s`", e.Import, e.Hint)
}

func (e *PackageMissingError) Unwrap() error { return e.Err }

// FunctionMissingError reports a backend that lacks the manifest's prediction function.
type FunctionMissingError struct {
	Import   string
	Function string
	Err      error
}

func (e *FunctionMissingError) Error() string {
	return fmt.Sprintf("package %q has no prediction function %q: %v", e.Import, e.Function, e.Err)
}

func (e *FunctionMissingError) Unwrap() error { return e.Err }
