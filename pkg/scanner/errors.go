package scanner

import "fmt"

// IOError reports a source that could not be read or fetched.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// PatternError reports an expression that does not compile.
type PatternError struct {
	Label   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q (%s): %v", e.Label, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
