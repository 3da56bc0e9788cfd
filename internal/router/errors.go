package router

import "fmt"

// ContentRootError reports a content root that cannot be used: missing,
// unreadable, or not a directory.
type ContentRootError struct {
	Path   string
	Reason string
}

func (e *ContentRootError) Error() string {
	return fmt.Sprintf("invalid content root %q: %s", e.Path, e.Reason)
}

// PathTraversalError reports a URL path rejected for security reasons,
// either during sanitization or because the resolved file escapes the
// content root.
type PathTraversalError struct {
	Path   string
	Reason string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// IOError reports an underlying filesystem failure while resolving a path.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error for %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
