package lfx

import (
	"fmt"
)

// FetchError reports a failed listing fetch: transport failure, timeout,
// non-2xx status, undecodable body, or an API-level error payload.
type FetchError struct {
	Op         string
	StatusCode int
	// Message carries the upstream "message" value or a trimmed error body
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("lfx: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("lfx: %s: status %d", e.Op, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("lfx: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("lfx: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("lfx: %s failed", e.Op)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IOError reports a failure to create the output directory or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("lfx: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SchemaError reports a hit that lacks a field the projection needs, or
// carries one of a type it cannot hold. Index is -1 when the response
// envelope itself is malformed.
type SchemaError struct {
	Index int
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	where := fmt.Sprintf("hit %d", e.Index)
	if e.Index < 0 {
		where = "response"
	}
	if e.Err != nil {
		return fmt.Sprintf("lfx: %s: invalid %s: %v", where, e.Field, e.Err)
	}
	return fmt.Sprintf("lfx: %s: missing %s", where, e.Field)
}

func (e *SchemaError) Unwrap() error { return e.Err }
