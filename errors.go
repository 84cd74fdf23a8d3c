package treeconv

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeNoHandler reports that no handler resolved for a descriptor (strict
	// parse) or for a runtime value (serialize).
	CodeNoHandler = "no_handler"
	// CodeBadDescriptor reports a descriptor whose type-argument arity is
	// invalid for its family (dict without two args, union without args, ...).
	CodeBadDescriptor = "bad_descriptor"
	// CodeInvalidType reports a tree node whose runtime kind does not match
	// what the target family expects, under strict mode.
	CodeInvalidType = "invalid_type"
	// CodeTupleArity reports a fixed-arity tuple receiving fewer elements than
	// declared positions. It is fatal regardless of strict/loose mode.
	CodeTupleArity     = "tuple_arity"
	CodeUnionNoMatch   = "union_no_match"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidLiteral = "invalid_literal"
	CodeInvalidFormat  = "invalid_format"
)

// Issue represents a single conversion error entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /friends/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"want":"int", "got":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries at least one Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// rebaseIssues re-parents child issues under base so nested conversion errors
// surface with full JSON-Pointer paths.
func rebaseIssues(base string, err error) Issues {
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeInvalidType, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
