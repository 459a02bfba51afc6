package renderfail

import (
	"errors"
	"fmt"
)

// Kind identifies the underlying cause of a render pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota

	// Source file failures, detected before any network activity.
	KindSourceNotFound
	KindSourceNotAFile
	KindSourceReadPermission
	KindSourceRead
	KindSourceEmpty

	// Remote rendering failures, classified from the HTTP response.
	KindAccessDenied
	KindInvalidSyntax
	KindRateLimited
	KindRemoteServer

	// Transport failures below the HTTP layer.
	KindNetwork
	KindTimeout

	// Artifact persistence failures.
	KindOutputWritePermission
	KindOutputWrite
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown failure",
	KindSourceNotFound:        "source not found",
	KindSourceNotAFile:        "source not a file",
	KindSourceReadPermission:  "source read permission denied",
	KindSourceRead:            "source read failure",
	KindSourceEmpty:           "source empty",
	KindAccessDenied:          "access denied",
	KindInvalidSyntax:         "invalid diagram syntax",
	KindRateLimited:           "rate limited",
	KindRemoteServer:          "remote server error",
	KindNetwork:               "network error",
	KindTimeout:               "request timeout",
	KindOutputWritePermission: "output write permission denied",
	KindOutputWrite:           "output write failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Retryable reports whether the transport may attempt the request again
// after a failure of this kind. Access-denied responses and every local
// file failure are terminal on the first occurrence.
func (k Kind) Retryable() bool {
	switch k {
	case KindInvalidSyntax, KindRateLimited, KindRemoteServer, KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// Category groups kinds for process exit-code selection.
type Category int

const (
	CategoryOther Category = iota
	CategoryFile
	CategoryNetwork
)

// Category maps a kind to its exit-code group: local file failures,
// network-level failures, and everything else (including remote rendering
// errors).
func (k Kind) Category() Category {
	switch k {
	case KindSourceNotFound, KindSourceNotAFile, KindSourceReadPermission,
		KindSourceRead, KindSourceEmpty,
		KindOutputWritePermission, KindOutputWrite:
		return CategoryFile
	case KindNetwork, KindTimeout:
		return CategoryNetwork
	default:
		return CategoryOther
	}
}

// Error is the classified failure produced by the render pipeline.
// Attempts, when non-zero, records how many transport attempts were consumed
// before the failure became terminal.
type Error struct {
	Kind     Kind
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case msg != "" && e.Err != nil:
		msg = msg + ": " + e.Err.Error()
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case msg == "":
		msg = e.Kind.String()
	}
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s (after %d attempts)", msg, e.Attempts)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a classified error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from err, or KindUnknown when err does
// not carry one.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindUnknown
}

// ExitCode selects the process exit code for err: 0 for nil, 1 for file
// failures, 2 for network failures, 3 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err).Category() {
	case CategoryFile:
		return 1
	case CategoryNetwork:
		return 2
	default:
		return 3
	}
}
