package renderfail

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindRetryable(t *testing.T) {
	retryable := []Kind{KindInvalidSyntax, KindRateLimited, KindRemoteServer, KindNetwork, KindTimeout}
	for _, kind := range retryable {
		if !kind.Retryable() {
			t.Errorf("expected %v to be retryable", kind)
		}
	}
	terminal := []Kind{
		KindUnknown, KindSourceNotFound, KindSourceNotAFile, KindSourceReadPermission,
		KindSourceRead, KindSourceEmpty, KindAccessDenied,
		KindOutputWritePermission, KindOutputWrite,
	}
	for _, kind := range terminal {
		if kind.Retryable() {
			t.Errorf("expected %v to be terminal", kind)
		}
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindSourceNotFound, 1},
		{KindSourceNotAFile, 1},
		{KindSourceReadPermission, 1},
		{KindSourceRead, 1},
		{KindSourceEmpty, 1},
		{KindOutputWritePermission, 1},
		{KindOutputWrite, 1},
		{KindNetwork, 2},
		{KindTimeout, 2},
		{KindAccessDenied, 3},
		{KindInvalidSyntax, 3},
		{KindRateLimited, 3},
		{KindRemoteServer, 3},
		{KindUnknown, 3},
	}
	for _, tc := range cases {
		if got := ExitCode(New(tc.kind, "boom")); got != tc.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestExitCodeEdgeCases(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("unclassified")); got != 3 {
		t.Fatalf("ExitCode(plain error) = %d, want 3", got)
	}
}

func TestErrorMessageIncludesAttempts(t *testing.T) {
	err := &Error{
		Kind:     KindRemoteServer,
		Message:  "HTTP 500: rendering server error",
		Attempts: 4,
	}
	want := "HTTP 500: rendering server error (after 4 attempts)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindNetwork, "network error", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if got := err.Error(); got != "network error: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("render %s: %w", "demo.puml", New(KindRateLimited, "HTTP 429: rate limited by server"))
	if got := KindOf(err); got != KindRateLimited {
		t.Fatalf("KindOf = %v, want %v", got, KindRateLimited)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Fatalf("KindOf(plain) = %v, want %v", got, KindUnknown)
	}
}
