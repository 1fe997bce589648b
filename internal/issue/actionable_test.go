// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load mod descriptor"},
			want: "failed to load mod descriptor",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "open asset bundle", Resource: "/mods/alpha/Assets/com.example.bundle"},
			want: "failed to open asset bundle: /mods/alpha/Assets/com.example.bundle",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "config.cue",
				Cause:     errors.New("syntax error"),
			},
			want: "failed to load configuration: config.cue: syntax error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := &ActionableError{Operation: "scan plugins root", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("file not found")
	err := &ActionableError{
		Operation:   "load mod descriptor",
		Resource:    "AtlyssTools.json",
		Suggestions: []string{"Run 'atlysstools init'", "Check the directory path"},
		Cause:       inner,
	}

	concise := err.Format(false)
	if !strings.Contains(concise, "• Run 'atlysstools init'") {
		t.Errorf("Format(false) missing suggestion:\n%s", concise)
	}
	if strings.Contains(concise, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "file not found") {
		t.Errorf("Format(true) missing cause in chain:\n%s", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("validate mod").
		WithResource("/mods/alpha").
		WithSuggestion("Fix the descriptor").
		WithSuggestions("Check the Assets directory", "Rebuild the bundle").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "validate mod" || err.Resource != "/mods/alpha" {
		t.Errorf("built error = %+v", err)
	}
	if len(err.Suggestions) != 3 {
		t.Errorf("got %d suggestions, want 3", len(err.Suggestions))
	}
	if !errors.Is(err, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "anything") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if WrapWithContext(nil, "anything", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("boom")
	err := WrapWithContext(cause, "open asset bundle", "b.bundle")
	if err.Resource != "b.bundle" || !errors.Is(err, cause) {
		t.Errorf("WrapWithContext = %+v", err)
	}
}
