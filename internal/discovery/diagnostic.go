// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeDescriptorParseSkipped: a directory's descriptor failed to parse;
	// the directory was skipped.
	CodeDescriptorParseSkipped DiagnosticCode = "descriptor_parse_skipped"
	// CodeDuplicateModId: two directories declare the same normalized mod
	// id; the later one (in scan order) was skipped.
	CodeDuplicateModId DiagnosticCode = "duplicate_mod_id"
	// CodeDependencyMissing: a mod declares a dependency on a mod id that
	// was not discovered; the mod still loads.
	CodeDependencyMissing DiagnosticCode = "dependency_missing"
	// CodeDependencyCycle: mods form a dependency cycle; the cycle members
	// were skipped.
	CodeDependencyCycle DiagnosticCode = "dependency_cycle"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by severity validation.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by code validation.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic represents a structured, non-fatal discovery finding that
	// is returned to callers instead of being written to stderr.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is the machine-readable identifier.
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the directory or file associated with this diagnostic
		// (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic
		// inspection).
		Cause error
	}
)

// IsValid reports whether the severity is one of the declared constants.
func (s Severity) IsValid() (bool, error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidSeverity, string(s))
	}
}

// IsValid reports whether the code is one of the declared constants.
func (c DiagnosticCode) IsValid() (bool, error) {
	switch c {
	case CodeDescriptorParseSkipped, CodeDuplicateModId, CodeDependencyMissing, CodeDependencyCycle:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidDiagnosticCode, string(c))
	}
}

// String renders the diagnostic as a single log-friendly line.
func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s [%s] %s (%s)", d.Severity, d.Code, d.Message, d.Path)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

func warnDiag(code DiagnosticCode, path, msg string, cause error) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Message: msg, Path: path, Cause: cause}
}

func errorDiag(code DiagnosticCode, path, msg string, cause error) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Message: msg, Path: path, Cause: cause}
}
