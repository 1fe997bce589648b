// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation steps, plus Markdown-rendered
// cards for the curated failure modes of mod loading and validation: missing
// plugins roots, malformed descriptors, unopenable containers, and the like.
package issue
