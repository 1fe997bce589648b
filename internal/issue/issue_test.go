// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		PluginsRootNotFoundId,
		DescriptorNotFoundId,
		DescriptorParseErrorId,
		BundleOpenFailedId,
		AssetDefinitionInvalidId,
		AssetNotFoundId,
		ConfigLoadFailedId,
		DependencyCycleId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if PluginsRootNotFoundId != 1 {
		t.Errorf("PluginsRootNotFoundId = %d, want 1", PluginsRootNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(PluginsRootNotFoundId)
	if issue == nil {
		t.Fatal("Get(PluginsRootNotFoundId) returned nil")
	}

	if issue.Id() != PluginsRootNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), PluginsRootNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(DescriptorNotFoundId)
	if issue == nil {
		t.Fatal("Get(DescriptorNotFoundId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if msg == "" {
		t.Error("MarkdownMsg() returned empty string")
	}

	if !strings.Contains(string(msg), "No mod descriptor found") {
		t.Error("MarkdownMsg() should contain 'No mod descriptor found'")
	}
}

func TestGet_AllIdsResolve(t *testing.T) {
	for id := PluginsRootNotFoundId; id <= DependencyCycleId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}
}

func TestGet_UnknownId(t *testing.T) {
	if Get(Id(999)) != nil {
		t.Error("Get(999) should return nil for unknown ID")
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(values), len(issues))
	}
}

func TestIssue_Render(t *testing.T) {
	// Swap the renderer so the test doesn't depend on terminal detection.
	original := render
	t.Cleanup(func() { render = original })
	var rendered string
	render = func(in, stylePath string) (string, error) {
		rendered = in
		return in, nil
	}

	out, err := Get(AssetNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out == "" || rendered == "" {
		t.Error("Render produced empty output")
	}
	if !strings.Contains(out, "Asset not found") {
		t.Errorf("rendered output missing title: %q", out)
	}
}
