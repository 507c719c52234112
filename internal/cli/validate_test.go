package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/featuremap/pkg/errors"
)

func TestValidateBuiltIn(t *testing.T) {
	t.Chdir(t.TempDir())

	c, out := newTestCLI()
	if err := execute(c, "validate"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got := out.String()
	for _, want := range []string{"built-in map is valid", "Decentralized AI Hub", "Home Page (home)", "800x600, radius 40"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	t.Chdir(t.TempDir())

	bad := `title: Broken
features:
  - id: a
    name: A
    type: internal
  - id: b
    type: sideways
layout:
  positions:
    a: {x: 10, y: 10}
  links:
    - {from: a, to: ghost}
`
	if err := os.WriteFile("bad.yaml", []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI()
	err := execute(c, "validate", "bad.yaml")
	if !errors.Is(err, errors.ErrCodeInvalidMap) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidMap)
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("error %q should name the file", err)
	}
	got := out.String()
	for _, want := range []string{
		`feature "b" has no position`,
		`unknown type "sideways"`,
		`unknown feature "ghost"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestValidateWarnings(t *testing.T) {
	t.Chdir(t.TempDir())

	doc := `title: Rootless
features:
  - id: chat
    name: Chat
    type: external
layout:
  positions:
    chat: {x: 10, y: 10}
  links: []
`
	if err := os.WriteFile("rootless.yaml", []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, out := newTestCLI()
	if err := execute(c, "validate", "rootless.yaml", "--list"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got := out.String()
	for _, want := range []string{"no root feature", `"chat" has no recommended tool`, "Features", "chat"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestValidateListByKind(t *testing.T) {
	t.Chdir(t.TempDir())

	c, out := newTestCLI()
	if err := execute(c, "validate", "--kind", "External"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Features (3)") {
		t.Errorf("want 3 external features listed:\n%s", got)
	}
	if !strings.Contains(got, "funding") || strings.Contains(got, "profiles ") {
		t.Errorf("list not filtered to external features:\n%s", got)
	}

	c, _ = newTestCLI()
	err := execute(c, "validate", "--kind", "hybrid")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
