package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleScenarios = `
- name: full form
  values:
    firstName: John
    lastName: Doe
    subjects: [Maths]
- values:
    firstName: Jane
  expect:
    firstName: Jane
    lastName: ""
`

func TestParse(t *testing.T) {
	scenarios, err := Parse([]byte(sampleScenarios))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(scenarios))
	}

	if scenarios[0].Name != "full form" {
		t.Errorf("Got name %q, want full form", scenarios[0].Name)
	}
	if scenarios[0].Values.String("firstName") != "John" {
		t.Errorf("Got first name %q, want John", scenarios[0].Values.String("firstName"))
	}
	if subjects := scenarios[0].Values.List("subjects"); len(subjects) != 1 || subjects[0] != "Maths" {
		t.Errorf("Got subjects %v, want [Maths]", subjects)
	}

	// Unnamed scenarios are numbered
	if scenarios[1].Name != "scenario 2" {
		t.Errorf("Got name %q, want scenario 2", scenarios[1].Name)
	}
}

func TestExpected(t *testing.T) {
	scenarios, err := Parse([]byte(sampleScenarios))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Without an expect block the filled values are expected back
	if scenarios[0].Expected().String("lastName") != "Doe" {
		t.Error("Expected the filled values when no expect block is set")
	}

	// An explicit expect block wins
	expected := scenarios[1].Expected()
	if _, ok := expected["lastName"]; !ok {
		t.Error("Expected the expect block to be used when present")
	}
	if expected.String("lastName") != "" {
		t.Errorf("Got last name %q, want empty", expected.String("lastName"))
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("not: [valid"))
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Got %v, want a parse error", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	if err := os.WriteFile(path, []byte(sampleScenarios), 0644); err != nil {
		t.Fatal(err)
	}

	scenarios, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Errorf("Expected 2 scenarios, got %d", len(scenarios))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestDefault(t *testing.T) {
	scenarios := Default()
	if len(scenarios) != 1 {
		t.Fatalf("Expected 1 scenario, got %d", len(scenarios))
	}
	if scenarios[0].Name != "default values" {
		t.Errorf("Got name %q, want default values", scenarios[0].Name)
	}
	if scenarios[0].Expected().String("firstName") == "" {
		t.Error("Expected the default values to be filled in")
	}
}
