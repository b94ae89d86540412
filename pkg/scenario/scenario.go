// Package scenario loads named form runs from YAML files. Each scenario
// carries the values to fill and, optionally, a separate set of values to
// validate the confirmation table against.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kidandcat/formtest/pkg/practiceform"
)

// Scenario is one named run of the practice form.
type Scenario struct {
	Name   string              `yaml:"name"`
	Values practiceform.Values `yaml:"values"`
	Expect practiceform.Values `yaml:"expect"`
}

// Expected returns the values the confirmation table is validated against.
// When the scenario carries no separate expectation, the filled values are
// expected back.
func (s *Scenario) Expected() practiceform.Values {
	if s.Expect != nil {
		return s.Expect
	}
	return s.Values
}

// Parse reads a YAML list of scenarios. Unnamed scenarios are numbered.
func Parse(data []byte) ([]Scenario, error) {
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %v", err)
	}
	for i := range scenarios {
		if scenarios[i].Name == "" {
			scenarios[i].Name = fmt.Sprintf("scenario %d", i+1)
		}
	}
	return scenarios, nil
}

// LoadFile reads a scenario file.
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scenarios, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return scenarios, nil
}

// Default returns the built-in scenario: fill the default values and
// expect them back.
func Default() []Scenario {
	return []Scenario{{Name: "default values", Values: practiceform.DefaultValues()}}
}
