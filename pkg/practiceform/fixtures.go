package practiceform

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

var (
	fixturesOnce   sync.Once
	defaultValues  Values
	textFields     []string
	defaultMapping SubmissionMapping
)

// loadFixtures parses the embedded fixture files. They ship with the
// binary, so a parse failure is a build defect and panics.
func loadFixtures() {
	loadFixture("fixtures/default_values.yaml", &defaultValues)
	loadFixture("fixtures/text_fields.yaml", &textFields)
	loadFixture("fixtures/submission_mapping.yaml", &defaultMapping)
}

func loadFixture(name string, out any) {
	data, err := fixtureFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("practiceform: reading %s: %v", name, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("practiceform: parsing %s: %v", name, err))
	}
}

// DefaultValues returns a copy of the built-in form values. The default
// set fills every field except the picture.
func DefaultValues() Values {
	fixturesOnce.Do(loadFixtures)
	out := make(Values, len(defaultValues))
	for k, v := range defaultValues {
		out[k] = v
	}
	return out
}

// TextFields returns the logical names of the plain text inputs in the
// order Fill types them.
func TextFields() []string {
	fixturesOnce.Do(loadFixtures)
	out := make([]string, len(textFields))
	copy(out, textFields)
	return out
}

// DefaultMapping returns the built-in submission mapping for the
// confirmation table.
func DefaultMapping() SubmissionMapping {
	fixturesOnce.Do(loadFixtures)
	return defaultMapping
}
