package practiceform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kidandcat/formtest/pkg/browser"
)

// dobDisplayLayout is how the confirmation table renders the date of birth.
const dobDisplayLayout = "02 January,2006"

// Row describes how one confirmation-table row derives from the form
// values. Field, Concat or List names the source; Picture and DateOfBirth
// mark the two specially rendered rows.
type Row struct {
	Label       string   `yaml:"label"`
	Field       string   `yaml:"field"`
	Concat      []string `yaml:"concat"`
	Delimiter   string   `yaml:"delimiter"`
	List        string   `yaml:"list"`
	Picture     bool     `yaml:"picture"`
	DateOfBirth bool     `yaml:"dateOfBirth"`
}

// SubmissionMapping ties the confirmation table's columns and rows to the
// logical form fields.
type SubmissionMapping struct {
	KeyColumn   string `yaml:"keyColumn"`
	ValueColumn string `yaml:"valueColumn"`
	Rows        []Row  `yaml:"rows"`
}

// populatedField pairs a table label with the cell text it must show.
type populatedField struct {
	Label string
	Value string
}

// submissionRecords derives, from the expected values, which table rows
// must show which text and which must stay empty. Rows come out in mapping
// order; a list row expands into one record per element, so its cell gets
// checked once per element. The date-of-birth row is always populated: the
// picker defaults to the current date, so an omitted value renders as now.
func submissionRecords(expected Values, m SubmissionMapping, now time.Time) (populated []populatedField, empty []string) {
	for _, row := range m.Rows {
		values := rowValues(expected, row, now)
		if len(values) == 0 {
			empty = append(empty, row.Label)
			continue
		}
		for _, value := range values {
			populated = append(populated, populatedField{Label: row.Label, Value: value})
		}
	}
	return populated, empty
}

func rowValues(expected Values, row Row, now time.Time) []string {
	switch {
	case row.DateOfBirth:
		t := expected.Time(row.Field)
		if t.IsZero() {
			t = now
		}
		return []string{t.Format(dobDisplayLayout)}
	case row.Picture:
		path := expected.String(row.Field)
		if path == "" {
			return nil
		}
		return []string{filepath.Base(path)}
	case len(row.Concat) > 0:
		delim := row.Delimiter
		if delim == "" {
			delim = " "
		}
		var parts []string
		for _, field := range row.Concat {
			if items := expected.List(field); len(items) > 0 {
				parts = append(parts, strings.Join(items, delim))
			} else if v := expected.String(field); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		return []string{strings.Join(parts, delim)}
	case row.List != "":
		var values []string
		for _, item := range expected.List(row.List) {
			if item != "" {
				values = append(values, item)
			}
		}
		return values
	default:
		v := expected.String(row.Field)
		if v == "" {
			return nil
		}
		return []string{v}
	}
}

// ValidateSubmission checks the confirmation dialog against the expected
// values: the dialog title, then one assertion per derived record. Rows
// whose source fields were filled must show the derived text, element by
// element for list rows, and the rest must be empty.
func (p *Page) ValidateSubmission(ctx context.Context, expected Values) error {
	if err := p.driver.AssertContains(ctx, selModalTitle, modalTitle); err != nil {
		return fmt.Errorf("confirmation dialog: %w", err)
	}
	populated, empty := submissionRecords(expected, p.mapping, p.now())
	for _, f := range populated {
		p.logger.WithFields(logrus.Fields{"label": f.Label, "value": f.Value}).Debug("checking table row")
		if err := p.driver.AssertContains(ctx, resultCellSelector(f.Label), f.Value); err != nil {
			return fmt.Errorf("row %q: %w", f.Label, err)
		}
	}
	for _, label := range empty {
		p.logger.WithField("label", label).Debug("checking table row is empty")
		if err := p.driver.AssertEmpty(ctx, resultCellSelector(label)); err != nil {
			return fmt.Errorf("row %q: %w", label, err)
		}
	}
	return nil
}

// SubmittedValues reads the confirmation table and returns its label/value
// pairs as shown on screen.
func (p *Page) SubmittedValues(ctx context.Context) (map[string]string, error) {
	html, err := p.driver.HTML(ctx, selModalTable)
	if err != nil {
		return nil, fmt.Errorf("reading confirmation table: %w", err)
	}
	table, err := browser.ParseTable(html)
	if err != nil {
		return nil, fmt.Errorf("parsing confirmation table: %w", err)
	}
	return table.Pairs(p.mapping.KeyColumn, p.mapping.ValueColumn)
}
