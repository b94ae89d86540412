package practiceform

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kidandcat/formtest/pkg/browser"
)

var testNow = time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)

func findRecord(t *testing.T, populated []populatedField, label string) string {
	t.Helper()
	for _, f := range populated {
		if f.Label == label {
			return f.Value
		}
	}
	t.Fatalf("No populated row with label %s", label)
	return ""
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func TestSubmissionRecordsFullForm(t *testing.T) {
	values := DefaultValues()
	values[FieldPicture] = "/tmp/photos/cat.png"

	populated, empty := submissionRecords(values, DefaultMapping(), testNow)

	if len(empty) != 0 {
		t.Fatalf("Expected no empty rows, got %v", empty)
	}

	want := []populatedField{
		{Label: "Student Name", Value: "John Doe"},
		{Label: "Student Email", Value: "john.doe@example.com"},
		{Label: "Gender", Value: "Male"},
		{Label: "Mobile", Value: "1234567890"},
		{Label: "Date of Birth", Value: "13 June,1990"},
		{Label: "Subjects", Value: "Maths"},
		{Label: "Subjects", Value: "Physics"},
		{Label: "Hobbies", Value: "Sports"},
		{Label: "Hobbies", Value: "Reading"},
		{Label: "Picture", Value: "cat.png"},
		{Label: "Address", Value: "221B Baker Street, London"},
		{Label: "State and City", Value: "NCR Delhi"},
	}
	if !reflect.DeepEqual(populated, want) {
		t.Errorf("submissionRecords() = %v, want %v", populated, want)
	}
}

func TestSubmissionRecordsEmptyForm(t *testing.T) {
	populated, empty := submissionRecords(Values{}, DefaultMapping(), testNow)

	// The date row renders even when nothing was filled: the picker
	// defaults to the current date.
	if len(populated) != 1 {
		t.Fatalf("Expected only the date row to be populated, got %v", populated)
	}
	if populated[0].Label != "Date of Birth" || populated[0].Value != "24 August,2026" {
		t.Errorf("Got %+v, want the current date", populated[0])
	}

	wantEmpty := []string{
		"Student Name", "Student Email", "Gender", "Mobile",
		"Subjects", "Hobbies", "Picture", "Address", "State and City",
	}
	if !reflect.DeepEqual(empty, wantEmpty) {
		t.Errorf("Empty rows = %v, want %v", empty, wantEmpty)
	}
}

func TestSubmissionRecordsConcat(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   string
	}{
		{
			name:   "first name only",
			values: Values{FieldFirstName: "John"},
			want:   "John",
		},
		{
			name:   "last name only",
			values: Values{FieldLastName: "Doe"},
			want:   "Doe",
		},
		{
			name:   "both names",
			values: Values{FieldFirstName: "John", FieldLastName: "Doe"},
			want:   "John Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			populated, empty := submissionRecords(tt.values, DefaultMapping(), testNow)
			if containsLabel(empty, "Student Name") {
				t.Fatal("Expected Student Name to be populated")
			}
			got := findRecord(t, populated, "Student Name")
			if got != tt.want {
				t.Errorf("Student Name = %q, want %q", got, tt.want)
			}
		})
	}

	_, empty := submissionRecords(Values{}, DefaultMapping(), testNow)
	if !containsLabel(empty, "Student Name") {
		t.Error("Expected Student Name to be empty without any name")
	}
}

func TestSubmissionRecordsConcatListValue(t *testing.T) {
	// A concat source that is itself a list joins with the same delimiter.
	mapping := SubmissionMapping{
		Rows: []Row{{Label: "Combined", Concat: []string{"a", "b"}, Delimiter: " "}},
	}
	values := Values{"a": "X", "b": []string{"Y", "Z"}}

	populated, empty := submissionRecords(values, mapping, testNow)
	if len(empty) != 0 {
		t.Fatalf("Expected no empty rows, got %v", empty)
	}
	if got := findRecord(t, populated, "Combined"); got != "X Y Z" {
		t.Errorf("Combined = %q, want %q", got, "X Y Z")
	}
}

func TestSubmissionRecordsListExpansion(t *testing.T) {
	values := Values{FieldSubjects: []string{"Maths", "Physics"}}
	populated, _ := submissionRecords(values, DefaultMapping(), testNow)

	var subjects []string
	for _, f := range populated {
		if f.Label == "Subjects" {
			subjects = append(subjects, f.Value)
		}
	}
	if !reflect.DeepEqual(subjects, []string{"Maths", "Physics"}) {
		t.Errorf("Subjects records = %v, want one per element", subjects)
	}
}

func TestValidateSubmissionListRows(t *testing.T) {
	driver := &browser.FakeDriver{}
	page := NewPage(driver, nil)
	page.now = func() time.Time { return testNow }

	values := Values{FieldSubjects: []string{"Maths", "Physics"}}
	if err := page.ValidateSubmission(context.Background(), values); err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}

	cell := resultCellSelector("Subjects")
	var cellValues []string
	for _, c := range driver.CallsTo("assertContains") {
		if c.Selector == cell {
			cellValues = append(cellValues, c.Value)
		}
	}
	// one containment check per subject, in list order
	if !reflect.DeepEqual(cellValues, []string{"Maths", "Physics"}) {
		t.Errorf("Subjects cell checks = %v, want one per element", cellValues)
	}
}

func TestSubmissionRecordsPictureBasename(t *testing.T) {
	values := Values{FieldPicture: "some/dir/photo.jpeg"}
	populated, _ := submissionRecords(values, DefaultMapping(), testNow)

	if got := findRecord(t, populated, "Picture"); got != "photo.jpeg" {
		t.Errorf("Picture = %q, want the file basename", got)
	}
}

func TestSubmissionRecordsDateFormats(t *testing.T) {
	tests := []struct {
		name string
		dob  any
		want string
	}{
		{name: "iso date", dob: "1990-06-13", want: "13 June,1990"},
		{name: "short month", dob: "5 Jan 2001", want: "05 January,2001"},
		{name: "time value", dob: time.Date(1985, time.November, 30, 0, 0, 0, 0, time.UTC), want: "30 November,1985"},
		{name: "missing defaults to now", dob: nil, want: "24 August,2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Values{}
			if tt.dob != nil {
				values[FieldDateOfBirth] = tt.dob
			}
			populated, _ := submissionRecords(values, DefaultMapping(), testNow)
			if got := findRecord(t, populated, "Date of Birth"); got != tt.want {
				t.Errorf("Date of Birth = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmissionRecordsDeterministic(t *testing.T) {
	values := DefaultValues()
	p1, e1 := submissionRecords(values, DefaultMapping(), testNow)
	p2, e2 := submissionRecords(values, DefaultMapping(), testNow)

	if !reflect.DeepEqual(p1, p2) || !reflect.DeepEqual(e1, e2) {
		t.Error("Expected identical records for identical input")
	}
}

func TestValidateSubmission(t *testing.T) {
	driver := &browser.FakeDriver{}
	page := NewPage(driver, nil)
	page.now = func() time.Time { return testNow }

	values := Values{FieldFirstName: "Jane", FieldGender: "Female", FieldMobile: "0123456789"}
	if err := page.ValidateSubmission(context.Background(), values); err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}

	asserts := driver.CallsTo("assertContains")
	// dialog title, then Student Name, Gender, Mobile and Date of Birth
	if len(asserts) != 5 {
		t.Fatalf("Expected 5 assertContains calls, got %d: %v", len(asserts), asserts)
	}
	if asserts[0].Selector != selModalTitle || asserts[0].Value != modalTitle {
		t.Errorf("Expected the dialog title to be checked first, got %+v", asserts[0])
	}
	if asserts[1].Selector != resultCellSelector("Student Name") || asserts[1].Value != "Jane" {
		t.Errorf("Expected the student name cell check, got %+v", asserts[1])
	}
	if asserts[4].Value != "24 August,2026" {
		t.Errorf("Expected the defaulted date of birth, got %+v", asserts[4])
	}

	empties := driver.CallsTo("assertEmpty")
	// Student Email, Subjects, Hobbies, Picture, Address, State and City
	if len(empties) != 6 {
		t.Errorf("Expected 6 assertEmpty calls, got %d: %v", len(empties), empties)
	}
}

func TestValidateSubmissionRowMismatch(t *testing.T) {
	cell := resultCellSelector("Gender")
	driver := &browser.FakeDriver{
		Fail: map[string]error{
			cell: &browser.AssertionError{Expected: "Female", Actual: "Male", Message: "cell mismatch"},
		},
	}
	page := NewPage(driver, nil)
	page.now = func() time.Time { return testNow }

	err := page.ValidateSubmission(context.Background(), Values{FieldGender: "Female"})
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), `row "Gender"`) {
		t.Errorf("Expected the row label in the error, got %v", err)
	}
	var assertErr *browser.AssertionError
	if !errors.As(err, &assertErr) {
		t.Errorf("Expected an AssertionError, got %v", err)
	}
}

func TestValidateSubmissionWrongDialog(t *testing.T) {
	driver := &browser.FakeDriver{
		Fail: map[string]error{
			selModalTitle: &browser.AssertionError{Expected: modalTitle, Actual: "", Message: "missing dialog"},
		},
	}
	page := NewPage(driver, nil)

	err := page.ValidateSubmission(context.Background(), Values{})
	if err == nil {
		t.Fatal("Expected validation to fail without the dialog")
	}
	if !strings.Contains(err.Error(), "confirmation dialog") {
		t.Errorf("Expected a dialog error, got %v", err)
	}
	// No cell must be checked once the dialog check failed
	if calls := driver.CallsTo("assertEmpty"); len(calls) != 0 {
		t.Errorf("Expected no cell checks, got %v", calls)
	}
}

func TestSubmittedValues(t *testing.T) {
	driver := &browser.FakeDriver{
		HTMLResults: map[string]string{
			selModalTable: `<table>
				<thead><tr><th>Label</th><th>Values</th></tr></thead>
				<tbody>
					<tr><td>Student Name</td><td>Jane Poe</td></tr>
					<tr><td>Gender</td><td>Female</td></tr>
					<tr><td>Picture</td><td></td></tr>
				</tbody>
			</table>`,
		},
	}
	page := NewPage(driver, nil)

	submitted, err := page.SubmittedValues(context.Background())
	if err != nil {
		t.Fatalf("SubmittedValues() error = %v", err)
	}
	if len(submitted) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(submitted))
	}
	if submitted["Student Name"] != "Jane Poe" {
		t.Errorf("Student Name = %q, want Jane Poe", submitted["Student Name"])
	}
	if submitted["Picture"] != "" {
		t.Errorf("Picture = %q, want empty", submitted["Picture"])
	}
}
