package practiceform

import (
	"strconv"
	"time"
)

// Logical field names accepted by Fill and the submission mapping.
const (
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldGender         = "gender"
	FieldMobile         = "mobile"
	FieldDateOfBirth    = "dateOfBirth"
	FieldSubjects       = "subjects"
	FieldHobbies        = "hobbies"
	FieldPicture        = "picture"
	FieldCurrentAddress = "currentAddress"
	FieldState          = "state"
	FieldCity           = "city"
)

// Values holds form field values keyed by logical field name. Scalar fields
// may be strings or numbers, list fields hold []string or []any, and date
// fields hold a time.Time or a string in one of the accepted layouts.
type Values map[string]any

var dateLayouts = []string{
	"2006-01-02",
	"02 Jan 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// String returns the field as a string, converting numeric values. Missing
// fields and unsupported types yield "".
func (v Values) String(field string) string {
	switch t := v[field].(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// List returns the field as a list of strings. Scalar items inside []any
// convert the way String does; missing fields yield nil.
func (v Values) List(field string) []string {
	switch t := v[field].(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case int:
				out = append(out, strconv.Itoa(s))
			case int64:
				out = append(out, strconv.FormatInt(s, 10))
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
		return out
	default:
		return nil
	}
}

// Time returns the field as a time.Time. String values are parsed against
// the accepted layouts; missing or unparseable values yield the zero time.
func (v Values) Time(field string) time.Time {
	switch t := v[field].(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
