package practiceform

import "fmt"

// DefaultBaseURL is where the practice form is hosted.
const DefaultBaseURL = "https://demoqa.com"

// FormPath is the path of the student registration form page.
const FormPath = "/automation-practice-form"

// pageTitle is the header text the form page shows once loaded.
const pageTitle = "Practice Form"

// modalTitle is the confirmation dialog title shown after a submission.
const modalTitle = "Thanks for Submitting the Form"

const (
	selPageHeader = ".main-header"

	selFirstName = "#firstName"
	selLastName  = "#lastName"
	selEmail     = "#userEmail"
	selMobile    = "#userNumber"
	selAddress   = "#currentAddress"

	selDateOfBirth = "#dateOfBirthInput"

	selSubjectsInput  = "#subjectsInput"
	selSubjectsOption = ".subjects-auto-complete__menu .subjects-auto-complete__option"

	selPicture = "#uploadPicture"

	selState = "#state input"
	selCity  = "#city input"

	selSubmit = "#submit"

	selModalTitle = "#example-modal-sizes-title-lg"
	selModalTable = ".modal-body table"
	selCloseModal = "#closeLargeModal"
)

// FieldSelectors maps logical field names to the selector of the element
// Fill targets for them. Gender radios and hobby checkboxes are matched by
// their visible text instead, see genderSelector and hobbySelector.
var FieldSelectors = map[string]string{
	FieldFirstName:      selFirstName,
	FieldLastName:       selLastName,
	FieldEmail:          selEmail,
	FieldMobile:         selMobile,
	FieldCurrentAddress: selAddress,
	FieldDateOfBirth:    selDateOfBirth,
	FieldSubjects:       selSubjectsInput,
	FieldPicture:        selPicture,
	FieldState:          selState,
	FieldCity:           selCity,
}

func genderSelector(gender string) string {
	return fmt.Sprintf(`input[name="gender"][value=%q]`, gender)
}

// hobbySelector targets the checkbox label, whose activation toggles the
// associated input.
func hobbySelector(hobby string) string {
	return fmt.Sprintf(`//div[@id="hobbiesWrapper"]//label[normalize-space(.)=%q]`, hobby)
}

// resultCellSelector targets the value cell of the results-table row with
// the given label.
func resultCellSelector(label string) string {
	return fmt.Sprintf(`//div[contains(@class,"modal-body")]//table//tr[td[1][normalize-space(.)=%q]]/td[2]`, label)
}
