// Package dom abstracts the document operations the studio controller needs.
// Setters apply to every element matching the selector; getters read the first match.
package dom

// Document is a mutable page.
type Document interface {
	Exists(selector string) bool
	Count(selector string) int

	HTML(selector string) string
	SetHTML(selector, fragment string)
	Prepend(selector, fragment string)
	Remove(selector string)
	Text(selector string) string
	SetText(selector, text string)
	Attr(selector, name string) (string, bool)

	HasClass(selector, class string) bool
	AddClass(selector, class string)
	RemoveClass(selector, class string)
	ToggleClass(selector, class string) bool

	Style(selector, property string) string
	SetStyle(selector, property, value string)

	Disabled(selector string) bool
	SetDisabled(selector string, disabled bool)

	Value(selector string) string
	SetValue(selector, value string)
	ResetForm(selector string)
}

// ID returns the selector for an element id.
func ID(id string) string {
	return "#" + id
}

// FormControls selects every control inside a form.
func FormControls(formSelector string) string {
	return formSelector + " input, " + formSelector + " textarea, " + formSelector + " select, " + formSelector + " button"
}
