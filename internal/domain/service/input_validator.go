package service

// InputValidator checks struct tags on use case inputs.
// Violations are reported as a field to message map.
type InputValidator interface {
	Validate(input any) error
}
