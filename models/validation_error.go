package models

// ValidationError reports a record that violates the collection schema.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
