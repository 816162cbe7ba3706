package services

// ValidationError reports caller data that failed a check. Reason is sent back to the
// client as is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// NotFoundError reports that no transaction has the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Transaction not found"
}
