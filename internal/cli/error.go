package cli

// UsageError reports malformed flags or a missing command; it is printed
// together with the usage text.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(message string) error {
	return &UsageError{Message: message}
}
