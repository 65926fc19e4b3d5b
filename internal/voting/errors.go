package voting

import "errors"

var (
	ErrContestClosed     = errors.New("contest is closed for voting")
	ErrSubmissionsClosed = errors.New("contest is closed for submissions")
)

// ValidationError reports input that can never succeed as given.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
