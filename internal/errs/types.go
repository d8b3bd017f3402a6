package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError reports missing, malformed or non-positive input.
type ValidationError struct {
	ErrorMessage
}

// UnauthenticatedError reports a missing, malformed or expired credential.
type UnauthenticatedError struct {
	ErrorMessage
}

// InvalidCredentialsError is returned by password sign-in only.
type InvalidCredentialsError struct {
	ErrorMessage
}

// ForbiddenError reports a valid caller acting on a record it does not own.
type ForbiddenError struct {
	ErrorMessage
}

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnauthenticatedError(message string) *UnauthenticatedError {
	return &UnauthenticatedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInvalidCredentialsError() *InvalidCredentialsError {
	return &InvalidCredentialsError{
		ErrorMessage: ErrorMessage{Message: "invalid credentials"},
	}
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}
