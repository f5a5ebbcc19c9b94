package usecase

// DomainError is a business rejection: the request itself is wrong and
// retrying it unchanged will fail again.
type DomainError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (database down, timeout).
// The same request may succeed on retry; the upsert is idempotent so
// retrying is always safe.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
