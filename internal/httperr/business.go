package httperr

import "errors"

// Kind classifies a business failure so the HTTP layer can map it to a status
// in one place. Nothing here is retried automatically; Transient is the only
// kind a client may reasonably re-attempt.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindConflict
	KindInvalidTransition
	KindNotFound
	KindTransient
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrAuthorization(code string) error {
	return BusinessError{Kind: KindAuthorization, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrInvalidTransition(code string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrTransient(code string) error {
	return BusinessError{Kind: KindTransient, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
