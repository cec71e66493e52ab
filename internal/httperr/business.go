package httperr

import "errors"

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

type BusinessError struct {
	Code    string
	Message string
	Kind    Kind
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrValidation(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindValidation}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Code: code, Message: message, Kind: KindNotFound}
}

// ErrInternal never carries storage error text.
func ErrInternal(code string) error {
	return BusinessError{Code: code, Message: "An unexpected error occurred.", Kind: KindInternal}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	if be, ok := AsBusiness(err); ok {
		return be.Code == code
	}
	return false
}

// KindOf treats anything that is not a BusinessError as internal.
func KindOf(err error) Kind {
	if be, ok := AsBusiness(err); ok {
		return be.Kind
	}
	return KindInternal
}
