// Package apperror carries a stable code alongside an error so the HTTP layer
// can choose a status without string matching.
package apperror

import "errors"

type Code string

const (
	BadInput              Code = "BAD_INPUT"
	Unauthorized          Code = "UNAUTHORIZED"
	Forbidden             Code = "FORBIDDEN"
	NotFound              Code = "NOT_FOUND"
	UserNotFound          Code = "USER_NOT_FOUND"
	BookNotFound          Code = "BOOK_NOT_FOUND"
	OrderNotFound         Code = "ORDER_NOT_FOUND"
	EmailTaken            Code = "EMAIL_TAKEN"
	InvalidCredentials    Code = "INVALID_CREDENTIALS"
	AlreadyExists         Code = "ALREADY_EXISTS"
	PaymentNotConfirmed   Code = "PAYMENT_NOT_CONFIRMED"
	PaymentSessionInvalid Code = "PAYMENT_SESSION_INVALID"
	SessionConsumed       Code = "SESSION_CONSUMED"
	EmptyOrder            Code = "EMPTY_ORDER"
	EmptyCart             Code = "EMPTY_CART"
	NotificationFailed    Code = "NOTIFICATION_FAILED"
	InvalidTransition     Code = "INVALID_TRANSITION"
)

type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return string(e.Code) + ": " + e.Err.Error()
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// CodeOf returns the code of the outermost coded error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Message returns the user-facing message of a coded error.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	return ""
}
