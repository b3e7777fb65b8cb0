package compound

import (
	"fmt"

	"lending/core"
)

// Error a failed ledger check
type Error struct {
	Code core.ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Name(), e.Msg)
}

// Unwrap exposes the error kind to errors.Is
func (e *Error) Unwrap() error {
	return e.Code
}

// Require returns an *Error with code when condition does not hold
func Require(condition bool, msg string, code core.ErrorCode) error {
	if condition {
		return nil
	}

	return &Error{Code: code, Msg: msg}
}

// CodeOf error kind of err, ErrUnknown when it carries none
func CodeOf(err error) core.ErrorCode {
	for err != nil {
		if code, ok := err.(core.ErrorCode); ok {
			return code
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}

	return core.ErrUnknown
}
