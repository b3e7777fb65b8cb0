package codes

import (
	"errors"
	"strconv"

	"lending/core"
	"lending/pkg/compound"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// From converts a ledger error into a twirp error carrying the ledger code
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var verr govalidator.Errors
	if errors.As(err, &verr) {
		return twirp.InvalidArgumentError("body", err.Error()).
			WithMeta(CustomCodeKey, strconv.Itoa(InvalidArguments))
	}

	if store.IsErrNotFound(err) {
		return twirp.NotFoundError(err.Error())
	}

	code := compound.CodeOf(err)
	return twirp.NewError(kindOf(code), err.Error()).
		WithMeta(CustomCodeKey, code.String())
}

func kindOf(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrInvalidAmount:
		return twirp.InvalidArgument
	case core.ErrBankNotFound, core.ErrUserNotFound:
		return twirp.NotFound
	case core.ErrOracleStale:
		return twirp.Unavailable
	case core.ErrInsufficientFunds,
		core.ErrInsufficientCollateral,
		core.ErrInsufficientLiquidity,
		core.ErrOverpayment,
		core.ErrInvalidLiquidation,
		core.ErrInvalidTokenAccount,
		core.ErrDepositRatioOverflow,
		core.ErrMath:
		return twirp.FailedPrecondition
	default:
		return twirp.Internal
	}
}
