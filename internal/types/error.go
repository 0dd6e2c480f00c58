package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	BadRequest           ErrorCode = "BAD_REQUEST"
	TooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	NotFound             ErrorCode = "NOT_FOUND"
	AccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	NotInitialized       ErrorCode = "NOT_INITIALIZED"
	AlreadyInitialized   ErrorCode = "ALREADY_INITIALIZED"

	// settlement taxonomy
	ZeroAmount         ErrorCode = "ZERO_AMOUNT"
	FeeExceedsAmount   ErrorCode = "FEE_EXCEEDS_AMOUNT"
	InsufficientFunds  ErrorCode = "INSUFFICIENT_FUNDS"
	AuthorizationError ErrorCode = "AUTHORIZATION_ERROR"
	AssetMismatch      ErrorCode = "ASSET_MISMATCH"
	ArithmeticOverflow ErrorCode = "ARITHMETIC_OVERFLOW"

	AuthorityMismatch ErrorCode = "AUTHORITY_MISMATCH"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is the error type returned by the service layer. StatusCode is the
// HTTP status the api layer answers with.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

func NewAccountNotFoundError(account Address) *Error {
	return NewError(http.StatusNotFound, AccountNotFound,
		fmt.Errorf("token account %s not found", account))
}

func NewNotInitializedError() *Error {
	return NewErrorWithMsg(http.StatusConflict, NotInitialized, "network is not initialized")
}

func NewAlreadyInitializedError() *Error {
	return NewErrorWithMsg(http.StatusConflict, AlreadyInitialized, "network is already initialized")
}

func NewZeroAmountError() *Error {
	return NewErrorWithMsg(http.StatusBadRequest, ZeroAmount, "amount can't be 0")
}

func NewFeeExceedsAmountError(amount uint64, feeBasisPoints uint64) *Error {
	return NewError(http.StatusUnprocessableEntity, FeeExceedsAmount,
		fmt.Errorf("fee at %d basis points is not less than amount %d", feeBasisPoints, amount))
}

func NewInsufficientFundsError(account Address, balance, amount uint64) *Error {
	return NewError(http.StatusUnprocessableEntity, InsufficientFunds,
		fmt.Errorf("account %s holds %d, cannot debit %d", account, balance, amount))
}

func NewAuthorizationError(account Address, signer Address) *Error {
	return NewError(http.StatusForbidden, AuthorizationError,
		fmt.Errorf("signer %s is not the owner of account %s", signer, account))
}

func NewAssetMismatchError(account Address, expected, actual Address) *Error {
	return NewError(http.StatusBadRequest, AssetMismatch,
		fmt.Errorf("account %s holds asset %s, expected %s", account, actual, expected))
}

func NewUnauthorizedError(signer Address) *Error {
	return NewError(http.StatusForbidden, Unauthorized,
		fmt.Errorf("signer %s is not the operator", signer))
}

func NewArithmeticOverflowError(what string) *Error {
	return NewError(http.StatusUnprocessableEntity, ArithmeticOverflow,
		fmt.Errorf("%s overflows", what))
}

// ToError returns err as *Error. Errors that are not already classified are
// reported as internal service errors.
func ToError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternalServiceError(err)
}

// HasErrorCode reports whether err carries the given code anywhere in its chain.
func HasErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.ErrorCode == code
	}
	return false
}
