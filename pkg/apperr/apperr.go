// Package apperr defines the business error vocabulary shared by services and
// handlers. Every failure a service can return carries a Code, so callers map
// errors to transport status without string matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// item errors
	CodeItemNotFound  Code = "ITEM_NOT_FOUND"
	CodeDuplicateItem Code = "DUPLICATE_ITEM"
	CodeInvalidPrice  Code = "INVALID_PRICE"
	CodeInvalidStock  Code = "INVALID_STOCK"

	// order errors
	CodeOrderNotFound           Code = "ORDER_NOT_FOUND"
	CodeOrderItemNotFound       Code = "ORDER_ITEM_NOT_FOUND"
	CodeInvalidRequest          Code = "INVALID_REQUEST"
	CodeInvalidQuantity         Code = "INVALID_QUANTITY"
	CodeInvalidStatus           Code = "INVALID_STATUS"
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
	CodeAlreadyCancelled        Code = "ALREADY_CANCELLED"
	CodeCannotModifyCompleted   Code = "CANNOT_MODIFY_COMPLETED"
	CodeOutOfStock              Code = "OUT_OF_STOCK"
	CodePriceOverflow           Code = "PRICE_OVERFLOW"

	// user errors
	CodeUserNotFound    Code = "USER_NOT_FOUND"
	CodeDuplicateEmail  Code = "DUPLICATE_EMAIL"
	CodeInvalidUserData Code = "INVALID_USER_DATA"

	// infrastructure errors
	CodeDatabaseError Code = "DATABASE_ERROR"
	CodeInternalError Code = "INTERNAL_ERROR"
)

var messages = map[Code]string{
	CodeItemNotFound:            "item not found",
	CodeDuplicateItem:           "an item with the same name already exists",
	CodeInvalidPrice:            "item price is not valid",
	CodeInvalidStock:            "stock quantity is not valid",
	CodeOrderNotFound:           "order not found",
	CodeOrderItemNotFound:       "order item not found",
	CodeInvalidRequest:          "request is empty or malformed",
	CodeInvalidQuantity:         "quantity must be positive",
	CodeInvalidStatus:           "unknown order status",
	CodeInvalidStatusTransition: "order status transition is not allowed",
	CodeAlreadyCancelled:        "order is already cancelled",
	CodeCannotModifyCompleted:   "completed orders cannot be modified",
	CodeOutOfStock:              "not enough stock for the requested quantity",
	CodePriceOverflow:           "order total exceeds the representable price range",
	CodeUserNotFound:            "user not found",
	CodeDuplicateEmail:          "email is already registered",
	CodeInvalidUserData:         "user data is not valid",
	CodeDatabaseError:           "database error",
	CodeInternalError:           "internal server error",
}

var statuses = map[Code]int{
	CodeItemNotFound:            http.StatusNotFound,
	CodeOrderNotFound:           http.StatusNotFound,
	CodeOrderItemNotFound:       http.StatusNotFound,
	CodeUserNotFound:            http.StatusNotFound,
	CodeInvalidPrice:            http.StatusBadRequest,
	CodeInvalidStock:            http.StatusBadRequest,
	CodeInvalidQuantity:         http.StatusBadRequest,
	CodeInvalidStatus:           http.StatusBadRequest,
	CodeInvalidRequest:          http.StatusBadRequest,
	CodeInvalidUserData:         http.StatusBadRequest,
	CodeDuplicateItem:           http.StatusConflict,
	CodeDuplicateEmail:          http.StatusConflict,
	CodeOutOfStock:              http.StatusConflict,
	CodeAlreadyCancelled:        http.StatusConflict,
	CodeInvalidStatusTransition: http.StatusConflict,
	CodeCannotModifyCompleted:   http.StatusConflict,
	CodePriceOverflow:           http.StatusUnprocessableEntity,
	CodeDatabaseError:           http.StatusInternalServerError,
	CodeInternalError:           http.StatusInternalServerError,
}

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, apperr.New(code)) match on code alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an error with the default message for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: messages[code]}
}

// Newf returns an error for code with a custom message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code to an underlying error, keeping it reachable via errors.Unwrap.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: messages[code], Err: err}
}

// CodeOf extracts the taxonomy code from err, or CodeInternalError when err was
// not produced by this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

// HTTPStatus maps a code to the transport status used by the API layer.
func HTTPStatus(code Code) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
