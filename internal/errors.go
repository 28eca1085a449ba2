package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeReferential ErrorType = "REFERENTIAL_ERROR"
	ErrorTypeMigration   ErrorType = "MIGRATION_ERROR"
	ErrorTypeStorage     ErrorType = "STORAGE_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidCurrency  ErrorCode = "INVALID_CURRENCY"
	ErrCodeInvalidSentiment ErrorCode = "INVALID_SENTIMENT"
	ErrCodeInvalidRate      ErrorCode = "INVALID_RATE"
	ErrCodeInvalidPeriod    ErrorCode = "INVALID_PERIOD"
	ErrCodeSameAccount      ErrorCode = "SAME_ACCOUNT_TRANSFER"

	ErrCodeAccountNotFound  ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodeCurrencyNotFound ErrorCode = "CURRENCY_NOT_FOUND"
	ErrCodeExpenseNotFound  ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeIncomeNotFound   ErrorCode = "INCOME_NOT_FOUND"
	ErrCodeTransferNotFound ErrorCode = "TRANSFER_NOT_FOUND"
	ErrCodeBudgetNotFound   ErrorCode = "BUDGET_NOT_FOUND"
	ErrCodeBucketNotFound   ErrorCode = "SAVINGS_BUCKET_NOT_FOUND"
	ErrCodeWishNotFound     ErrorCode = "WISHLIST_ITEM_NOT_FOUND"
	ErrCodeRuleNotFound     ErrorCode = "RECURRING_RULE_NOT_FOUND"
	ErrCodeReceiptNotFound  ErrorCode = "RECEIPT_NOT_FOUND"

	ErrCodeReferencedRow ErrorCode = "ROW_STILL_REFERENCED"
	ErrCodeMissingRef    ErrorCode = "MISSING_REFERENCE"

	ErrCodeMigrationFailed ErrorCode = "MIGRATION_FAILED"
	ErrCodeStorageFailure  ErrorCode = "STORAGE_FAILURE"
)

// AppError is the single error shape crossing the engine boundary. The
// UI layer switches on Type/Code; Cause keeps the underlying driver
// error reachable via errors.Unwrap.
type AppError struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Cause   error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: code, Message: message}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

// NewReferentialError covers both directions of a broken reference: a
// write naming a missing row, and a delete of a row still referenced.
func NewReferentialError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeReferential, Code: code, Message: message}
}

func NewMigrationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeMigration, Code: ErrCodeMigrationFailed, Message: message, Cause: cause}
}

// NewStorageError wraps a driver failure. Never retried: local sqlite
// has no transient-failure class worth classifying.
func NewStorageError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeStorage, Code: ErrCodeStorageFailure, Message: message, Cause: cause}
}

var (
	ErrAccountNotFound  = NewNotFoundError("account not found", ErrCodeAccountNotFound)
	ErrCategoryNotFound = NewNotFoundError("category not found", ErrCodeCategoryNotFound)
	ErrCurrencyNotFound = NewNotFoundError("currency not found", ErrCodeCurrencyNotFound)
	ErrExpenseNotFound  = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)
	ErrIncomeNotFound   = NewNotFoundError("income not found", ErrCodeIncomeNotFound)
	ErrTransferNotFound = NewNotFoundError("transfer not found", ErrCodeTransferNotFound)
	ErrBudgetNotFound   = NewNotFoundError("budget not found", ErrCodeBudgetNotFound)
	ErrBucketNotFound   = NewNotFoundError("savings bucket not found", ErrCodeBucketNotFound)
	ErrWishNotFound     = NewNotFoundError("wishlist item not found", ErrCodeWishNotFound)
	ErrRuleNotFound     = NewNotFoundError("recurring rule not found", ErrCodeRuleNotFound)
	ErrReceiptNotFound  = NewNotFoundError("receipt inbox item not found", ErrCodeReceiptNotFound)

	ErrRowStillReferenced = NewReferentialError("row is referenced by existing transactions", ErrCodeReferencedRow)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
