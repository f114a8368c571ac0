// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Quotation errors
const (
	ErrCodePolicyLookupFailed ErrorCode = "POLICY_LOOKUP_FAILED"
	ErrCodePolicyNotFound     ErrorCode = "POLICY_NOT_FOUND"

	ErrCodeNoEligibleOffer    ErrorCode = "NO_ELIGIBLE_OFFER"
	ErrCodeOfferLookupFailed  ErrorCode = "OFFER_LOOKUP_FAILED"

	ErrCodeDealNotFound        ErrorCode = "DEAL_NOT_FOUND"
	ErrCodeDealLocked          ErrorCode = "DEAL_LOCKED"
	ErrCodeDealLookupFailed    ErrorCode = "DEAL_LOOKUP_FAILED"
	ErrCodeSnapshotWriteFailed ErrorCode = "SNAPSHOT_WRITE_FAILED"

	ErrCodeNotSharedDeal    ErrorCode = "NOT_SHARED_DEAL"
	ErrCodeInvalidSplitType ErrorCode = "INVALID_SPLIT_TYPE"

	ErrCodeInvalidPeriod     ErrorCode = "INVALID_PERIOD"
	ErrCodeReportQueryFailed ErrorCode = "REPORT_QUERY_FAILED"

	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewPolicyLookupFailedError creates a retryable site-policy lookup error.
func NewPolicyLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePolicyLookupFailed,
		Message:   "Database error while loading site finance policy",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPolicyNotFoundError creates a non-retryable missing-policy error.
func NewPolicyNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodePolicyNotFound,
		Message:   "No site finance policy row configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoEligibleOfferError creates a non-retryable selection error: no bank
// offer on the application carries a usable interest rate.
func NewNoEligibleOfferError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoEligibleOffer,
		Message:   "No bank offer with an interest rate found for application",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOfferLookupFailedError creates a retryable bank-offer query error.
func NewOfferLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOfferLookupFailed,
		Message:   "Database error while loading bank offers",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDealNotFoundError creates a non-retryable missing-deal error.
func NewDealNotFoundError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDealNotFound,
		Message:   "Deal not found",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDealLockedError creates a non-retryable deal-lock violation. A closed
// deal may only be recomputed after the upstream admin unlock gate confirms.
func NewDealLockedError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDealLocked,
		Message:   "Deal is closed; profit recomputation requires an explicit unlock",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDealLookupFailedError creates a retryable deal query error.
func NewDealLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDealLookupFailed,
		Message:   "Database error while loading deal",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSnapshotWriteFailedError creates a retryable snapshot insert error.
func NewSnapshotWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotWriteFailed,
		Message:   "Failed to persist profit snapshot",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotSharedDealError creates a non-retryable partner-statement error.
func NewNotSharedDealError(dealID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotSharedDeal,
		Message:   "Deal has no capital partner; nothing to distribute",
		Details:   fmt.Sprintf("dealId: %s", dealID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSplitTypeError creates a non-retryable split configuration error.
func NewInvalidSplitTypeError(splitType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSplitType,
		Message:   "Partner split type must be 'percentage' or 'fixed'",
		Details:   fmt.Sprintf("splitType: %s", splitType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPeriodError creates a non-retryable reporting-window error.
func NewInvalidPeriodError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPeriod,
		Message:   "Invalid reporting period",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportQueryFailedError creates a retryable commission-report query error.
func NewReportQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportQueryFailed,
		Message:   "Database error while scanning closed deals",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputParsingFailedError creates a non-retryable variable parsing error.
func NewInputParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// retryCounts maps retryable error codes to their default retry budget.
var retryCounts = map[ErrorCode]int{
	ErrCodePolicyLookupFailed:  3,
	ErrCodeOfferLookupFailed:   3,
	ErrCodeDealLookupFailed:    3,
	ErrCodeSnapshotWriteFailed: 3,
	ErrCodeReportQueryFailed:   3,
}

// GetRetryCount returns the retry budget for a code; 0 means throw, not retry.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// errorCategories groups codes for logging and metric labels.
var errorCategories = map[ErrorCode]string{
	ErrCodePolicyLookupFailed:  "infrastructure",
	ErrCodePolicyNotFound:      "configuration",
	ErrCodeNoEligibleOffer:     "business",
	ErrCodeOfferLookupFailed:   "infrastructure",
	ErrCodeDealNotFound:        "business",
	ErrCodeDealLocked:          "business",
	ErrCodeDealLookupFailed:    "infrastructure",
	ErrCodeSnapshotWriteFailed: "infrastructure",
	ErrCodeNotSharedDeal:       "business",
	ErrCodeInvalidSplitType:    "configuration",
	ErrCodeInvalidPeriod:       "input",
	ErrCodeReportQueryFailed:   "infrastructure",
	ErrCodeInputParsingFailed:  "input",
	ErrCodeValidationFailed:    "input",
}

// GetErrorCategory returns the logging category for a code.
func GetErrorCategory(code ErrorCode) string {
	if cat, ok := errorCategories[code]; ok {
		return cat
	}
	return "unknown"
}

// ConvertToBPMNError maps a StandardError onto the BPMN error thrown to the
// workflow engine. Internal and BPMN codes are identical by convention.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   GetRetryCount(stdErr.Code),
		ErrorVariables: map[string]interface{}{
			"errorCategory": GetErrorCategory(stdErr.Code),
		},
	}
}
