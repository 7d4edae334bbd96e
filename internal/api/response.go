package api

import (
	"time"

	"github.com/schedcu/rotacheck/internal/validation"
)

// APIResponse is the standard response format for all endpoints.
type APIResponse struct {
	Data       interface{}       `json:"data,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
	Error      *ErrorResponse     `json:"error,omitempty"`
	Meta       ResponseMeta       `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta contains response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Version   string    `json:"version,omitempty"`
}

func meta() ResponseMeta {
	return ResponseMeta{Timestamp: time.Now().UTC(), Version: "1.0"}
}

// SuccessResponse returns a successful APIResponse.
func SuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Data: data, Meta: meta()}
}

// SuccessResponseWithValidation returns a successful APIResponse that also
// carries a configuration-sanity result: advisory findings that never
// block the response.
func SuccessResponseWithValidation(data interface{}, result *validation.Result) *APIResponse {
	return &APIResponse{Data: data, Validation: result, Meta: meta()}
}

// ErrorResponseWithCode returns an error APIResponse.
func ErrorResponseWithCode(code, message string) *APIResponse {
	return &APIResponse{
		Error: &ErrorResponse{Code: code, Message: message},
		Meta:  meta(),
	}
}

// OptimizerErrorResponse builds an ErrorResponse from the external
// optimizer's own error taxonomy, so the HTTP layer forwards the
// code/message the caller provided rather than inventing its own.
func OptimizerErrorResponse(code, message string) *APIResponse {
	return ErrorResponseWithCode(code, message)
}
