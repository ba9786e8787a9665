package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

type envelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelope{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

// writeError maps a CustomError to its HTTP status and response body.
// Anything that is not a CustomError is reported as an internal error so
// raw database or driver messages never reach clients.
func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(errors.CustomError)
	if !ok {
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ce.ErrorHTTPCode())
	json.NewEncoder(w).Encode(envelope{
		Code:    ce.ErrorCode(),
		Message: ce.Error(),
		Details: ce.Details(),
	})
}
