package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"go.uber.org/zap"
)

// APIHandler is an http handler that returns an error so that error handling,
// logging and response writing can be centralized in [MakeHandler].
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler wraps an APIHandler into a http.HandlerFunc. Any returned error
// is mapped to a status code via servererrors.HTTPStatus and written as an
// error JSON envelope.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		statusCode := servererrors.HTTPStatus(err)

		if statusCode == http.StatusInternalServerError {
			zap.L().Error(
				"unhandled error in handler",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			WriteErrorJSON(
				w,
				statusCode,
				"something went wrong",
				nil,
			)
			return
		}

		zap.L().Info(
			"request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", statusCode),
			zap.Error(err),
		)

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		WriteErrorJSON(
			w,
			statusCode,
			err.Error(),
			nil,
		)
	}
}

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// ParseJSON decodes a request body into v, rejecting unknown fields.
func ParseJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return writeJSON(
		w,
		statusCode,
		&successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) {
	_ = writeJSON(
		w,
		statusCode,
		&errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}
