// Package response writes the JSON envelope every endpoint answers with:
// {"status":"success","data":...} or {"status":"error","message":...}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/logging"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Envelope struct {
	Status  string                `json:"status"`
	Message string                `json:"message,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Stack   string                `json:"stack,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: StatusSuccess, Message: message})
}

// Fail writes a fixed client-facing error without logging.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: StatusError, Message: message})
}

// Writer turns errors into envelopes. It is the single place where error
// kinds become status codes.
type Writer struct {
	log        *zap.Logger
	production bool
}

func NewWriter(log *zap.Logger, production bool) *Writer {
	return &Writer{log: log, production: production}
}

func (ew *Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context(), ew.log)

	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}
	status := apperror.StatusCode(appErr.Kind)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("url", r.URL.RequestURI()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}

	body := Envelope{Status: StatusError, Message: appErr.Message, Errors: appErr.Fields}
	if !ew.production && appErr.Kind != apperror.KindValidation {
		body.Stack = err.Error()
		if appErr.Kind == apperror.KindInternal && appErr.Err != nil {
			body.Message = appErr.Err.Error()
		}
	}

	JSON(w, status, body)
}
