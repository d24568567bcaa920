package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"ecommerce-platform/internal/models"
)

// InternalErrorMessage is returned for every failure that is not a business error
const InternalErrorMessage = "Something went wrong, try again later"

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindBadRequest:
		return http.StatusBadRequest
	case models.KindUnauthenticated:
		return http.StatusUnauthorized
	case models.KindUnauthorized:
		return http.StatusForbidden
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as {"msg": ...}. Errors that are not business errors are logged
// and hidden behind InternalErrorMessage.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	kind := models.KindOf(err)
	if kind == 0 {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID(r)),
			zap.Error(err),
		)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Msg: InternalErrorMessage})
		return
	}
	WriteJSON(w, StatusFor(kind), ErrorResponse{Msg: err.Error()})
}

// Recoverer turns panics into a 500 response and logs the stack
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", requestID(r)),
					zap.ByteString("stack", debug.Stack()),
				)
				WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Msg: InternalErrorMessage})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFound answers unknown routes
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Msg: "Route does not exist"})
	}
}
