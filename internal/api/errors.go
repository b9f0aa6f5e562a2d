package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code   errs.Code `json:"code"`
	Error  string    `json:"error"`
	Banner string    `json:"banner,omitempty"`
}

// retryAfterSeconds is suggested to clients after a temporary upstream
// failure.
const retryAfterSeconds = 5

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if errs.Banner(err) != "" {
		return http.StatusUnprocessableEntity
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidJobID:
		return http.StatusBadRequest
	case errs.ErrCodeMalformedNode:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeInvalidSource:
		return http.StatusServiceUnavailable
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	resp := ErrorResponse{Code: code, Error: errs.UserMessage(err), Banner: errs.Banner(err)}
	if resp.Banner != "" {
		resp.Code = errs.ErrCodeMalformedNode
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", resp.Code, "err", err)
	}
	if errs.Temporary(err) {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
