package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// HTTPError is implemented by errors that carry a response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the HTTP status and machine readable code
// written to the client.
type StatusError struct {
	Code    int
	ErrCode string
	Err     error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func statusError(code int, errCode string, err error) error {
	return StatusError{Code: code, ErrCode: errCode, Err: err}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handlerFunc is an http.HandlerFunc that reports failures instead of
// writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	errCode := "INTERNAL_ERROR"
	message := "internal server error"

	var status StatusError
	var httpErr HTTPError
	switch {
	case errors.As(err, &status):
		code = status.StatusCode()
		message = status.Error()
		if status.ErrCode != "" {
			errCode = status.ErrCode
		}
	case errors.As(err, &httpErr):
		code = httpErr.StatusCode()
		message = httpErr.Error()
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		if errCode == "INTERNAL_ERROR" {
			message = "internal server error"
		}
	}
	writeJSON(w, code, errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
