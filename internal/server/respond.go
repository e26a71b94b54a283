package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recruitflow/resume-parser/internal/common"
)

type errorBody struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the pipeline error taxonomy onto HTTP statuses. Upstream
// failures are 502, bad input is the caller's fault, and an unclassified
// error stays a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}

	switch {
	case code == "FILE_TOO_LARGE":
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrFetch),
		errors.Is(err, common.ErrDecode),
		errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrExtractionEmpty):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrExternalService),
		errors.Is(err, common.ErrMalformedLLMOutput):
		status = http.StatusBadGateway
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if appErr != nil {
		msg = appErr.Message
	}
	writeJSON(w, status, errorBody{OK: false, Code: code, Error: msg})
}
