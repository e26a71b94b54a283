package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/recruitflow/resume-parser/constants"
	"github.com/recruitflow/resume-parser/internal/common"
)

type urlRequest struct {
	FileURL  string `json:"file_url"`
	FileMIME string `json:"file_mime"`
	LangHint string `json:"lang_hint"`
}

type base64Request struct {
	FileName   string `json:"file_name"`
	FileMIME   string `json:"file_mime"`
	FileBase64 string `json:"file_base64"`
	LangHint   string `json:"lang_hint"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"parser_version": constants.ParserVersion,
	})
}

func (s *Server) handleParseURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "request body is not valid JSON", common.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.FileURL) == "" {
		writeError(w, common.NewAppError("INVALID_INPUT", "file_url is required", common.ErrInvalidInput))
		return
	}

	rec, err := s.service.ParseFromURL(r.Context(), req.FileURL, req.FileMIME, req.LangHint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleParseBase64(w http.ResponseWriter, r *http.Request) {
	var req base64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "request body is not valid JSON", common.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.FileBase64) == "" {
		writeError(w, common.NewAppError("INVALID_INPUT", "file_base64 is required", common.ErrInvalidInput))
		return
	}

	rec, err := s.service.ParseBase64(r.Context(), req.FileName, req.FileMIME, req.FileBase64, req.LangHint)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleParseInbox(w http.ResponseWriter, r *http.Request) {
	rec, messageID, err := s.service.ParseInbox(r.Context(), r.URL.Query().Get("lang_hint"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message_id": messageID,
		"record":     rec,
	})
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	recs, err := s.results.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "results": recs})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	rec, err := s.results.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	data, err := s.exporter.ExportCandidatesXLSX(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	name := "candidates-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
