package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/poiesic/helpdesk/assist"
)

// maxAskBody bounds question payloads; maxUploadBody bounds document uploads.
const (
	maxAskBody    = 64 << 10
	maxUploadBody = 32 << 20
)

// Responder answers employee questions.
type Responder interface {
	Ask(ctx context.Context, query string) (*assist.Response, error)
	Fallback(ctx context.Context, query string) (*assist.Response, error)
}

// Ingestor loads a single uploaded document into the store.
type Ingestor interface {
	LoadFile(ctx context.Context, path, category string) (int, error)
}

// AskRequest is the body of POST /ask and POST /fallback.
type AskRequest struct {
	Query string `json:"query" validate:"required,min=1,max=4000"`
}

// AskResponse is the JSON rendering of an assistant response.
type AskResponse struct {
	Answer             string   `json:"answer"`
	Source             string   `json:"source"`
	Confident          bool     `json:"confident"`
	Suggestions        []string `json:"suggestions"`
	ShowFallbackButton bool     `json:"show_fallback_button"`
}

// UploadResponse reports how much of an uploaded document was stored.
type UploadResponse struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	s.answer(w, r, s.responder.Ask)
}

func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	s.answer(w, r, s.responder.Fallback)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request,
	respond func(context.Context, string) (*assist.Response, error)) {

	var req AskRequest
	body := http.MaxBytesReader(w, r.Body, maxAskBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp, err := respond(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("error answering query", "err", err)
		writeError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:             resp.Answer,
		Source:             resp.Source,
		Confident:          resp.Confident,
		Suggestions:        resp.Suggestions,
		ShowFallbackButton: resp.ShowFallbackButton,
	})
}

// handleUpload accepts a multipart document, sniffs its type, saves it
// under a random name and ingests it. The original filename is kept as
// the document source via the category form field's directory layout.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	category := r.FormValue("category")
	if category == "" {
		category = "uploads"
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "unreadable file")
		return
	}

	base := s.uploadDir
	if base == "" {
		base = os.TempDir()
	}
	// The file keeps its original name so the document source label stays
	// meaningful; a uuid directory keeps concurrent uploads of the same
	// file from colliding.
	dir := filepath.Join(base, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("error saving upload", "err", err)
		writeError(w, http.StatusInternalServerError, "could not save upload")
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, filepath.Base(header.Filename))

	dst, err := os.Create(path)
	if err != nil {
		s.logger.Error("error saving upload", "err", err)
		writeError(w, http.StatusInternalServerError, "could not save upload")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "could not save upload")
		return
	}
	dst.Close()

	s.logger.Info("upload received",
		"file", header.Filename, "type", mtype.String(), "category", category)

	chunks, err := s.ingestor.LoadFile(r.Context(), path, category)
	if err != nil {
		s.logger.Error("error ingesting upload", "file", header.Filename, "err", err)
		writeError(w, http.StatusUnprocessableEntity, "could not ingest document")
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Source: filepath.Base(header.Filename),
		Chunks: chunks,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
