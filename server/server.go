// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

// Server exposes the assistant over HTTP.
type Server struct {
	responder Responder
	ingestor  Ingestor
	uploadDir string
	validate  *validator.Validate
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithUploadDir sets the directory where uploaded documents are saved
// before ingestion. Default is the OS temp directory.
func WithUploadDir(dir string) Option {
	return func(s *Server) error {
		if dir != "" {
			s.uploadDir = dir
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates the HTTP surface over a responder and an ingestor.
func NewServer(responder Responder, ingestor Ingestor, opts ...Option) (*Server, error) {
	if responder == nil {
		return nil, ErrResponderRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}

	s := &Server{
		responder: responder,
		ingestor:  ingestor,
		validate:  validator.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler builds the chi router with the standard middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/ask", s.handleAsk)
	r.Post("/fallback", s.handleFallback)
	r.Post("/upload", s.handleUpload)
	r.Get("/healthz", s.handleHealth)

	return r
}
