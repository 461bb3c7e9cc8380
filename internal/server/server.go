// Package server exposes the detection pipeline over HTTP: upload a product
// photo, get back a parametric SVG or the raw region metadata. Every
// response uses a {success, ...} JSON envelope; detection coming up empty
// is a successful response with an empty result, never a 500.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"productvec/internal/config"
	"productvec/internal/imaging"
)

// Server carries the shared state of the HTTP API.
type Server struct {
	cache     *imaging.ImageCache
	cfg       config.Config
	uploadDir string
}

// New creates a server that stores uploads under uploadDir.
func New(cfg config.Config, uploadDir string) *Server {
	return &Server{
		cache:     imaging.NewImageCache(),
		cfg:       cfg,
		uploadDir: uploadDir,
	}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/svg", s.handleSVG)
	mux.HandleFunc("/api/outline", s.handleOutline)
	return mux
}

// errorResponse is the failure envelope shared by all endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
