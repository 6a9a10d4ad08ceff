// Package mockbackend serves the four intake endpoints for local development
// and tests. It records what it receives and echoes a JSON summary.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxMemory = 32 << 20

// File is one received multipart part.
type File struct {
	Field       string `json:"field"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// URLJob is the JSON body of /process-url.
type URLJob struct {
	URL       string `json:"url"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Request is a recorded call.
type Request struct {
	ID         string    `json:"id"`
	Endpoint   string    `json:"endpoint"`
	Files      []File    `json:"files,omitempty"`
	URLJob     *URLJob   `json:"urlJob,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Server is an in-memory backend.
type Server struct {
	mu       sync.Mutex
	requests []Request
	failWith int
	logger   *log.Logger
}

// New returns a server logging to logger. A nil logger uses the standard one.
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{logger: logger}
}

// FailWith makes every endpoint answer with status. Zero restores success.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	s.failWith = status
	s.mu.Unlock()
}

// Requests returns a copy of what has been received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Handler mounts the endpoints under /api.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload-csv", s.fileHandler("/upload-csv", "file")).Methods(http.MethodPost)
	api.HandleFunc("/upload-text", s.fileHandler("/upload-text", "file")).Methods(http.MethodPost)
	api.HandleFunc("/upload-audio", s.fileHandler("/upload-audio", "files")).Methods(http.MethodPost)
	api.HandleFunc("/process-url", s.handleProcessURL).Methods(http.MethodPost)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return router
}

func (s *Server) fileHandler(endpoint, field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.failing(w, r, endpoint) {
			return
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			http.Error(w, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
			return
		}
		if field == "file" && len(headers) > 1 {
			http.Error(w, "exactly one file is expected", http.StatusBadRequest)
			return
		}
		files := make([]File, 0, len(headers))
		for _, header := range headers {
			size, err := partSize(header)
			if err != nil {
				http.Error(w, "Failed to read file", http.StatusInternalServerError)
				return
			}
			files = append(files, File{
				Field:       field,
				Name:        header.Filename,
				Size:        size,
				ContentType: header.Header.Get("Content-Type"),
			})
			s.logger.Printf("[mock] %s %s (%s)", endpoint, header.Filename, humanize.Bytes(uint64(size)))
		}
		writeJSON(w, http.StatusOK, s.record(Request{Endpoint: endpoint, Files: files}))
	}
}

func (s *Server) handleProcessURL(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/process-url"
	if s.failing(w, r, endpoint) {
		return
	}
	var job URLJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if job.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	s.logger.Printf("[mock] %s %s [%s, %s]", endpoint, job.URL, job.StartTime, job.EndTime)
	writeJSON(w, http.StatusOK, s.record(Request{Endpoint: endpoint, URLJob: &job}))
}

func (s *Server) failing(w http.ResponseWriter, r *http.Request, endpoint string) bool {
	s.mu.Lock()
	status := s.failWith
	s.mu.Unlock()
	if status == 0 {
		return false
	}
	_, _ = io.Copy(io.Discard, r.Body)
	s.logger.Printf("[mock] %s failing with %d", endpoint, status)
	http.Error(w, http.StatusText(status), status)
	return true
}

func (s *Server) record(req Request) Request {
	req.ID = uuid.NewString()
	req.ReceivedAt = time.Now().UTC()
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return req
}

func partSize(header *multipart.FileHeader) (int64, error) {
	if header.Size > 0 {
		return header.Size, nil
	}
	f, err := header.Open()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(io.Discard, f)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
