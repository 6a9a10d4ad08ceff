// Package gateway sends validated selections to the processing backend.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/csheth/intake/internal/workflow"
)

// DefaultBaseURL is the backend the original front-end talked to.
const DefaultBaseURL = "http://localhost:5000/api"

const (
	PathUploadCSV   = "/upload-csv"
	PathUploadText  = "/upload-text"
	PathProcessURL  = "/process-url"
	PathUploadAudio = "/upload-audio"
)

// PathFor returns the backend path a mode submits to, or "" for ModeNone.
func PathFor(mode workflow.Mode) string {
	switch mode {
	case workflow.ModeCSV:
		return PathUploadCSV
	case workflow.ModeText:
		return PathUploadText
	case workflow.ModeURL:
		return PathProcessURL
	case workflow.ModeAudio:
		return PathUploadAudio
	default:
		return ""
	}
}

// Config describes how to build a Client.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues one request per submission. It never retries.
type Client struct {
	base   string
	client *http.Client
}

var _ workflow.Submitter = (*Client)(nil)

// New builds a client, falling back to INTAKE_BACKEND_URL and then DefaultBaseURL
// when no base URL is configured.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		if env := os.Getenv("INTAKE_BACKEND_URL"); env != "" {
			base = env
		} else {
			base = DefaultBaseURL
		}
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// BaseURL reports the backend the client posts to.
func (c *Client) BaseURL() string {
	return c.base
}

// Endpoint returns the full URL of a backend path.
func (c *Client) Endpoint(path string) string {
	return c.base + path
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: timeout}
}

// UploadCSV posts a single CSV file as multipart field "file".
func (c *Client) UploadCSV(ctx context.Context, file workflow.FileRef) (json.RawMessage, error) {
	return c.postFiles(ctx, opUploadCSV, "file", []workflow.FileRef{file})
}

// UploadText posts a single text file as multipart field "file".
func (c *Client) UploadText(ctx context.Context, file workflow.FileRef) (json.RawMessage, error) {
	return c.postFiles(ctx, opUploadText, "file", []workflow.FileRef{file})
}

// UploadAudio posts every file as a repeated multipart field "files", in order.
func (c *Client) UploadAudio(ctx context.Context, files []workflow.FileRef) (json.RawMessage, error) {
	return c.postFiles(ctx, opUploadAudio, "files", files)
}

type urlJobPayload struct {
	URL       string `json:"url"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ProcessURL posts the URL job as JSON. Times are sent as strings.
func (c *Client) ProcessURL(ctx context.Context, job workflow.URLJob) (json.RawMessage, error) {
	buf, err := json.Marshal(urlJobPayload{URL: job.URL, StartTime: job.StartTime, EndTime: job.EndTime})
	if err != nil {
		return nil, &SubmissionError{Op: opProcessURL, Err: err}
	}
	return c.do(ctx, opProcessURL, "application/json", strings.NewReader(string(buf)))
}
