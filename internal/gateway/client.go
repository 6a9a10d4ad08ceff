package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	"github.com/csheth/intake/internal/workflow"
)

func (c *Client) postFiles(ctx context.Context, op Op, field string, files []workflow.FileRef) (json.RawMessage, error) {
	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeParts(form, field, files))
	}()
	resp, err := c.do(ctx, op, form.FormDataContentType(), body)
	// Unblocks the writer goroutine if the request never drained the pipe.
	body.Close()
	return resp, err
}

func writeParts(form *multipart.Writer, field string, files []workflow.FileRef) error {
	for _, file := range files {
		if err := writePart(form, field, file); err != nil {
			return err
		}
	}
	return form.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writePart(form *multipart.Writer, field string, file workflow.FileRef) error {
	src, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer src.Close()

	contentType := file.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", file.Name, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op Op, contentType string, body io.Reader) (json.RawMessage, error) {
	endpoint := c.Endpoint(op.path())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &SubmissionError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[gateway] POST %s failed: %v", endpoint, err)
		return nil, &SubmissionError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	log.Printf("[gateway] POST %s -> %s (%d bytes)", endpoint, resp.Status, len(payload))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmissionError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s (%s)", ErrUnexpectedStatus, resp.Status, snippet(payload)),
		}
	}
	if !json.Valid(payload) {
		return nil, &SubmissionError{Op: op, StatusCode: resp.StatusCode, Err: ErrInvalidResponse}
	}
	return json.RawMessage(payload), nil
}

func snippet(body []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "…"
	}
	return text
}
