package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/utils"
)

// MaxDocumentSize caps priority proof documents at 5 MB.
const MaxDocumentSize = 5 << 20

var allowedDocumentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// Uploader stores priority proof documents: remote upload service first,
// local file fallback. The local reference is ephemeral and is marked
// non-durable so callers never treat it as surviving the session.
type Uploader struct {
	BaseURL  string
	Client   *http.Client
	LocalDir string
}

func (u Uploader) client() *http.Client {
	if u.Client != nil {
		return u.Client
	}
	return http.DefaultClient
}

// Upload validates the document locally (type and size, before any network
// call) and stores it through the two-tier fallback.
func (u Uploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (models.DocumentRef, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedDocumentTypes[contentType]
	if !ok {
		return models.DocumentRef{}, domain.ValidationError{
			Field: "document",
			Msg:   "unsupported type " + contentType + " (PDF, JPEG or PNG only)",
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return models.DocumentRef{}, domain.InternalError{Msg: "reading document", Err: err}
	}
	if len(data) > MaxDocumentSize {
		return models.DocumentRef{}, domain.ValidationError{
			Field: "document",
			Msg:   "file exceeds the 5 MB limit",
		}
	}

	if ref, err := u.uploadRemote(ctx, filename, contentType, data); err == nil {
		return ref, nil
	} else {
		utils.LogEvent("", "store", "upload", "remote upload failed: "+err.Error())
	}

	return u.storeLocal(filename, ext, data)
}

func (u Uploader) uploadRemote(ctx context.Context, filename, contentType string, data []byte) (models.DocumentRef, error) {
	if strings.TrimSpace(u.BaseURL) == "" {
		return models.DocumentRef{}, fmt.Errorf("remote api not configured")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("document", filename)
	if err != nil {
		return models.DocumentRef{}, err
	}
	if _, err := part.Write(data); err != nil {
		return models.DocumentRef{}, err
	}
	if err := w.Close(); err != nil {
		return models.DocumentRef{}, err
	}

	endpoint := strings.TrimRight(u.BaseURL, "/") + "/priority-tickets/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return models.DocumentRef{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client().Do(req)
	if err != nil {
		return models.DocumentRef{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.DocumentRef{}, fmt.Errorf("upload status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.DocumentRef{}, err
	}
	name := out.Filename
	if name == "" {
		name = filename
	}
	return models.DocumentRef{URL: out.URL, Name: name, Durable: true}, nil
}

func (u Uploader) storeLocal(filename, ext string, data []byte) (models.DocumentRef, error) {
	dir := u.LocalDir
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.DocumentRef{}, domain.InternalError{Msg: "storing document", Err: err}
	}
	local := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return models.DocumentRef{}, domain.InternalError{Msg: "storing document", Err: err}
	}
	return models.DocumentRef{URL: local, Name: filename, Durable: false}, nil
}
