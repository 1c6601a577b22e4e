package store

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"railbook/internal/domain"
)

func TestUploadRejectsUnsupportedType(t *testing.T) {
	u := Uploader{LocalDir: t.TempDir()}
	_, err := u.Upload(context.Background(), "proof.exe", "application/octet-stream", strings.NewReader("x"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsOversizeDocument(t *testing.T) {
	u := Uploader{LocalDir: t.TempDir()}
	big := bytes.NewReader(make([]byte, MaxDocumentSize+1))
	_, err := u.Upload(context.Background(), "proof.pdf", "application/pdf", big)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRemoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/priority-tickets/upload" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if _, _, err := r.FormFile("document"); err != nil {
			t.Fatalf("form file missing: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"url":      "https://cdn.example.com/docs/abc.pdf",
			"filename": "abc.pdf",
		})
	}))
	defer srv.Close()

	u := Uploader{BaseURL: srv.URL, LocalDir: t.TempDir()}
	ref, err := u.Upload(context.Background(), "proof.pdf", "application/pdf", strings.NewReader("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !ref.Durable || ref.URL != "https://cdn.example.com/docs/abc.pdf" {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestUploadFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := t.TempDir()
	u := Uploader{BaseURL: srv.URL, LocalDir: dir}
	ref, err := u.Upload(context.Background(), "proof.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("fallback upload: %v", err)
	}
	if ref.Durable {
		t.Fatal("local fallback must be marked non-durable")
	}
	if ref.Name != "proof.png" || !strings.HasSuffix(ref.URL, ".png") {
		t.Fatalf("unexpected ref: %+v", ref)
	}
	if _, err := os.Stat(ref.URL); err != nil {
		t.Fatalf("local file missing: %v", err)
	}
}
