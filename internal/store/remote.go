package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Remote is tier 1: the authoritative booking API. Writes return the
// canonical stored record (the server may normalize fields). Every call
// rides the client's timeout; a hung call must not stall the cascade past
// that.
type Remote[T any] struct {
	BaseURL string
	Path    string
	Query   url.Values
	Client  *http.Client
}

func (r *Remote[T]) Name() string { return "remote" }

func (r *Remote[T]) endpoint(extra string) (string, error) {
	if strings.TrimSpace(r.BaseURL) == "" {
		return "", fmt.Errorf("remote api not configured")
	}
	u := strings.TrimRight(r.BaseURL, "/") + r.Path + extra
	if extra == "" && len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u, nil
}

func (r *Remote[T]) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

func (r *Remote[T]) do(ctx context.Context, method, u string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote %s %s: status %d: %s", method, u, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// List fetches the collection, newest-first per the API contract.
func (r *Remote[T]) List(ctx context.Context) ([]T, error) {
	u, err := r.endpoint("")
	if err != nil {
		return nil, err
	}
	var out []T
	if err := r.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert creates the record and returns the server's canonical copy.
func (r *Remote[T]) Insert(ctx context.Context, rec T) (T, error) {
	var out T
	u, err := r.endpoint("")
	if err != nil {
		return out, err
	}
	if err := r.do(ctx, http.MethodPost, u, rec, &out); err != nil {
		return out, err
	}
	return out, nil
}

type statusUpdate struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus transitions one record via PUT {path}/{id}/status.
func (r *Remote[T]) UpdateStatus(ctx context.Context, id, status, notes string) (T, error) {
	var out T
	u, err := r.endpoint("/" + url.PathEscape(id) + "/status")
	if err != nil {
		return out, err
	}
	if err := r.do(ctx, http.MethodPut, u, statusUpdate{Status: status, Notes: notes}, &out); err != nil {
		return out, err
	}
	return out, nil
}
