package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotConfigured is returned when the storage credentials are absent.
	ErrNotConfigured = errors.New("storage is not configured: missing SUPABASE_URL or SUPABASE_SERVICE_ROLE")

	// ErrObjectNotFound is returned when the requested path does not exist in the bucket.
	ErrObjectNotFound = errors.New("object not found in storage")
)

// Gateway wraps the Supabase Storage HTTP API for a single bucket.
// Objects are addressed as "<owner>/<namespace>/<unique>_<name>".
type Gateway struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

func NewGateway(baseURL, serviceKey, bucket string) *Gateway {
	return &Gateway{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *Gateway) checkConfigured() error {
	if g.baseURL == "" || g.serviceKey == "" {
		return ErrNotConfigured
	}
	return nil
}

func (g *Gateway) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", g.baseURL, g.bucket, path)
}

// Put stores raw bytes under "<ownerKey>/<namespace>/<unique>_<filename>" and
// returns the resulting path. The unique prefix makes repeated uploads of the
// same file name collision free.
func (g *Gateway) Put(ctx context.Context, ownerKey, namespace, filename string, data []byte) (string, error) {
	if err := g.checkConfigured(); err != nil {
		return "", err
	}

	finalName := uuid.NewString()[:8] + "_" + SecureFilename(filename)
	path := fmt.Sprintf("%s/%s/%s", ownerKey, namespace, finalName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.objectURL(path), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload %s: status %d, body %s", path, resp.StatusCode, string(body))
	}

	return path, nil
}

// Get downloads the raw bytes stored at path.
func (g *Gateway) Get(ctx context.Context, path string) ([]byte, error) {
	if err := g.checkConfigured(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.objectURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download %s: status %d, body %s", path, resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
}

type listEntry struct {
	Name string `json:"name"`
}

// ListPrefix returns the object names directly under prefix. A prefix with no
// objects yields an empty slice, not an error.
func (g *Gateway) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	if err := g.checkConfigured(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(listRequest{Prefix: prefix, Limit: 1000})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", g.baseURL, g.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list %s: status %d, body %s", prefix, resp.StatusCode, string(body))
	}

	var entries []listEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

// DeleteMany removes the given paths, best effort. The returned count reflects
// only objects that actually existed.
func (g *Gateway) DeleteMany(ctx context.Context, paths []string) (int, error) {
	if err := g.checkConfigured(); err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(removeRequest{Prefixes: paths})
	if err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", g.baseURL, g.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("delete objects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("delete objects: status %d, body %s", resp.StatusCode, string(body))
	}

	var removed []listEntry
	if err := json.NewDecoder(resp.Body).Decode(&removed); err != nil {
		return 0, fmt.Errorf("decode delete response: %w", err)
	}

	return len(removed), nil
}

// BaseURL reports the configured endpoint, mainly for logging.
func (g *Gateway) BaseURL() string {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return g.baseURL
	}
	return u.Host
}
