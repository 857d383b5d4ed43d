package license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tartampluch/showtime/internal/config"
)

// HTTPStore talks to a REST key-value database laid out as
// {base}/{path}/{key}.json, where a missing key reads as JSON null.
type HTTPStore struct {
	Client *http.Client
	base   *url.URL
	path   string
}

// NewHTTPStore validates baseURL and creates a store with configured timeouts.
func NewHTTPStore(baseURL, path string) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Security check: ensure strictly HTTP or HTTPS.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s: missing host", config.ErrInvalidURL)
	}

	return &HTTPStore{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		base: u,
		path: strings.Trim(path, "/"),
	}, nil
}

// keyURL builds the record URL. Query parameters of the base URL (auth
// tokens) are preserved.
func (s *HTTPStore) keyURL(key string) string {
	u := *s.base
	segments := []string{strings.TrimRight(u.Path, "/")}
	if s.path != "" {
		segments = append(segments, s.path)
	}
	segments = append(segments, url.PathEscape(key)+config.LicenseKeySuffix)
	u.Path = strings.Join(segments, "/")
	u.RawPath = ""
	return u.String()
}

// safeURL strips query parameters and the key itself so logs never leak secrets.
func (s *HTTPStore) safeURL() string {
	return s.base.Scheme + "://" + s.base.Host + s.base.Path
}

// Lookup fetches the record stored under key.
func (s *HTTPStore) Lookup(ctx context.Context, key string) (Record, bool, error) {
	if err := ValidateKey(key); err != nil {
		return Record{}, false, err
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompLicense),
		slog.String(config.LogKeyURL, s.safeURL()),
	)
	log.Debug(config.MsgLicenseCheck)

	body, err := s.do(ctx, http.MethodGet, key)
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrLicenseLookup, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == config.JSONNull {
		return Record{}, false, nil
	}

	// Any non-null value means the key exists. Only an object can carry the
	// flag; a record without it is inactive.
	var rec Record
	if body[0] != '{' {
		return rec, true, nil
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrLicenseDecode, err)
	}
	return rec, true, nil
}

// Delete removes key. Deleting a missing key succeeds.
func (s *HTTPStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if _, err := s.do(ctx, http.MethodDelete, key); err != nil {
		return fmt.Errorf("%s: %w", config.ErrLicenseDelete, err)
	}
	return nil
}

func (s *HTTPStore) do(ctx context.Context, method, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.keyURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("License server returned error status",
			slog.String(config.LogKeyComponent, config.CompLicense),
			slog.String(config.LogKeyMethod, method),
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	// Limit the number of bytes read to protect against large payloads.
	return io.ReadAll(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
}
