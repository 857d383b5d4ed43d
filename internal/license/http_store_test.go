package license_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/license"
)

// TestHTTPStore_Lookup verifies the REST layout and the decoding of records.
func TestHTTPStore_Lookup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFound  bool
		wantActive bool
	}{
		{"Absent", "null", false, false},
		{"EmptyBody", "", false, false},
		{"Active", `{"isActive":true}`, true, true},
		{"Inactive", `{"isActive":false}`, true, false},
		{"NoFlag", `{"owner":"x"}`, true, false},
		{"Scalar", `true`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/data/licenses/abc-123.json", r.URL.Path)
				assert.Equal(t, "tok", r.URL.Query().Get("auth"), "base query must be preserved")
				assert.Equal(t, config.UserAgent, r.Header.Get("User-Agent"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			store, err := license.NewHTTPStore(ts.URL+"?auth=tok", config.DefaultLicensePath)
			require.NoError(t, err)

			rec, found, err := store.Lookup(context.Background(), "abc-123")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantActive, rec.Active)
		})
	}
}

func TestHTTPStore_Delete(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte("null"))
	}))
	defer ts.Close()

	store, err := license.NewHTTPStore(ts.URL+"/root/", "/keys/")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "k1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/root/keys/k1.json", gotPath)
}

func TestHTTPStore_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"Unauthorized", http.StatusUnauthorized, "401"},
		{"ServerError", http.StatusInternalServerError, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			store, err := license.NewHTTPStore(ts.URL, "")
			require.NoError(t, err)

			_, found, err := store.Lookup(context.Background(), "k")
			require.Error(t, err)
			assert.False(t, found)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPStore_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isActive":`))
	}))
	defer ts.Close()

	store, err := license.NewHTTPStore(ts.URL, "")
	require.NoError(t, err)

	_, _, err = store.Lookup(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLicenseDecode)
}

// TestHTTPStore_Timeout ensures the client respects context deadlines.
func TestHTTPStore_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	store, err := license.NewHTTPStore(ts.URL, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err = store.Lookup(ctx, "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPStore_InvalidKeyNeverHitsNetwork(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	store, err := license.NewHTTPStore(ts.URL, "")
	require.NoError(t, err)

	for _, key := range []string{"", "a/b", "a.b", "a#b", "a$b", "a[b", "a]b", "a\nb"} {
		_, _, err := store.Lookup(context.Background(), key)
		assert.ErrorIs(t, err, license.ErrInvalidKey, "key %q", key)
		assert.ErrorIs(t, store.Delete(context.Background(), key), license.ErrInvalidKey)
	}
	assert.Zero(t, calls)
}

func TestNewHTTPStore_Validation(t *testing.T) {
	_, err := license.NewHTTPStore(string([]byte{0x7f}), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)

	_, err = license.NewHTTPStore("ftp://example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)

	_, err = license.NewHTTPStore("https://", "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), config.ErrInvalidURL))
}
