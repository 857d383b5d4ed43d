package license

import (
	"net/url"
	"strings"

	"github.com/tartampluch/showtime/internal/config"
)

// KeyFromURL extracts the license key from a navigating URL carrying a
// license_key query parameter. Anything that is not such a URL is taken as
// a bare key.
func KeyFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Query().Get(config.LicenseQueryParam))
}
