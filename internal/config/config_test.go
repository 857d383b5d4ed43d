package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/showtime/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"KeyringService", config.KeyringService},
		{"ZeroDisplay", config.ZeroDisplay},
		{"PlaceholderEntry", config.PlaceholderEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, config.AppName+"/"), "UserAgent must start with AppName/")
}

// TestDisplay_Shape keeps the placeholders in line with the two-digit prediction.
func TestDisplay_Shape(t *testing.T) {
	assert.Len(t, config.PlaceholderEntry, config.PredictionDigits)
	assert.Len(t, config.ZeroDisplay, len("mm:ss.cc"))
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}

// TestIllusionTimings pins the scripted sequence. The resume must follow the
// label swap, and the peek must outlast a single frame.
func TestIllusionTimings(t *testing.T) {
	assert.Equal(t, 4*time.Second, config.WorldClockLabelDelay)
	assert.Equal(t, 5*time.Second, config.WorldClockResumeDelay)
	assert.Equal(t, 6*time.Second, config.AutoStopDelay)
	assert.Equal(t, 2*time.Second, config.PeekDuration)
	assert.Less(t, config.WorldClockLabelDelay, config.WorldClockResumeDelay)
	assert.Greater(t, config.PeekDuration, config.DefaultRefreshInterval)
	assert.Less(t, config.DebounceDelay, time.Second)
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	// License records are tiny JSON documents.
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.LessOrEqual(t, config.MaxHTTPResponseSize, 1024*1024, "MaxHTTPResponseSize should stay small")
}

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLicenseURL, cfg.LicenseURL)
	assert.Equal(t, config.DefaultLicensePath, cfg.LicensePath)
	assert.Equal(t, config.LicenseModeSingleUse, cfg.LicenseMode)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, config.SequenceStaged, cfg.Sequence)
	assert.Equal(t, config.DefaultBackendAddr, cfg.LicensedAddr)
	assert.Equal(t, config.DefaultBackendDB, cfg.LicensedDB)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("SHOWTIME_LICENSE_URL", "https://licenses.example.com")
	t.Setenv("SHOWTIME_LICENSE_MODE", config.LicenseModeDevice)
	t.Setenv("SHOWTIME_REFRESH_INTERVAL", "33ms")
	t.Setenv("SHOWTIME_SEQUENCE", config.SequenceSingleShot)

	cfg, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://licenses.example.com", cfg.LicenseURL)
	assert.Equal(t, config.LicenseModeDevice, cfg.LicenseMode)
	assert.Equal(t, 33*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, config.SequenceSingleShot, cfg.Sequence)
}

func TestLoadEnv_Errors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"BadDuration", "SHOWTIME_REFRESH_INTERVAL", "fast", config.ErrEnvParse},
		{"NonPositiveInterval", "SHOWTIME_REFRESH_INTERVAL", "0s", config.ErrRefreshInterval},
		{"UnknownSequence", "SHOWTIME_SEQUENCE", "levitation", config.ErrSequenceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.LoadEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEnvFile_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SHOWTIME_SEQUENCE=single_shot\nSHOWTIME_LICENSED_ADDR=0.0.0.0:9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	cfg, err := config.LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.SequenceSingleShot, cfg.Sequence)
	assert.Equal(t, "0.0.0.0:9000", cfg.LicensedAddr)

	// The process environment wins over the file.
	t.Setenv("SHOWTIME_SEQUENCE", config.SequenceStaged)
	cfg, err = config.LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.SequenceStaged, cfg.Sequence)
}

func TestLoadEnvFile_MissingFile(t *testing.T) {
	cfg, err := config.LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, config.SequenceStaged, cfg.Sequence)
}

func TestLoadEnvFile_BadFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOWTIME_SEQUENCE=levitation\n"), config.FilePermUserRW))

	_, err := config.LoadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSequenceUnknown)
}
