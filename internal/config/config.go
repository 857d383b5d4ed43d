package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used by the license gate.
var UserAgent = "Showtime/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Showtime"
	AppID             = "com.github.tartampluch.showtime"
	KeyringService    = "com.github.tartampluch.showtime"
	KeyringAccessUser = "access-granted"
	KeyringAccessFlag = "true"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	BackendName       = "showtime-licensed"
	BackendLogFile    = "licensed.log"
	IconFile          = "Icon.svg"
	DotEnvFile        = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// ActionBufferSize bounds the number of user actions queued for the event loop.
	ActionBufferSize = 32
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagLicense      = "license"
	FlagAddr         = "addr"
	FlagDB           = "db"
	FlagMint         = "mint"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescLicense  = "License key, or a URL carrying a license_key query parameter"
	FlagDescAddr     = "Listen address of the license backend"
	FlagDescDB       = "Path of the license SQLite database"
	FlagDescMint     = "Issue N new license keys, print them and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Stopwatch Timings
// -----------------------------------------------------------------------------

const (
	// DebounceDelay is the rate-limit guard on the start/stop control.
	DebounceDelay = 300 * time.Millisecond

	// KeypadCommitDelay is the pause between the second digit and the overlay closing.
	KeypadCommitDelay = 300 * time.Millisecond

	// WorldClockLabelDelay is the cosmetic label swap after a scripted pause.
	WorldClockLabelDelay = 4 * time.Second

	// WorldClockResumeDelay is measured from the scripted pause, not from the label swap.
	WorldClockResumeDelay = 5 * time.Second

	// AutoStopDelay is the scripted stop after resume (staged) or start (single-shot).
	AutoStopDelay = 6 * time.Second

	// PeekDuration is how long the remembered state stays on screen.
	PeekDuration = 2 * time.Second

	// DefaultRefreshInterval approximates one display frame.
	DefaultRefreshInterval = 16 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Display Formats
// -----------------------------------------------------------------------------

const (
	FormatDisplay    = "%02d:%02d.%s"
	FormatCentis     = "%02d"
	PlaceholderEntry = "--"
	ZeroDisplay      = "00:00.00"
	PredictionDigits = 2
)

// -----------------------------------------------------------------------------
// Illusion Sequences
// -----------------------------------------------------------------------------

const (
	SequenceStaged     = "staged"
	SequenceSingleShot = "single_shot"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth         = 360
	WindowHeight        = 640
	SettingsWindowWidth = 420
	MainDisplayTextSize = 56
	KeypadColumns       = 3

	DefaultLanguage     = "en"
	PeekIndicator       = "•"
	MarkFastestSuffix   = " ▲"
	MarkSlowestSuffix   = " ▼"

	// Preference Keys
	PrefLanguage = "language"
	PrefSequence = "illusion_sequence"
	PrefLastRun  = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "id"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle          = "win_title"
	TKeyWinSettings       = "win_settings_title"
	TKeyBtnStart          = "btn_start"
	TKeyBtnStop           = "btn_stop"
	TKeyBtnLap            = "btn_lap"
	TKeyBtnReset          = "btn_reset"
	TKeyBtnClear          = "btn_clear"
	TKeyBtnSave           = "btn_save"
	TKeyBtnCancel         = "btn_cancel"
	TKeyTabStopwatch      = "tab_stopwatch"
	TKeyTabWorldClock     = "tab_world_clock"
	TKeyTabWorldClockSync = "tab_world_clock_sync"
	TKeyTabAlarms         = "tab_alarms"
	TKeyLapLabel          = "lap_label" // Requires Number
	TKeyLblLanguage       = "lbl_language"
	TKeyLblSequence       = "lbl_sequence"
	TKeySeqStaged         = "seq_staged"
	TKeySeqSingleShot     = "seq_single_shot"
	TKeyLblFooter         = "lbl_footer"
	TKeyDeniedTitle       = "denied_title"
	TKeyDeniedInvalid     = "denied_invalid"
	TKeyDeniedUnreachable = "denied_unreachable"
	TKeyVerifying         = "verifying"
	TKeyKeypadTitle       = "keypad_title"
)

// -----------------------------------------------------------------------------
// License Gate
// -----------------------------------------------------------------------------

const (
	LicenseModeSingleUse = "single_use"
	LicenseModeDevice    = "device"
	LicenseQueryParam    = "license_key"
	DefaultLicensePath   = "data/licenses"
	LicenseKeySuffix     = ".json"
	JSONNull             = "null"

	// LicenseKeyForbidden lists characters that cannot appear in a key path segment.
	LicenseKeyForbidden = "./#$[]?"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 15 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 10 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, DELETE"
	MaxHTTPResponseSize = 64 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	DefaultBackendAddr  = LocalhostBindAddr + ":18090"
	DefaultBackendDB    = "licenses.db"
	DefaultLicenseURL   = "http://127.0.0.1:18090"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"

	MimeJSON        = "application/json; charset=utf-8"
	MimeNoSniff     = "nosniff"
	CacheControlOff = "no-store"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLicenseDenied      = "license denied"
	ErrLicenseUnavailable = "license server unavailable"
	ErrLicenseKeyInvalid  = "license key is malformed"
	ErrLicenseKeyMissing  = "license key is missing"
	ErrLicenseInactive    = "license key is inactive"
	ErrLicenseLookup      = "license lookup failed"
	ErrLicenseDelete      = "license delete failed"
	ErrLicenseDecode      = "failed to decode license record"
	ErrAccessPersist      = "failed to persist access flag"
	ErrStoreMissing       = "internal error: license store is not initialized"
	ErrStorePath          = "storage path is required"
	ErrStoreOpen          = "open sqlite db"
	ErrStorePing          = "ping sqlite db"
	ErrStoreMigrate       = "run migrations"
	ErrServerStartup      = "server startup failed"
	ErrServerShutdown     = "server shutdown failed"
	ErrAddrRequired       = "listen address is required"
	ErrInvalidURL         = "invalid URL structure"
	ErrProtocol           = "unsupported protocol scheme (http/https only)"
	ErrUnexpectedStatus   = "server returned unexpected status"
	ErrEnvParse           = "parse env"
	ErrDotEnv             = "read dotenv file"
	ErrSequenceUnknown    = "unknown illusion sequence"
	ErrRefreshInterval    = "refresh interval must be positive"
	ErrLicenseModeUnknown = "unknown license mode"
	ErrLogFile            = "failed to open log file"
	ErrCacheDir           = "could not determine user cache dir"
	ErrCreateDir          = "could not create app cache dir"
	ErrAppFailed          = "application failed unexpectedly"
	ErrWriteResp          = "failed to write response body"
	ErrLocalesAccess      = "failed to access embedded locales"
	ErrLocaleLoad         = "failed to load locale file"
	ErrMintFailed         = "failed to mint license keys"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackDeniedTitle   = "Access Denied"
	FallbackDeniedInvalid = "The license key is invalid or has already been used."
	FallbackUnreachable   = "Unable to reach the verification server."
	FallbackLapLabel      = "Lap %d"

	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgLoopStart       = "Event loop started"
	MsgLoopStop        = "Event loop stopping due to context cancellation"
	MsgPoolInit        = "Sum of nine pool initialized"
	MsgPoolExhausted   = "Sum of nine pool exhausted, re-initializing"
	MsgTokenIssued     = "Sum of nine token issued"
	MsgPhaseChange     = "Illusion phase changed"
	MsgTaskFired       = "Deferred task fired"
	MsgTaskStale       = "Deferred task ignored, state moved on"
	MsgReset           = "Stopwatch reset"
	MsgLicenseCheck    = "Verifying license"
	MsgLicenseGranted  = "License valid, access granted"
	MsgLicenseConsumed = "License consumed and deleted"
	MsgLicenseRemember = "Access already granted on this device"
	MsgLicenseDenied   = "License rejected"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgKeysMinted      = "License keys minted"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSettingsSaved   = "Saving preferences"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyPhase     = "phase"
	LogKeyTask      = "task"
	LogKeyToken     = "token"
	LogKeyRemaining = "remaining"
	LogKeyLaps      = "laps"
	LogKeyElapsed   = "elapsed_ms"
	LogKeyCount     = "count"
	LogKeySequence  = "sequence"
	LogKeyMethod    = "method"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompLoop    = "loop"
	CompLicense = "license"
	CompServer  = "server"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTabs   = 3
)
