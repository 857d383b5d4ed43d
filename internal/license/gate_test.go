package license_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/showtime/internal/license"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockStore simulates the remote key-value database using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Lookup(ctx context.Context, key string) (license.Record, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(license.Record), args.Bool(1), args.Error(2)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// -----------------------------------------------------------------------------
// Single-use mode
// -----------------------------------------------------------------------------

func TestGate_SingleUse_ConsumesKey(t *testing.T) {
	store := new(MockStore)
	store.On("Lookup", mock.Anything, "k1").Return(license.Record{}, true, nil)
	store.On("Delete", mock.Anything, "k1").Return(nil)

	gate := &license.Gate{Store: store, Mode: license.ModeSingleUse}
	require.NoError(t, gate.Verify(context.Background(), "k1"))
	store.AssertExpectations(t)
}

func TestGate_SingleUse_Denied(t *testing.T) {
	tests := []struct {
		name string
		key  string
		prep func(*MockStore)
	}{
		{"MissingKey", "", func(*MockStore) {}},
		{"MalformedKey", "a/b", func(*MockStore) {}},
		{"UnknownKey", "k2", func(s *MockStore) {
			s.On("Lookup", mock.Anything, "k2").Return(license.Record{}, false, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.prep(store)

			gate := &license.Gate{Store: store}
			err := gate.Verify(context.Background(), tt.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, license.ErrDenied)
			assert.True(t, license.Denied(err))
			store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestGate_SingleUse_Unavailable(t *testing.T) {
	netErr := errors.New("connection refused")

	t.Run("LookupFails", func(t *testing.T) {
		store := new(MockStore)
		store.On("Lookup", mock.Anything, "k").Return(license.Record{}, false, netErr)

		err := (&license.Gate{Store: store}).Verify(context.Background(), "k")
		assert.ErrorIs(t, err, license.ErrUnavailable)
		assert.ErrorIs(t, err, netErr)
		assert.False(t, license.Denied(err))
	})

	t.Run("DeleteFails", func(t *testing.T) {
		store := new(MockStore)
		store.On("Lookup", mock.Anything, "k").Return(license.Record{Active: true}, true, nil)
		store.On("Delete", mock.Anything, "k").Return(netErr)

		err := (&license.Gate{Store: store}).Verify(context.Background(), "k")
		assert.ErrorIs(t, err, license.ErrUnavailable)
	})

	t.Run("NoStore", func(t *testing.T) {
		err := (&license.Gate{}).Verify(context.Background(), "k")
		assert.ErrorIs(t, err, license.ErrUnavailable)
	})
}

// -----------------------------------------------------------------------------
// Device mode
// -----------------------------------------------------------------------------

func TestGate_Device(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	access := license.NewKeyringAccess()

	store := new(MockStore)
	store.On("Lookup", mock.Anything, "inactive").Return(license.Record{Active: false}, true, nil)
	store.On("Lookup", mock.Anything, "good").Return(license.Record{Active: true}, true, nil)

	gate := &license.Gate{Store: store, Access: access, Mode: license.ModeDevice}

	// No key and no remembered access.
	assert.ErrorIs(t, gate.Verify(ctx, ""), license.ErrDenied)

	// Inactive keys are rejected and not remembered.
	assert.ErrorIs(t, gate.Verify(ctx, "inactive"), license.ErrDenied)
	granted, err := access.Granted()
	require.NoError(t, err)
	assert.False(t, granted)

	// A valid key is kept on the server and remembered locally.
	require.NoError(t, gate.Verify(ctx, "good"))
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	granted, err = access.Granted()
	require.NoError(t, err)
	assert.True(t, granted)

	// Later runs need no key.
	require.NoError(t, gate.Verify(ctx, ""))
}

func TestParseMode(t *testing.T) {
	m, err := license.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, license.ModeSingleUse, m)

	m, err = license.ParseMode("device")
	require.NoError(t, err)
	assert.Equal(t, license.ModeDevice, m)

	_, err = license.ParseMode("forever")
	assert.Error(t, err)
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  abc-123  ", "abc-123"},
		{"https://showtime.example/app.html?license_key=abc-123", "abc-123"},
		{"https://showtime.example/app.html?foo=bar", ""},
		{"showtime://open?license_key=k%2Dx", "k-x"},
		{"?license_key=xyz", "xyz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, license.KeyFromURL(tt.raw), "raw=%q", tt.raw)
	}
}
