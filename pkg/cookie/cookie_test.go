package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpweb/authkit/pkg/cookie"
)

const (
	testSecret    = "0123456789abcdef0123456789abcdef"
	rotatedSecret = "fedcba9876543210fedcba9876543210"
)

func TestNew(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		mgr, err := cookie.New([]string{testSecret})
		require.NoError(t, err)
		assert.NotNil(t, mgr)
	})

	t.Run("no secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("empty secrets filtered out", func(t *testing.T) {
		_, err := cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func setAndRead(t *testing.T, setter *cookie.Manager, reader *cookie.Manager, value string) (string, error) {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, setter.SetSigned(rec, "sid", value))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return reader.GetSigned(req, "sid")
}

func TestSignedRoundTrip(t *testing.T) {
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	got, err := setAndRead(t, mgr, mgr, "token-value")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestGetSigned_TamperDetected(t *testing.T) {
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.SetSigned(rec, "sid", "token-value"))

	raw := rec.Result().Cookies()[0]
	// Flip part of the encoded payload, keep the signature.
	mutated := strings.Replace(raw.Value, raw.Value[:2], "zz", 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: mutated})

	_, err = mgr.GetSigned(req, "sid")
	assert.Error(t, err)
}

func TestGetSigned_MissingCookie(t *testing.T) {
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = mgr.GetSigned(req, "sid")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestKeyRotation(t *testing.T) {
	oldMgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	// New deployment signs with the rotated key but still verifies the old one.
	newMgr, err := cookie.New([]string{rotatedSecret, testSecret})
	require.NoError(t, err)

	got, err := setAndRead(t, oldMgr, newMgr, "survives-rotation")
	require.NoError(t, err)
	assert.Equal(t, "survives-rotation", got)

	// A key absent from the verifier set must fail.
	strangerMgr, err := cookie.New([]string{"abcdefabcdefabcdefabcdefabcdefab"})
	require.NoError(t, err)
	_, err = setAndRead(t, oldMgr, strangerMgr, "nope")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.Delete(rec, "sid")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestDefaults_SecurityAttributes(t *testing.T) {
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.SetSigned(rec, "sid", "v"))

	c := rec.Result().Cookies()[0]
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
}
