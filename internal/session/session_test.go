package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	theme, ok := ParseTheme("dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, theme)

	theme, ok = ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, theme)

	for _, raw := range []string{"purple", "", "Dark", " light"} {
		_, ok := ParseTheme(raw)
		assert.False(t, ok, raw)
	}
}

// roundTrip сохраняет сессию и возвращает запрос с полученной cookie.
func roundTrip(t *testing.T, m *Manager, s Session) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, s))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestManager_SaveAndLoad(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)

	req := roundTrip(t, m, Session{Theme: ThemeDark})
	assert.Equal(t, ThemeDark, m.Load(req).Theme)
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, DefaultTheme, m.Load(req).Theme)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	signer := NewManager("other-secret", time.Hour, false)
	verifier := NewManager("test-secret", time.Hour, false)

	req := roundTrip(t, signer, Session{Theme: ThemeDark})
	assert.Equal(t, DefaultTheme, verifier.Load(req).Theme)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	assert.Equal(t, DefaultTheme, m.Load(req).Theme)
}

func TestManager_ExpiredSession(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, false)

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, Session{Theme: ThemeDark}))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	// Браузер такую cookie удалит; проверяем, что и просроченный токен не принимается.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookies[0].Value})
	assert.Equal(t, DefaultTheme, m.Load(req).Theme)
}

func TestMiddleware_PutsSessionIntoContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager("test-secret", time.Hour, false)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, string(FromContext(c).Theme))
	})

	req := roundTrip(t, m, Session{Theme: ThemeDark})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "dark", w.Body.String())
}

func TestFromContext_Default(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, DefaultTheme, FromContext(c).Theme)
}
