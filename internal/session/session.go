// Package session хранит предпочтения посетителя в подписанной cookie.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName — имя cookie сессии.
const CookieName = "portfolio_session"

// contextKey — ключ сессии в gin.Context.
const contextKey = "session"

// Theme — тема оформления. Допустимы только ThemeLight и ThemeDark.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme используется, пока посетитель не выбрал тему.
const DefaultTheme = ThemeLight

// ParseTheme возвращает тему и признак того, что значение допустимо.
func ParseTheme(raw string) (Theme, bool) {
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), true
	default:
		return "", false
	}
}

// Session — данные сессии одного браузера.
type Session struct {
	Theme Theme
}

type claims struct {
	Theme string `json:"theme,omitempty"`
	jwt.RegisteredClaims
}

// Manager подписывает и проверяет cookie сессии (HS256).
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager создаёт менеджер сессий. secure включает флаг Secure у cookie.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Load читает сессию из запроса. Отсутствующая, просроченная или подделанная cookie даёт пустую сессию.
func (m *Manager) Load(r *http.Request) Session {
	s := Session{Theme: DefaultTheme}

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return s
	}

	parsed := &claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, parsed, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return s
	}

	if theme, ok := ParseTheme(parsed.Theme); ok {
		s.Theme = theme
	}
	return s
}

// Save подписывает сессию и выставляет cookie.
func (m *Manager) Save(w http.ResponseWriter, s Session) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Theme: string(s.Theme),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware загружает сессию и кладёт её в контекст запроса.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, m.Load(c.Request))
		c.Next()
	}
}

// FromContext возвращает сессию текущего запроса или сессию по умолчанию.
func FromContext(c *gin.Context) Session {
	if raw, ok := c.Get(contextKey); ok {
		if s, ok := raw.(Session); ok {
			return s
		}
	}
	return Session{Theme: DefaultTheme}
}
