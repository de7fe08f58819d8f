// Package cookie manages the access-token session cookie.
package cookie

import (
	"net/http"
	"time"

	"minimarket-backoffice/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var sameSiteModes = map[string]http.SameSite{
	"Strict": http.SameSiteStrictMode,
	"Lax":    http.SameSiteLaxMode,
	"None":   http.SameSiteNoneMode,
}

func sameSiteOf(name string) http.SameSite {
	if mode, ok := sameSiteModes[name]; ok {
		return mode
	}
	return http.SameSiteLaxMode
}

// The cookie is always HttpOnly; scripts never need the raw token.
func write(c *gin.Context, cfg config.CookieConfig, value string, maxAge int) {
	c.SetSameSite(sameSiteOf(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, value, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

func SetTokenCookie(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	write(c, cfg, accessToken, int(expiry.Seconds()))
}

func ClearTokenCookie(c *gin.Context, cfg config.CookieConfig) {
	write(c, cfg, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
