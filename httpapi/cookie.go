package httpapi

import (
	"net/http"
	"time"

	tokenAuth "github.com/MrEthical07/tokenAuth"
)

type cookieJar struct {
	cfg tokenAuth.CookieConfig
	ttl time.Duration
}

func (c cookieJar) set(w http.ResponseWriter, tokenID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.Name,
		Value:    tokenID,
		Path:     c.cfg.Path,
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: c.cfg.SameSite,
	})
}

// clear emits Max-Age=0 so the browser drops the cookie.
func (c cookieJar) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.Name,
		Value:    "",
		Path:     c.cfg.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: c.cfg.SameSite,
	})
}

func (c cookieJar) read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.cfg.Name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
