// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie delivered to clients.
const CookieName = "sessionId"

// TokenFromRequest extracts the session token from the request cookie.
// Returns "" when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie. The max-age matches the stored
// session TTL; Secure is only set in production so local development over
// plain HTTP keeps working.
func SetCookie(w http.ResponseWriter, sessionID string, ttl time.Duration, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
