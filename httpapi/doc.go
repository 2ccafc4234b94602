// Package httpapi serves the tokenAuth Engine over HTTP with a gorilla/mux
// router.
//
// Routes:
//
//	POST /api/auth/signup   JSON body, sets the refresh cookie
//	POST /api/auth/login    JSON body, sets the refresh cookie
//	POST /api/auth/logout   bearer token + cookie, 204, clears the cookie
//	POST /api/auth/refresh  cookie, rotates it
//	GET  /api/auth/me       current principal
//	GET  /healthz, /readyz, /metrics
//
// The refresh token id only ever travels in an HttpOnly cookie; response
// bodies carry the access token and profile. Errors are JSON objects with
// error_code and error_message.
package httpapi
