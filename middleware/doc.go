// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests with credentials for the frontend:

	server := http.Server{
		Handler: middleware.CORS(mux, cfg.CORSOrigin),
	}

Sets the CORS headers only when the request Origin matches the configured
origin, with Access-Control-Allow-Credentials so session cookies survive
cross-origin requests. Allows methods GET, POST, PUT, DELETE, OPTIONS with
headers Content-Type, Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ErrorResponse writes the standard failure envelope {"success":false,"message":...}.

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used when logging authentication events.
*/
package middleware
