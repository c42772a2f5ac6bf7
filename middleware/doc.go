// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Logging

WithLogging wraps handlers with structured request/completion logging:

	mux.HandleFunc("POST /otp/send", middleware.WithLogging(handler.SendOTP))

# JSON Helpers

JSONResponse and ErrorResponse write consistent JSON bodies. Error bodies
carry the stable failure code alongside the human-readable message:

	{"error": "Forbidden", "code": "ALREADY_VOTED", "message": "..."}

# CORS Middleware

CORS wraps the whole mux so the browser UI can talk to the API from another
origin. Credentials are allowed because the session rides in a cookie:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# Client IP

GetClientIP resolves the request origin for abuse throttling, preferring
X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
