// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and environment
variables. A .env file in the working directory is loaded first (via
godotenv), then flags override environment values.

# Settings

Network settings (flag or env):

  - PORT (-p): server port (default 3324)
  - DATABASE_URL (-d): database connection string (required)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default sqlite)

Secrets (env preferred, flag allowed for dev):

  - JWT_SECRET (-jwt-secret): HMAC secret for session credentials (required)

Election window (env only, RFC3339, required):

  - ELECTION_START, ELECTION_END: the half-open interval during which OTP
    requests are accepted

OTP delivery (env only):

  - SMTP_HOST (required), SMTP_PORT (default 587), SMTP_USER, SMTP_PASS
  - MAIL_FROM: sender address (defaults to SMTP_USER)

Cookies:

  - SECURE_COOKIES: "true" to set the Secure flag on the session cookie
*/
package cliparse
