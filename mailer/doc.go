// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer is the notification collaborator: it delivers OTP codes to a
voter's contact address.

SMTP is the production implementation (go-mail over a configured account);
Func adapts any function for tests:

	notifier := mailer.NewSMTP(host, 587, user, pass, from)

	var sent []string
	fake := mailer.Func(func(ctx context.Context, to, subject, body string) error {
		sent = append(sent, body)
		return nil
	})

Delivery happens after the code is persisted, and a delivery failure is
reported to the caller as a warning rather than failing the request - the
persisted code is valid either way.
*/
package mailer
