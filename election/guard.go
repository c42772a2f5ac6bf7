// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// originThrottled reports whether an origin has already requested codes for
// originLimit distinct identifiers. The check runs before the current
// attempt is logged, so the current request never counts against itself.
func (i *Issuer) originThrottled(ctx context.Context, origin string) (bool, error) {
	var distinct int
	err := i.db.GetContext(ctx, &distinct, i.db.Rebind(`
		SELECT COUNT(DISTINCT voter_identifier)
		FROM origin_request
		WHERE origin = ?
	`), origin)
	if err != nil {
		return false, wrapError(CodeStoreUnavailable, "failed to check origin activity", err)
	}
	return distinct >= originLimit, nil
}

// logOriginRequest appends the attempt to the origin log. Best-effort: a
// logging failure must not abort issuance.
func (i *Issuer) logOriginRequest(ctx context.Context, origin, identifier string, at time.Time) {
	_, err := i.db.ExecContext(ctx, i.db.Rebind(`
		INSERT INTO origin_request (id, origin, voter_identifier, requested_at)
		VALUES (?, ?, ?, ?)
	`), uuid.NewString(), origin, identifier, at)
	if err != nil {
		slog.Warn("failed to log origin request", "origin", origin, "error", err)
	}
}
