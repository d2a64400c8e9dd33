// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements server-side login sessions and the session gate.

# Session Gate

Resolve turns an inbound cookie token into the owning user:

	user, err := session.Resolve(db, session.TokenFromRequest(r))

Failure modes, in check order:

  - ErrNoSession: no token on the request
  - ErrInvalidSession: unknown token, or the owning user no longer exists
  - ErrExpired: the session's expiry has passed

Expired sessions are deleted lazily, as a side effect of being observed.
The check is idempotent: once deleted, a retry reports ErrInvalidSession.
Resolve is re-run independently for every user-scoped request; nothing is
cached between requests.

# Lifecycle

	s, err := session.Create(db, userID, cliparse.SessionTTL)
	err = session.Delete(db, s.ID) // idempotent

# Cookie

The session token travels in an HttpOnly, SameSite=Strict cookie named
"sessionId" whose max-age matches the session TTL. Secure is set only in
production.
*/
package session
