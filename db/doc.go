// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The schema avoids engine-specific defaults (no NOW()) so it runs unchanged
on both postgres (lib/pq) and sqlite (modernc.org/sqlite); timestamps are
bound explicitly by callers.

# Tables

The schema includes:

  - app_user: accounts with unique username/email and verification state
  - session: server-side login sessions with expiry
  - quiz: one JSON document per quiz holding the ordered question list
  - analysis: immutable AI performance analyses (JSON payload)
  - flow: join records linking a quiz to its eventual analysis

# Relationships

	app_user 1──* session
	app_user 1──* quiz
	app_user 1──* analysis
	app_user 1──* flow
	flow *──1 quiz
	flow *──0..1 analysis

References are weak: lookups are keyed by id, nothing cascades, and a
dangling reference simply fails resolution. A user's ordered flow list is
the flow rows for that user ordered by (created_at, id); appending is a
single INSERT, so there is no read-modify-write window.

# Indexes

Performance indexes on:

  - app_user.email (unique), app_user.username (unique)
  - session.user_id
  - quiz.user_id
  - analysis.user_id
  - flow.user_id
  - flow.(quiz_id, user_id)
*/
package db
