package store

import "errors"

var (
	// ErrNotFound covers sessions that are absent, expired, or already
	// finished from the caller's point of view.
	ErrNotFound = errors.New("session not found")

	// ErrFull is returned when a join hits a session already at capacity.
	ErrFull = errors.New("session is full")

	// ErrDuplicateNickname is returned when a joining nickname collides
	// case-insensitively inside the session.
	ErrDuplicateNickname = errors.New("nickname already in use in this session")

	// ErrCodeTaken signals a join-code collision on create; the caller
	// regenerates and retries.
	ErrCodeTaken = errors.New("join code already in use")

	// ErrConflict is returned to the loser of a concurrent write race.
	ErrConflict = errors.New("conflicting concurrent update")
)
