// Package repository defines the leaderboard store interface and its
// in-memory implementation.
package repository

import "context"

// Entry represents a leaderboard row.
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Store provides read/write access to cumulative player scores.
//
// Lifecycle: a store starts empty, lives for the process lifetime, and
// is emptied only by Reset. Scores are cumulative and never decrease
// outside Reset.
type Store interface {
	// Add credits points to a player, inserting the player if new.
	// Points must be positive; callers guard the score > 0 policy.
	Add(ctx context.Context, player string, points int) error

	// Top returns up to n entries ordered by score descending, ties
	// broken by player name ascending.
	Top(ctx context.Context, n int) ([]Entry, error)

	// Rank returns the current rank and score for a player.
	// Returns ErrNotFound if the player has never scored.
	Rank(ctx context.Context, player string) (Entry, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int

	// Reset clears every entry. Resetting an empty store is a no-op.
	Reset(ctx context.Context)
}
