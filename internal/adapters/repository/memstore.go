package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ecoperks/ecosort/pkg/metrics"
)

// MemStore is the in-memory, mutex-guarded Store implementation.
//
// Ordering: score DESC, then player ASC. The original leaderboard left
// tie order to incidental map iteration; we document name-ascending as
// the stable secondary key so ranks are deterministic.
type MemStore struct {
	mu     sync.RWMutex
	scores map[string]int
}

// NewMemStore creates an empty in-memory leaderboard store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		scores: make(map[string]int),
	}
}

// Add credits points to a player, inserting the player if new.
func (s *MemStore) Add(_ context.Context, player string, points int) error {
	if strings.TrimSpace(player) == "" {
		return ErrEmptyPlayer
	}
	if points <= 0 {
		return ErrInvalidPoints
	}

	s.mu.Lock()
	s.scores[player] += points
	total := len(s.scores)
	s.mu.Unlock()

	metrics.RecordLeaderboardUpdate()
	metrics.UpdateLeaderboardPlayers(total)
	return nil
}

// Top returns up to n entries ordered by score descending.
func (s *MemStore) Top(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	entries := s.snapshot()
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// Rank returns the current rank and score for a player.
func (s *MemStore) Rank(_ context.Context, player string) (Entry, error) {
	for _, e := range s.snapshot() {
		if e.Player == player {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Count returns the number of players tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores)
}

// Reset clears every entry. Idempotent.
func (s *MemStore) Reset(_ context.Context) {
	s.mu.Lock()
	s.scores = make(map[string]int)
	s.mu.Unlock()

	metrics.RecordLeaderboardReset()
	metrics.UpdateLeaderboardPlayers(0)
}

// snapshot copies and sorts the current standings. Player counts are
// small (one entry per name), so a sort per read is fine.
func (s *MemStore) snapshot() []Entry {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.scores))
	for player, score := range s.scores {
		entries = append(entries, Entry{Player: player, Score: score})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
