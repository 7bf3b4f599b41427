package i

import "context"

// SortedQueue is a scored set of members, newest (highest score) first.
type SortedQueue interface {
	// Enqueue adds member with score, replacing the score of an existing member.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// Tops returns up to amount members with the highest scores.
	Tops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members under queueKey.
	Count(ctx context.Context, queueKey string) int64
}
