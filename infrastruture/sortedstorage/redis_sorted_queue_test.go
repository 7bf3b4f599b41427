package sortedstorage

import (
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// rankSlice applies Redis rank range rules to members ordered by ascending score.
func rankSlice(members []string, start, stop int64) []string {
	n := int64(len(members))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	start = max(start, 0)
	stop = min(stop, n-1)
	if start > stop {
		return members[:0]
	}
	return members[start : stop+1]
}

func ascending(n int) []string {
	members := make([]string, n)
	for idx := range members {
		members[idx] = fmt.Sprintf("m%d", idx)
	}
	return members
}

func TestTrimStopKeepsHighestScores(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		maxLen  int64
		removed int
	}{
		{name: "one over the cap", size: 6, maxLen: 5, removed: 1},
		{name: "far over the cap", size: 20, maxLen: 5, removed: 15},
		{name: "at the cap", size: 5, maxLen: 5, removed: 0},
		{name: "under the cap", size: 3, maxLen: 5, removed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := ascending(tt.size)
			removed := rankSlice(members, 0, trimStop(tt.maxLen))

			assert.Len(t, removed, tt.removed)
			assert.Equal(t, members[:tt.removed], removed)
			kept := members[len(removed):]
			assert.LessOrEqual(t, int64(len(kept)), tt.maxLen)
			assert.Equal(t, members[len(members)-1], kept[len(kept)-1])
		})
	}
}

func TestTopsRange(t *testing.T) {
	start, stop := topsRange(3)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(2), stop)

	// ZRevRange ranks are highest first, so the slice of a descending list is the top three.
	descending := []string{"m9", "m8", "m7", "m6"}
	assert.Equal(t, []string{"m9", "m8", "m7"}, rankSlice(descending, start, stop))
}

func TestNewRedisSortedQueueDefaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisSortedQueue(client, 0, 0)
	assert.Equal(t, int64(defaultMaxLen), q.maxLen)

	q = NewRedisSortedQueue(client, 0, 7)
	assert.Equal(t, int64(7), q.maxLen)
}
