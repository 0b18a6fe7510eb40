package tokencache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetUnknownKeyMisses(t *testing.T) {
	cache := NewMemory()

	token, ok := cache.Get("microsoft")

	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestPutThenGet(t *testing.T) {
	cache := NewMemory()

	cache.Put("microsoft", "tok-1", time.Hour)
	token, ok := cache.Get("microsoft")

	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestExpiredEntryNeverReturned(t *testing.T) {
	now := time.Now()
	cache := NewMemory()
	cache.now = func() time.Time { return now }

	cache.Put("microsoft", "tok-1", 30*time.Minute)

	now = now.Add(30 * time.Minute)
	_, ok := cache.Get("microsoft")
	assert.False(t, ok)
}

func TestNonPositiveTTLMissesImmediately(t *testing.T) {
	// Acquirer computes ttl = expires_in - 300s; when expires_in < 300 the
	// stored entry must report a miss on the very next Get.
	cache := NewMemory()

	cache.Put("microsoft", "tok-1", 0)
	_, ok := cache.Get("microsoft")
	assert.False(t, ok)

	cache.Put("microsoft", "tok-2", -time.Minute)
	_, ok = cache.Get("microsoft")
	assert.False(t, ok)
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	cache := NewMemory()

	cache.Put("microsoft", "old", time.Hour)
	cache.Put("microsoft", "new", time.Hour)

	token, ok := cache.Get("microsoft")
	assert.True(t, ok)
	assert.Equal(t, "new", token)
}

func TestEntriesAreIndependentPerIntegration(t *testing.T) {
	cache := NewMemory()

	cache.Put("microsoft", "graph-token", time.Hour)

	_, ok := cache.Get("listmonk")
	assert.False(t, ok)
}
