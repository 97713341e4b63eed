package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetUnknownSession(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	bag := store.Get("nope")
	assert.NotNil(t, bag)
	assert.Empty(t, bag)
}

func TestUpdateMerges(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	store.Update("s1", Bag{"from": "Whitefield", "groupSize": 2})
	merged := store.Update("s1", Bag{"to": "Majestic", "groupSize": 4})

	assert.Equal(t, "Whitefield", merged["from"])
	assert.Equal(t, "Majestic", merged["to"])
	assert.Equal(t, 4, merged["groupSize"], "later values win")

	assert.Equal(t, merged, store.Get("s1"))
}

func TestUpdateNilValueDeletesKey(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	store.Update("s1", Bag{"from": "Whitefield"})
	merged := store.Update("s1", Bag{"from": nil})

	assert.NotContains(t, merged, "from")
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	store.Update("s1", Bag{"from": "Whitefield"})
	bag := store.Get("s1")
	bag["from"] = "tampered"

	assert.Equal(t, "Whitefield", store.Get("s1")["from"])
}

func TestExpiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	defer store.Stop()

	store.Update("s1", Bag{"from": "Whitefield"})
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, store.Get("s1"))
}

func TestUpdateRefreshesTTL(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	defer store.Stop()

	store.Update("s1", Bag{"from": "Whitefield"})
	time.Sleep(30 * time.Millisecond)
	store.Update("s1", Bag{"to": "Majestic"})
	time.Sleep(30 * time.Millisecond)

	bag := store.Get("s1")
	assert.Equal(t, "Whitefield", bag["from"], "update extends the session lifetime")
}

func TestClearAndLen(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	store.Update("s1", Bag{"a": 1})
	store.Update("s2", Bag{"b": 2})
	assert.Equal(t, 2, store.Len())

	store.Clear("s1")
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, store.Get("s1"))
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n%4)
			store.Update(id, Bag{"n": n})
			store.Get(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, store.Len())
}

func TestStopIsIdempotent(t *testing.T) {
	store := NewStore(time.Minute)
	store.Stop()
	store.Stop()
}
