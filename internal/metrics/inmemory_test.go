package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	m := NewInMemory()

	m.IncUserCreated()
	m.IncUserCreated()
	m.IncUserUpdated()
	m.IncUserDeleted()
	m.IncPostCreated()
	m.IncPostUpdated()
	m.IncPostUpdated()
	m.IncPostDeleted()
	m.ObserveStoreDuration(250 * time.Millisecond)
	m.ObserveStoreDuration(750 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.UsersCreated)
	assert.Equal(t, uint64(1), snap.UsersUpdated)
	assert.Equal(t, uint64(1), snap.UsersDeleted)
	assert.Equal(t, uint64(1), snap.PostsCreated)
	assert.Equal(t, uint64(2), snap.PostsUpdated)
	assert.Equal(t, uint64(1), snap.PostsDeleted)
	assert.Equal(t, uint64(2), snap.StoreDurationCount)
	assert.Equal(t, time.Second.Nanoseconds(), snap.StoreDurationTotalNs)
}

func TestInMemoryRecorder_StoreFailures(t *testing.T) {
	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncStoreFailure("insert_user")
		}()
	}
	wg.Wait()
	m.IncStoreFailure("list_posts")

	snap := m.Snapshot()
	assert.Equal(t, uint64(50), snap.StoreFailures["insert_user"])
	assert.Equal(t, uint64(1), snap.StoreFailures["list_posts"])
	assert.Equal(t, []string{"insert_user", "list_posts"}, snap.FailureOps())
}

func TestInMemoryRecorder_SnapshotIsCopy(t *testing.T) {
	m := NewInMemory()
	m.IncStoreFailure("remove_post")

	snap := m.Snapshot()
	snap.StoreFailures["remove_post"] = 99

	assert.Equal(t, uint64(1), m.Snapshot().StoreFailures["remove_post"])
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoop()

	assert.NotPanics(t, func() {
		r.IncUserCreated()
		r.IncPostDeleted()
		r.IncStoreFailure("list_users")
		r.ObserveStoreDuration(time.Millisecond)
	})
}
