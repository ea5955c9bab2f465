package sessionstore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/sessionstore"
)

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	store := sessionstore.New()
	assert.Equal(t, sessionstore.StateUnknown, store.State())
	assert.False(t, store.IsAuthenticated())

	user, ok := store.Current()
	assert.False(t, ok)
	assert.Nil(t, user)

	store.Set(&apiclient.User{ID: "usr_1", Email: "a@x.com"})
	assert.Equal(t, sessionstore.StateAuthenticated, store.State())
	assert.True(t, store.IsAuthenticated())

	user, ok = store.Current()
	require.True(t, ok)
	assert.Equal(t, "usr_1", user.ID)

	store.Clear()
	assert.Equal(t, sessionstore.StateAnonymous, store.State())
	assert.False(t, store.IsAuthenticated())

	user, ok = store.Current()
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestStore_CurrentReturnsSnapshot(t *testing.T) {
	t.Parallel()

	store := sessionstore.New()
	original := &apiclient.User{ID: "usr_1", Name: "Alice"}
	store.Set(original)

	// Mutating the original after Set must not leak into the store
	original.Name = "Bob"
	got, _ := store.Current()
	assert.Equal(t, "Alice", got.Name)

	// Mutating the returned snapshot must not either
	got.Name = "Carol"
	again, _ := store.Current()
	assert.Equal(t, "Alice", again.Name)
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	store := sessionstore.New()

	var states []sessionstore.State
	var lastUser *apiclient.User
	unsubscribe := store.Subscribe(func(state sessionstore.State, user *apiclient.User) {
		states = append(states, state)
		lastUser = user
	})

	store.Set(&apiclient.User{ID: "usr_1"})
	require.Len(t, states, 1)
	assert.Equal(t, sessionstore.StateAuthenticated, states[0])
	require.NotNil(t, lastUser)
	assert.Equal(t, "usr_1", lastUser.ID)

	store.Clear()
	require.Len(t, states, 2)
	assert.Equal(t, sessionstore.StateAnonymous, states[1])
	assert.Nil(t, lastUser)

	unsubscribe()
	store.Set(&apiclient.User{ID: "usr_2"})
	assert.Len(t, states, 2)
}

func TestStore_SubscriberCanReadStore(t *testing.T) {
	t.Parallel()

	store := sessionstore.New()

	// Callbacks run outside the lock, so reads from inside are safe
	var observed sessionstore.State
	store.Subscribe(func(sessionstore.State, *apiclient.User) {
		observed = store.State()
	})

	store.Set(&apiclient.User{ID: "usr_1"})
	assert.Equal(t, sessionstore.StateAuthenticated, observed)
}

func TestStore_ConcurrentMutations(t *testing.T) {
	t.Parallel()

	store := sessionstore.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set(&apiclient.User{ID: "usr_1"})
		}()
		go func() {
			defer wg.Done()
			store.Clear()
		}()
	}
	wg.Wait()

	// Last writer wins: the store must settle in one of the two states
	state := store.State()
	assert.Contains(t, []sessionstore.State{
		sessionstore.StateAuthenticated,
		sessionstore.StateAnonymous,
	}, state)

	user, ok := store.Current()
	if state == sessionstore.StateAuthenticated {
		assert.True(t, ok)
		assert.NotNil(t, user)
	} else {
		assert.False(t, ok)
		assert.Nil(t, user)
	}
}
