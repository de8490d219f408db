package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/extracurricular/internal/catalog"
	"example.com/extracurricular/internal/domain"
)

func newTestRegistry() *InMemoryRegistry {
	return NewInMemoryRegistry([]domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
	})
}

func TestSignupAppendsParticipant(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	updated, err := reg.Signup(ctx, "Chess Club", "ada@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "ada@mergington.edu"}, updated.Participants)

	got, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HasParticipant("ada@mergington.edu"))
}

func TestSignupDuplicateIsConflict(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Signup(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUnregisterRemovesParticipant(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	updated, err := reg.Unregister(ctx, "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, updated.Participants)

	_, err = reg.Unregister(ctx, "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrNotSignedUp)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUnknownActivityIsNotFound(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	for _, email := range []string{"michael@mergington.edu", "nobody@mergington.edu"} {
		_, err := reg.Signup(ctx, "Fake Activity", email)
		require.ErrorIs(t, err, domain.ErrActivityNotFound)

		_, err = reg.Unregister(ctx, "Fake Activity", email)
		require.ErrorIs(t, err, domain.ErrActivityNotFound)
	}

	got, err := reg.Get(ctx, "Fake Activity")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	reg := NewInMemoryRegistry(catalog.Default())
	require.Equal(t, 9, reg.Len())

	all, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 9)

	tennis := all["Tennis Club"]
	tennis.Participants[0] = "mutated@mergington.edu"

	again, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alex@mergington.edu"}, again["Tennis Club"].Participants)
}

func TestSeedIsNotAliased(t *testing.T) {
	seed := catalog.Default()
	reg := NewInMemoryRegistry(seed)

	_, err := reg.Signup(context.Background(), "Tennis Club", "new@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"alex@mergington.edu"}, seed[0].Participants)
}

func TestConcurrentSignupsKeepRosterUnique(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every email is attempted twice; exactly one attempt may win.
			email := fmt.Sprintf("student%d@mergington.edu", i%25)
			_, _ = reg.Signup(ctx, "Chess Club", email)
		}(i)
	}
	wg.Wait()

	got, err := reg.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Len(t, got.Participants, 27)
}
