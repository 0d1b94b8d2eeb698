package attendant

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

func TestFillOrdersDecreasesFirst(t *testing.T) {
	room, err := cloakroom.New(1, 6)
	require.NoError(t, err)
	locker, ok := room.FindFreeLocker()
	require.True(t, ok)

	require.NoError(t, fill(locker, cloakroom.Items{Umbrellas: 6}))
	require.NoError(t, fill(locker, cloakroom.Items{Coats: 6}))
	assert.Equal(t, cloakroom.Items{Coats: 6}, locker.Items())

	require.NoError(t, fill(locker, cloakroom.Items{Coats: 1, Backpacks: 2, Umbrellas: 1, OtherItems: 2}))
	assert.Equal(t, 6, locker.Total())
}

func TestFillRejectsOverCapacityTarget(t *testing.T) {
	room, err := cloakroom.New(1, 6)
	require.NoError(t, err)
	locker, ok := room.FindFreeLocker()
	require.True(t, ok)

	err = fill(locker, cloakroom.Items{Coats: 4, OtherItems: 3})
	assert.ErrorIs(t, err, cloakroom.ErrCapacityExceeded)
	assert.LessOrEqual(t, locker.Total(), locker.MaxItems())
}

func TestOutcome(t *testing.T) {
	tests := map[error]string{
		nil:              "ok",
		ErrNoFreeLockers: "no_free_lockers",
		ErrUnknownKey:    "unknown_key",
		fmt.Errorf("wrap: %w", cloakroom.ErrCapacityExceeded):  "capacity_exceeded",
		fmt.Errorf("wrap: %w", cloakroom.ErrInconsistentState): "inconsistent",
		errors.New("boom"): "error",
	}
	for err, want := range tests {
		assert.Equal(t, want, outcome(err), "error %v", err)
	}
}
