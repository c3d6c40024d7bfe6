package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(codeGen UniqueIdGenerator) *Registry {
	if codeGen == nil {
		codeGen = &seqIdGen{prefix: "c"}
	}
	return NewRegistry(&seqIdGen{prefix: "room-"}, codeGen, 2, 5)
}

func TestRegistryPublic(t *testing.T) {
	t.Parallel()

	t.Run("Oldest open room is reused until full", func(t *testing.T) {
		t.Parallel()
		rg := newTestRegistry(nil)

		first := rg.FindOrCreatePublic()
		require.NoError(t, rg.Join(first, newPlayer("a", "a", "", "")))
		assert.Same(t, first, rg.FindOrCreatePublic())
		require.NoError(t, rg.Join(first, newPlayer("b", "b", "", "")))

		second := rg.FindOrCreatePublic()
		assert.NotSame(t, first, second)
		assert.Equal(t, 2, rg.Len())
		assert.ErrorIs(t, rg.Join(first, newPlayer("c", "c", "", "")), ErrRoomFull)
	})

	t.Run("Earlier room wins when both are open", func(t *testing.T) {
		t.Parallel()
		rg := newTestRegistry(nil)
		first := rg.FindOrCreatePublic()
		require.NoError(t, rg.Join(first, newPlayer("a", "a", "", "")))
		require.NoError(t, rg.Join(first, newPlayer("b", "b", "", "")))
		second := rg.FindOrCreatePublic()

		rg.Leave("b")

		assert.Same(t, first, rg.FindOrCreatePublic())
		assert.NotNil(t, rg.Get(second.id))
	})
}

func TestRegistryPrivate(t *testing.T) {
	t.Parallel()

	t.Run("Colliding codes are regenerated", func(t *testing.T) {
		t.Parallel()
		codes := &MockUniqueIdGenerator{}
		codes.On("Generate").Return("aaaaaa").Twice()
		codes.On("Generate").Return("BBBBBB").Once()
		rg := newTestRegistry(codes)

		first, err := rg.CreatePrivate()
		require.NoError(t, err)
		second, err := rg.CreatePrivate()
		require.NoError(t, err)

		assert.Equal(t, "AAAAAA", first.accessCode)
		assert.Equal(t, "BBBBBB", second.accessCode)
		assert.Same(t, first, rg.FindByCode("aaaaaa"))
		codes.AssertExpectations(t)
	})

	t.Run("Code space exhaustion", func(t *testing.T) {
		t.Parallel()
		codes := &MockUniqueIdGenerator{}
		codes.On("Generate").Return("SAME00")
		rg := newTestRegistry(codes)
		_, err := rg.CreatePrivate()
		require.NoError(t, err)

		_, err = rg.CreatePrivate()

		assert.ErrorIs(t, err, ErrAccessCodeExhausted)
		assert.Equal(t, 1, rg.Len())
	})

	t.Run("Removal frees the code and player index", func(t *testing.T) {
		t.Parallel()
		rg := newTestRegistry(nil)
		room, err := rg.CreatePrivate()
		require.NoError(t, err)
		require.NoError(t, rg.Join(room, newPlayer("a", "a", "", "")))

		rg.Remove(room.id)

		assert.Nil(t, rg.FindByCode(room.accessCode))
		assert.Nil(t, rg.RoomOf("a"))
		assert.Nil(t, rg.Get(room.id))
		assert.Empty(t, rg.Rooms())
	})
}

func TestRegistryMembership(t *testing.T) {
	t.Parallel()
	rg := newTestRegistry(nil)
	room := rg.FindOrCreatePublic()
	require.NoError(t, rg.Join(room, newPlayer("a", "a", "", "")))

	assert.ErrorIs(t, rg.Join(room, newPlayer("a", "a", "", "")), ErrAlreadyInRoom)
	assert.Same(t, room, rg.RoomOf("a"))

	left, p := rg.Leave("a")
	assert.Same(t, room, left)
	assert.Equal(t, "a", p.id)

	left, p = rg.Leave("a")
	assert.Nil(t, left)
	assert.Nil(t, p)
}
