package game

import (
	"testing"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertCmpEq(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		assert.Fail(t, "mismatch (-want +got):\n"+diff)
	}
}

func TestMatchOutcomes(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	room := newRoom("room-1", "", false, 5, 5)
	for _, p := range []*Player{
		{id: "c1", name: "ann", userId: "u1", score: 300},
		{id: "c2", name: "ben", userId: "u2", score: 300},
		{id: "c3", name: "guest", score: 500},
		{id: "c4", name: "cat", userId: "u3", score: 100},
	} {
		require.NoError(t, room.addPlayer(p))
	}

	got := matchOutcomes(room, at)

	outcome := func(subject, opponent, name string, subjectScore, opponentScore int, result domain.MatchResult) domain.MatchOutcome {
		return domain.MatchOutcome{
			SubjectUserId: subject, OpponentUserId: opponent, OpponentName: name,
			SubjectScore: subjectScore, OpponentScore: opponentScore,
			Result: result, Timestamp: at, RoomId: "room-1",
		}
	}
	want := []domain.MatchOutcome{
		outcome("u1", "u2", "ben", 300, 300, domain.MatchDraw),
		outcome("u1", "u3", "cat", 300, 100, domain.MatchWin),
		outcome("u2", "u1", "ann", 300, 300, domain.MatchDraw),
		outcome("u2", "u3", "cat", 300, 100, domain.MatchWin),
		outcome("u3", "u1", "ann", 100, 300, domain.MatchLoss),
		outcome("u3", "u2", "ben", 100, 300, domain.MatchLoss),
	}
	AssertCmpEq(t, want, got, cmpopts.SortSlices(func(a, b domain.MatchOutcome) bool {
		return a.SubjectUserId+a.OpponentUserId < b.SubjectUserId+b.OpponentUserId
	}))
}

func TestMatchOutcomesSkipsDuplicateIdentity(t *testing.T) {
	t.Parallel()
	room := newRoom("room-1", "", false, 5, 5)
	require.NoError(t, room.addPlayer(&Player{id: "c1", name: "tab one", userId: "u1"}))
	require.NoError(t, room.addPlayer(&Player{id: "c2", name: "tab two", userId: "u1"}))

	assert.Empty(t, matchOutcomes(room, time.Now()))
}

func TestGameSummary(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	room := newRoom("room-1", "ABC123", true, 5, 5)
	room.round = 5
	require.NoError(t, room.addPlayer(&Player{id: "c1", name: "ann", userId: "u1", score: 250}))
	require.NoError(t, room.addPlayer(&Player{id: "c2", name: "guest", score: 75}))

	AssertCmpEq(t, domain.GameSummary{
		RoomId:     "room-1",
		Private:    true,
		Rounds:     5,
		FinishedAt: at,
		Scores: []domain.FinalScore{
			{PlayerId: "c1", UserId: "u1", Name: "ann", Score: 250},
			{PlayerId: "c2", Name: "guest", Score: 75},
		},
	}, gameSummary(room, at))
}
