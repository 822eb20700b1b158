package game

import (
	"context"
	"testing"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboardRecordCorrect(t *testing.T) {
	sb := NewScoreboard(&mockUserRepo{}, nil)

	points := sb.RecordCorrect("alice")
	assert.Equal(t, 1, points)
	points = sb.RecordCorrect("alice")
	assert.Equal(t, 2, points)

	rec, ok := sb.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Points)
	assert.Equal(t, 2, rec.CorrectAnswers)
	assert.Equal(t, 2, rec.TotalAnswers)
}

func TestScoreboardRecordIncorrect(t *testing.T) {
	sb := NewScoreboard(&mockUserRepo{}, nil)

	sb.RecordIncorrect("bob")
	sb.RecordIncorrect("bob")

	rec, ok := sb.Lookup("bob")
	require.True(t, ok)
	assert.Equal(t, 0, rec.Points)
	assert.Equal(t, 0, rec.CorrectAnswers)
	assert.Equal(t, 2, rec.TotalAnswers)
	assert.LessOrEqual(t, rec.CorrectAnswers, rec.TotalAnswers)
}

func TestScoreboardSeededFromRepository(t *testing.T) {
	seed := map[string]*domain.UserRecord{
		"alice": {Points: 7, CorrectAnswers: 7, TotalAnswers: 9},
	}
	sb := NewScoreboard(&mockUserRepo{}, seed)

	rec, ok := sb.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, 7, rec.Points)
	assert.Equal(t, "alice", rec.Name, "seed entries get their key as name")

	// The seed map must not alias the live records.
	seed["alice"].Points = 100
	rec, _ = sb.Lookup("alice")
	assert.Equal(t, 7, rec.Points)
}

func TestScoreboardLookupUnknown(t *testing.T) {
	sb := NewScoreboard(&mockUserRepo{}, nil)
	_, ok := sb.Lookup("ghost")
	assert.False(t, ok)
}

func TestScoreboardTop(t *testing.T) {
	sb := NewScoreboard(&mockUserRepo{}, nil)
	for i := 0; i < 3; i++ {
		sb.RecordCorrect("alice")
	}
	sb.RecordCorrect("bob")
	sb.RecordCorrect("carol")

	top := sb.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "alice", top[0].Name)
	assert.Equal(t, "bob", top[1].Name, "ties break by name")

	all := sb.Top(0)
	assert.Len(t, all, 3, "n=0 returns everyone")
}

func TestScoreboardPersistSnapshotsRecords(t *testing.T) {
	repo := &mockUserRepo{}
	sb := NewScoreboard(repo, nil)
	sb.RecordCorrect("alice")

	sb.Persist(context.Background())

	require.Equal(t, 1, repo.getSaveCalls())
	require.Contains(t, repo.last, "alice")
	assert.Equal(t, 1, repo.last["alice"].Points)

	// Saved copies must not alias the live records.
	repo.last["alice"].Points = 99
	rec, _ := sb.Lookup("alice")
	assert.Equal(t, 1, rec.Points)
}
