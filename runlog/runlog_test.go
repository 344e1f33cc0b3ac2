package runlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmaze/runlog"
)

func open(t *testing.T) *runlog.Store {
	t.Helper()
	s, err := runlog.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertGet(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	in := runlog.Record{
		SimID:   runlog.NewSimID(),
		Maze:    "test_maze_01",
		Dim:     12,
		Run:     2,
		Moves:   30,
		Reached: true,
		Optimal: 30,
		Policy:  "planner",
	}
	stored, err := s.Insert(ctx, in)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, stored.ID)
	require.False(t, stored.CreatedAt.IsZero())

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, in.SimID, got.SimID)
	assert.Equal(t, "test_maze_01", got.Maze)
	assert.Equal(t, 12, got.Dim)
	assert.Equal(t, 30, got.Moves)
	assert.True(t, got.Reached)
	assert.True(t, stored.CreatedAt.Equal(got.CreatedAt), "%v vs %v", stored.CreatedAt, got.CreatedAt)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, runlog.ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	base := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)

	for i, m := range []string{"a", "b", "a"} {
		_, err := s.Insert(ctx, runlog.Record{
			Maze:      m,
			Dim:       4,
			Run:       1,
			Moves:     10 + i,
			Policy:    "planner",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{12, 11, 10}, []int{all[0].Moves, all[1].Moves, all[2].Moves})
	assert.Equal(t, all[0].ID, all[0].SimID, "a lone run is its own simulation")

	onlyA, err := s.List(ctx, "a", 1)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, 12, onlyA[0].Moves)
	assert.False(t, onlyA[0].Reached)
}

func TestOpen_Memory(t *testing.T) {
	s, err := runlog.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Insert(context.Background(), runlog.Record{Maze: "m", Policy: "random"})
	require.NoError(t, err)
	recs, err := s.List(context.Background(), "m", 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
