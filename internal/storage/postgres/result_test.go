package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-games/dicewalk/internal/storage/postgres"
	"github.com/arcadia-games/dicewalk/internal/testutil"
)

func sampleResult() postgres.GameResult {
	return postgres.GameResult{
		MapWidth:       10,
		MapHeight:      10,
		Players:        3,
		ItemDensity:    0.3,
		TravelDistance: 5,
		Ranking:        []int{2, 0, 1},
		Turns:          17,
	}
}

func TestResultRepository_RecordAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewResultRepository(pc.RawPool)
	ctx := context.Background()

	stored, err := repo.Record(ctx, sampleResult())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, stored.ID, "a zero ID gets replaced")
	assert.False(t, stored.CreatedAt.IsZero())

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, 10, got.MapWidth)
	assert.Equal(t, 3, got.Players)
	assert.InDelta(t, 0.3, got.ItemDensity, 1e-9)
	assert.Equal(t, []int{2, 0, 1}, got.Ranking)
	assert.Equal(t, 17, got.Turns)
}

func TestResultRepository_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewResultRepository(pc.RawPool)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrResultNotFound)
}

func TestResultRepository_RecordRejectsBadRanking(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewResultRepository(pc.RawPool)

	bad := sampleResult()
	bad.Ranking = []int{0, 1}
	_, err := repo.Record(context.Background(), bad)
	assert.Error(t, err, "a ranking must cover every player")
}

func TestResultRepository_Recent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	repo := postgres.NewResultRepository(pc.RawPool)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r := sampleResult()
		r.Turns = 10 + i
		stored, err := repo.Record(ctx, r)
		require.NoError(t, err)
		ids = append(ids, stored.ID)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, r := range recent {
		assert.Len(t, r.Ranking, r.Players)
	}

	all, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = repo.Recent(ctx, 0)
	assert.Error(t, err)
}
