package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "suguan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testSchedule(userID int64) *domain.Schedule {
	return &domain.Schedule{
		UserID:   userID,
		Date:     "12-15-2025",
		Day:      "Monday",
		Time24:   "14:30",
		Time12:   "02:30 PM",
		Locale:   "Central",
		Role:     "Sugo 1",
		Language: "English",
		Status:   domain.StatusActive,
	}
}

func TestInsertAndGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, testSchedule(7))
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.UserID)
	require.Equal(t, "12-15-2025", got.Date)
	require.Equal(t, "02:30 PM", got.Time12)
	require.Equal(t, domain.StatusActive, got.Status)
	require.False(t, got.CreatedAt.IsZero())
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 3; i++ {
		id, err := repo.Insert(ctx, testSchedule(7))
		require.NoError(t, err)
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusCompareAndSet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, testSchedule(7))
	require.NoError(t, err)

	ok, err := repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusCanceled)
	require.NoError(t, err)
	require.True(t, ok)

	// The losing transition of a race touches zero rows.
	ok, err = repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusFinished)
	require.NoError(t, err)
	require.False(t, ok)

	// No resurrection.
	_, err = repo.UpdateStatus(ctx, id, domain.StatusCanceled, domain.StatusActive)
	require.Error(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCanceled, got.Status)
}

func TestListActiveByUser(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	a, err := repo.Insert(ctx, testSchedule(1))
	require.NoError(t, err)
	b, err := repo.Insert(ctx, testSchedule(1))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, testSchedule(2))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, b, domain.StatusActive, domain.StatusFinished)
	require.NoError(t, err)

	got, err := repo.ListActiveByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, a, got[0].ID)
}

func TestListActiveAllUsers(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testSchedule(1))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, testSchedule(2))
	require.NoError(t, err)
	c, err := repo.Insert(ctx, testSchedule(3))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, c, domain.StatusActive, domain.StatusCanceled)
	require.NoError(t, err)

	got, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestListRecentNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 12; i++ {
		s := testSchedule(9)
		s.Locale = fmt.Sprintf("Locale %d", i)
		id, err := repo.Insert(ctx, s)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := repo.ListRecent(ctx, 9, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 10)
	require.Equal(t, ids[11], got[0].ID)
	require.Equal(t, ids[2], got[9].ID)

	rest, err := repo.ListRecent(ctx, 9, 10, 10)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	require.Equal(t, ids[1], rest[0].ID)
}
