package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjoypark/companion/internal/domain"
)

var addDate = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestGetFavoritesEmpty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	mock.ExpectGet(KeyFavorites).RedisNil()

	favorites, err := store.GetFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, favorites)
	assert.NotNil(t, favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteFirst(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	poi := &domain.PointOfInterest{ID: "A1", Type: domain.POIAttraction, Name: "Dragon Coaster", Rating: 4.7}
	want := []domain.FavoriteItem{domain.NewFavorite(poi, addDate)}

	mock.ExpectGet(KeyFavorites).RedisNil()
	mock.ExpectSet(KeyFavorites, mustJSON(t, want), 0).SetVal("OK")

	favorites, err := store.AddFavorite(context.Background(), poi, addDate)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "A1", favorites[0].ID)
	assert.Equal(t, "2026-08-31", favorites[0].AddedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteIdempotent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	poi := &domain.PointOfInterest{ID: "A1", Type: domain.POIAttraction, Name: "Dragon Coaster"}
	existing := []domain.FavoriteItem{domain.NewFavorite(poi, addDate)}

	// No Set expected: an already-present id leaves the blob untouched.
	mock.ExpectGet(KeyFavorites).SetVal(string(mustJSON(t, existing)))

	favorites, err := store.AddFavorite(context.Background(), poi, addDate.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, existing, favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavorite(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	a := domain.NewFavorite(&domain.PointOfInterest{ID: "A1", Type: domain.POIAttraction, Name: "Dragon Coaster"}, addDate)
	b := domain.NewFavorite(&domain.PointOfInterest{ID: "S1", Type: domain.POIShow, Name: "Parade"}, addDate)

	mock.ExpectGet(KeyFavorites).SetVal(string(mustJSON(t, []domain.FavoriteItem{a, b})))
	mock.ExpectSet(KeyFavorites, mustJSON(t, []domain.FavoriteItem{b}), 0).SetVal("OK")

	favorites, err := store.RemoveFavorite(context.Background(), "A1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "S1", favorites[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteAbsentIsTotal(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	a := domain.NewFavorite(&domain.PointOfInterest{ID: "A1", Type: domain.POIAttraction, Name: "Dragon Coaster"}, addDate)

	// No Set expected: removing an absent id must not rewrite the blob.
	mock.ExpectGet(KeyFavorites).SetVal(string(mustJSON(t, []domain.FavoriteItem{a})))

	favorites, err := store.RemoveFavorite(context.Background(), "nope")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "A1", favorites[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFavorite(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db)

	a := domain.NewFavorite(&domain.PointOfInterest{ID: "A1", Type: domain.POIAttraction, Name: "Dragon Coaster"}, addDate)
	blob := string(mustJSON(t, []domain.FavoriteItem{a}))

	mock.ExpectGet(KeyFavorites).SetVal(blob)
	ok, err := store.IsFavorite(context.Background(), "A1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectGet(KeyFavorites).SetVal(blob)
	ok, err = store.IsFavorite(context.Background(), "S1")
	require.NoError(t, err)
	assert.False(t, ok)
}
