package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/index"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

type catalogSourceFunc func(ctx context.Context) ([]domain.PointOfInterest, error)

func (f catalogSourceFunc) All(ctx context.Context) ([]domain.PointOfInterest, error) {
	return f(ctx)
}

func TestReloadUpdatesIndexAndMirror(t *testing.T) {
	db, mock := redismock.NewClientMock()
	idx := index.NewMemoryIndex()

	pois := []domain.PointOfInterest{
		{ID: "A1", Name: "Dragon Coaster", Type: domain.POIAttraction},
	}
	source := catalogSourceFunc(func(ctx context.Context) ([]domain.PointOfInterest, error) {
		return pois, nil
	})

	data, err := json.Marshal(&pois[0])
	require.NoError(t, err)
	mock.ExpectSet(redisstore.POIKey("A1"), data, redisstore.DefaultCatalogTTL).SetVal("OK")
	mock.ExpectSAdd(redisstore.KeyAllPOIs, "A1").SetVal(1)

	cr := NewCatalogReloader(source, redisstore.NewStore(db), idx, testLogger(), time.Hour, nil)
	require.NoError(t, cr.Reload(context.Background()))

	assert.Equal(t, 1, idx.Count())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReloadFailureLeavesIndex(t *testing.T) {
	idx := index.NewMemoryIndex()
	idx.UpdateAll([]domain.PointOfInterest{{ID: "A1", Name: "Dragon Coaster", Type: domain.POIAttraction}})

	source := catalogSourceFunc(func(ctx context.Context) ([]domain.PointOfInterest, error) {
		return nil, errors.New("backend down")
	})

	cr := NewCatalogReloader(source, nil, idx, testLogger(), time.Hour, nil)
	err := cr.Reload(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, idx.Count(), "failed reload must not clear the index")
}

func TestSyncFromMirrorSeedsIndex(t *testing.T) {
	db, mock := redismock.NewClientMock()
	idx := index.NewMemoryIndex()

	poi := domain.PointOfInterest{ID: "A1", Name: "Dragon Coaster", Type: domain.POIAttraction}
	data, err := json.Marshal(&poi)
	require.NoError(t, err)

	mock.ExpectSMembers(redisstore.KeyAllPOIs).SetVal([]string{"A1"})
	mock.ExpectGet(redisstore.POIKey("A1")).SetVal(string(data))

	cr := NewCatalogReloader(nil, redisstore.NewStore(db), idx, testLogger(), time.Hour, nil)
	cr.syncFromMirror(context.Background())

	assert.Equal(t, 1, idx.Count())
}
