package promo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/logger"
	redisstore "github.com/enjoypark/companion/internal/store/redis"
)

func newService(t *testing.T) (*Service, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	svc := NewService(redisstore.NewStore(db), logger.New("error", false))
	return svc, mock
}

func promoJSON(t *testing.T, p *domain.PromoCode) string {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return string(data)
}

func activePromo() *domain.PromoCode {
	return &domain.PromoCode{
		Code:            "SUMMER20",
		Description:     "Summer season",
		DiscountPercent: 20,
		ValidFrom:       time.Now().AddDate(0, -1, 0),
		ValidUntil:      time.Now().AddDate(0, 1, 0),
		MaxUses:         100,
		Uses:            3,
	}
}

func TestValidateNormalizesCode(t *testing.T) {
	svc, mock := newService(t)
	mock.ExpectGet(redisstore.PromoKey("SUMMER20")).SetVal(promoJSON(t, activePromo()))

	res := svc.Validate(context.Background(), " summer20 ")
	assert.Equal(t, domain.PromoOK, res.Decision)
	assert.Equal(t, "SUMMER20", res.Code)
	assert.Equal(t, 20, res.DiscountPercent)
}

func TestValidateUnknownCode(t *testing.T) {
	svc, mock := newService(t)
	mock.ExpectGet(redisstore.PromoKey("NOPE")).RedisNil()

	res := svc.Validate(context.Background(), "NOPE")
	assert.Equal(t, domain.PromoUnknown, res.Decision)
	assert.Zero(t, res.DiscountPercent)
}

func TestValidateExpiredCode(t *testing.T) {
	svc, mock := newService(t)
	expired := activePromo()
	expired.ValidUntil = time.Now().AddDate(0, -1, 0)
	mock.ExpectGet(redisstore.PromoKey("SUMMER20")).SetVal(promoJSON(t, expired))

	res := svc.Validate(context.Background(), "SUMMER20")
	assert.Equal(t, domain.PromoExpired, res.Decision)
	assert.Zero(t, res.DiscountPercent, "non-redeemable results carry no discount")
}

func TestRedeemConsumesUse(t *testing.T) {
	svc, mock := newService(t)
	p := activePromo()
	key := redisstore.PromoKey("SUMMER20")

	// Validate, then the watched re-read and the transactional bump.
	mock.ExpectGet(key).SetVal(promoJSON(t, p))
	mock.ExpectWatch(key)
	mock.ExpectGet(key).SetVal(promoJSON(t, p))
	mock.ExpectTxPipeline()
	mock.Regexp().ExpectSet(key, `.*"uses":4.*`, redisstore.DefaultPromoTTL).SetVal("OK")
	mock.ExpectTxPipelineExec()

	res := svc.Redeem(context.Background(), "SUMMER20")
	assert.Equal(t, domain.PromoOK, res.Decision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemLastUseNotDoubleSpent(t *testing.T) {
	svc, mock := newService(t)
	lastUse := activePromo()
	lastUse.Uses = lastUse.MaxUses - 1
	taken := activePromo()
	taken.Uses = taken.MaxUses
	key := redisstore.PromoKey("SUMMER20")

	mock.ExpectGet(key).SetVal(promoJSON(t, lastUse))

	// A concurrent redemption commits between the watched read and
	// EXEC, so the first attempt aborts.
	mock.ExpectWatch(key)
	mock.ExpectGet(key).SetVal(promoJSON(t, lastUse))
	mock.ExpectTxPipeline()
	mock.Regexp().ExpectSet(key, `.*"uses":100.*`, redisstore.DefaultPromoTTL).SetVal("OK")
	mock.ExpectTxPipelineExec().SetErr(redis.TxFailedErr)

	// The retry sees the committed counter and refuses without writing.
	mock.ExpectWatch(key)
	mock.ExpectGet(key).SetVal(promoJSON(t, taken))

	res := svc.Redeem(context.Background(), "SUMMER20")
	assert.Equal(t, domain.PromoExhausted, res.Decision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemRejectedCodeLeavesCounter(t *testing.T) {
	svc, mock := newService(t)
	exhausted := activePromo()
	exhausted.Uses = exhausted.MaxUses
	mock.ExpectGet(redisstore.PromoKey("SUMMER20")).SetVal(promoJSON(t, exhausted))

	res := svc.Redeem(context.Background(), "SUMMER20")
	assert.Equal(t, domain.PromoExhausted, res.Decision)
	assert.NoError(t, mock.ExpectationsWereMet(), "no write should happen for a rejected code")
}
