package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/models"
)

func newTestRepo(t *testing.T) *DefaultOrderRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Single connection: keeps the shared in-memory database alive and
	// serializes access the way a server-side database would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrator().DropTable(&models.OrderModel{}))
	require.NoError(t, db.AutoMigrate(&models.OrderModel{}))
	return NewDefaultOrderRepository(db)
}

func pendingOrder(product, amount string) *domain.Order {
	return &domain.Order{
		OrderToken:  "token-" + product,
		UserID:      5,
		ChatID:      77,
		ProductCode: product,
		Amount:      amount,
		Description: "desc",
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
	}
}

func TestCreateOrderAssignsIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := pendingOrder(domain.ProductWebinar, "2990.00")
	require.NoError(t, repo.CreateOrder(ctx, first))
	require.NotZero(t, first.InvID)

	second := pendingOrder(domain.ProductPro, "990.00")
	require.NoError(t, repo.CreateOrder(ctx, second))
	assert.Greater(t, second.InvID, first.InvID, "inv_id is monotonically assigned")

	got, err := repo.GetOrderByID(ctx, first.InvID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "2990.00", got.Amount)
	assert.Equal(t, first.OrderToken, got.OrderToken)
	assert.Nil(t, got.PaidAt)
}

func TestGetOrderByIDUnknown(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetOrderByID(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownOrder))
}

func TestMarkPaidIfPendingIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder(domain.ProductWebinar, "2990.00")
	require.NoError(t, repo.CreateOrder(ctx, order))

	first, err := repo.MarkPaidIfPending(ctx, order.InvID, `{"OutSum":"2990"}`)
	require.NoError(t, err)
	assert.True(t, first)

	got, err := repo.GetOrderByID(ctx, order.InvID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, `{"OutSum":"2990"}`, got.RawResultParams)
	firstPaidAt := *got.PaidAt

	second, err := repo.MarkPaidIfPending(ctx, order.InvID, `{"OutSum":"9999"}`)
	require.NoError(t, err)
	assert.False(t, second, "second delivery must not transition again")

	got, err = repo.GetOrderByID(ctx, order.InvID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status, "status never reverts")
	assert.Equal(t, firstPaidAt.Unix(), got.PaidAt.Unix(), "paid_at written exactly once")
	assert.Equal(t, `{"OutSum":"2990"}`, got.RawResultParams, "raw params written exactly once")
}

func TestMarkPaidIfPendingUnknownOrder(t *testing.T) {
	repo := newTestRepo(t)
	done, err := repo.MarkPaidIfPending(context.Background(), 999, "{}")
	require.NoError(t, err)
	assert.False(t, done, "unknown order must not create a row")
}

// The transition is a single conditional UPDATE, so two near-simultaneous
// webhook retries cannot both observe pending.
func TestMarkPaidIfPendingConcurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder(domain.ProductGroupVIP, "45990.00")
	require.NoError(t, repo.CreateOrder(ctx, order))

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done, err := repo.MarkPaidIfPending(ctx, order.InvID, "{}")
			assert.NoError(t, err)
			results <- done
		}()
	}
	wg.Wait()
	close(results)

	transitions := 0
	for done := range results {
		if done {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions, "exactly one caller observes the transition")
}

func TestGetPaidOrdersSince(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	groupOrder := pendingOrder(domain.ProductGroupStandard, "24990.00")
	require.NoError(t, repo.CreateOrder(ctx, groupOrder))
	webinarOrder := pendingOrder(domain.ProductWebinar, "2990.00")
	require.NoError(t, repo.CreateOrder(ctx, webinarOrder))
	unpaidGroup := pendingOrder(domain.ProductGroupVIP, "45990.00")
	require.NoError(t, repo.CreateOrder(ctx, unpaidGroup))

	for _, invID := range []int64{groupOrder.InvID, webinarOrder.InvID} {
		done, err := repo.MarkPaidIfPending(ctx, invID, "{}")
		require.NoError(t, err)
		require.True(t, done)
	}

	since := time.Now().Add(-time.Minute)
	paid, err := repo.GetPaidOrdersSince(ctx, domain.GroupProductCodes(), since)
	require.NoError(t, err)
	require.Len(t, paid, 1, "only paid group orders qualify")
	assert.Equal(t, groupOrder.InvID, paid[0].InvID)

	none, err := repo.GetPaidOrdersSince(ctx, domain.GroupProductCodes(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}
