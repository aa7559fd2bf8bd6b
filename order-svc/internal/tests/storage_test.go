package tests

import (
	"testing"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mockDB
}

func TestRestaurantPolicy(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	mockDB.ExpectQuery(`SELECT min_order, delivery_fee`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"min_order", "delivery_fee"}).AddRow("150.00", "20.00"))

	policy, err := repo.RestaurantPolicy(7)
	assert.NoError(t, err)
	assert.True(t, policy.MinOrder.Equal(money("150")))
	assert.True(t, policy.DeliveryFee.Equal(money("20")))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRestaurantPolicy_NotFound(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	mockDB.ExpectQuery(`SELECT min_order, delivery_fee`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"min_order", "delivery_fee"}))

	_, err := repo.RestaurantPolicy(7)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestCreateOrder_Transaction(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	now := time.Now()
	order := &domain.Order{
		OrderNumber:       "ORD-1700000000000-abcd1234",
		UserID:            42,
		OrderType:         domain.OrderTypeRestaurant,
		Subtotal:          money("200"),
		DeliveryFee:       money("20"),
		Tax:               money("10"),
		Total:             money("230"),
		DeliveryAddressID: 3,
		Status:            domain.StatusPending,
		PaymentMethod:     domain.PaymentCard,
		PaymentStatus:     domain.PaymentStatusPending,
		Items: []domain.LineItem{
			{Name: "Paneer Tikka", Price: money("100"), Quantity: 2},
		},
		Tracking: []domain.TrackingEntry{
			{Status: domain.StatusPending, Description: "Order placed successfully", Timestamp: now},
		},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(101, now, now))
	mockDB.ExpectExec(`INSERT INTO order_items`).
		WithArgs(101, "Paneer Tikka", sqlmock.AnyArg(), 2, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectExec(`INSERT INTO order_tracking`).
		WithArgs(101, "pending", "Order placed successfully", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()

	err := repo.CreateOrder(order)
	assert.NoError(t, err)
	assert.Equal(t, 101, order.ID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestApplyTransition(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	now := time.Now()
	entry := domain.TrackingEntry{Status: domain.StatusConfirmed, Description: "Order confirmed by restaurant", Timestamp: now}

	mockDB.ExpectBegin()
	mockDB.ExpectExec(`UPDATE orders`).
		WithArgs("confirmed", nil, 55, "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(`INSERT INTO order_tracking`).
		WithArgs(55, "confirmed", "Order confirmed by restaurant", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()

	err := repo.ApplyTransition(55, domain.StatusPending, domain.StatusConfirmed, entry, nil)
	assert.NoError(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestApplyTransition_StatusGuard(t *testing.T) {
	// The UPDATE is guarded by the expected prior status; zero affected rows
	// means another writer got there first and the transaction rolls back
	// with no tracking entry written.
	repo, mockDB := newMockRepo(t)

	entry := domain.TrackingEntry{Status: domain.StatusConfirmed, Description: "Order confirmed by restaurant", Timestamp: time.Now()}

	mockDB.ExpectBegin()
	mockDB.ExpectExec(`UPDATE orders`).
		WithArgs("confirmed", nil, 55, "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectRollback()

	err := repo.ApplyTransition(55, domain.StatusPending, domain.StatusConfirmed, entry, nil)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	mockDB.ExpectQuery(`SELECT (.+) FROM orders`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetOrder(999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetSubscription_NotFound(t *testing.T) {
	repo, mockDB := newMockRepo(t)

	mockDB.ExpectQuery(`SELECT (.+) FROM tiffin_subscriptions`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetSubscription(999)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}
