package storage

import (
	"database/sql"
	"fmt"
	"time"

	"delish/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) RestaurantPolicy(id int) (domain.DeliveryPolicy, error) {
	var policy domain.DeliveryPolicy
	err := r.DB.QueryRow(`
		SELECT min_order, delivery_fee
		FROM restaurants
		WHERE id = $1 AND is_active`, id).
		Scan(&policy.MinOrder, &policy.DeliveryFee)
	if err == sql.ErrNoRows {
		return policy, domain.ErrProviderNotFound
	}
	if err != nil {
		return policy, fmt.Errorf("restaurant policy: %w", err)
	}
	return policy, nil
}

func (r *PostgresRepository) TiffinPlan(id int) (*domain.TiffinPlan, error) {
	var plan domain.TiffinPlan
	var discounted decimal.NullDecimal
	err := r.DB.QueryRow(`
		SELECT id, name, price, discounted_price, min_order, delivery_fee, is_active
		FROM tiffin_plans
		WHERE id = $1`, id).
		Scan(&plan.ID, &plan.Name, &plan.Price, &discounted, &plan.MinOrder, &plan.DeliveryFee, &plan.IsActive)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tiffin plan: %w", err)
	}
	if discounted.Valid {
		plan.DiscountedPrice = &discounted.Decimal
	}
	return &plan, nil
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertOrder(tx, order); err != nil {
		return err
	}
	return tx.Commit()
}

// insertOrder writes the order row, its items and its tracking entries inside
// the caller's transaction.
func insertOrder(tx *sql.Tx, order *domain.Order) error {
	err := tx.QueryRow(`
		INSERT INTO orders (
			order_number, user_id, user_email, order_type, restaurant_id, tiffin_plan_id,
			subtotal, delivery_fee, tax, total_amount, delivery_address_id,
			status, payment_method, payment_status, delivery_instructions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.UserID, order.UserEmail, order.OrderType,
		order.RestaurantID, order.TiffinPlanID,
		order.Subtotal, order.DeliveryFee, order.Tax, order.Total, order.DeliveryAddressID,
		order.Status, order.PaymentMethod, order.PaymentStatus, order.DeliveryInstructions).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, name, price, quantity, instructions)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, item.Name, item.Price, item.Quantity, item.Instructions); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	for _, entry := range order.Tracking {
		if _, err := tx.Exec(`
			INSERT INTO order_tracking (order_id, status, description, created_at)
			VALUES ($1, $2, $3, $4)`,
			order.ID, entry.Status, entry.Description, entry.Timestamp); err != nil {
			return fmt.Errorf("insert tracking entry: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) GetOrder(id int) (*domain.Order, error) {
	var order domain.Order
	var restaurantID, tiffinPlanID, riderID sql.NullInt64
	var instructions, userEmail sql.NullString
	var expectedDelivery, deliveredAt sql.NullTime

	err := r.DB.QueryRow(`
		SELECT id, order_number, user_id, COALESCE(user_email, ''), order_type,
		       restaurant_id, tiffin_plan_id,
		       subtotal, delivery_fee, tax, total_amount, delivery_address_id,
		       status, payment_method, payment_status, delivery_instructions,
		       expected_delivery, delivered_at, rider_id, created_at, updated_at
		FROM orders
		WHERE id = $1`, id).
		Scan(&order.ID, &order.OrderNumber, &order.UserID, &userEmail, &order.OrderType,
			&restaurantID, &tiffinPlanID,
			&order.Subtotal, &order.DeliveryFee, &order.Tax, &order.Total, &order.DeliveryAddressID,
			&order.Status, &order.PaymentMethod, &order.PaymentStatus, &instructions,
			&expectedDelivery, &deliveredAt, &riderID, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	order.UserEmail = userEmail.String
	order.DeliveryInstructions = instructions.String
	if restaurantID.Valid {
		v := int(restaurantID.Int64)
		order.RestaurantID = &v
	}
	if tiffinPlanID.Valid {
		v := int(tiffinPlanID.Int64)
		order.TiffinPlanID = &v
	}
	if riderID.Valid {
		v := int(riderID.Int64)
		order.RiderID = &v
	}
	if expectedDelivery.Valid {
		order.ExpectedDelivery = &expectedDelivery.Time
	}
	if deliveredAt.Valid {
		order.DeliveredAt = &deliveredAt.Time
	}

	items, err := r.orderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	tracking, err := r.orderTracking(order.ID)
	if err != nil {
		return nil, err
	}
	order.Tracking = tracking

	return &order, nil
}

func (r *PostgresRepository) orderItems(orderID int) ([]domain.LineItem, error) {
	rows, err := r.DB.Query(`
		SELECT name, price, quantity, COALESCE(instructions, '')
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.Name, &item.Price, &item.Quantity, &item.Instructions); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) orderTracking(orderID int) ([]domain.TrackingEntry, error) {
	rows, err := r.DB.Query(`
		SELECT status, description, created_at
		FROM order_tracking
		WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order tracking: %w", err)
	}
	defer rows.Close()

	entries := []domain.TrackingEntry{}
	for rows.Next() {
		var entry domain.TrackingEntry
		if err := rows.Scan(&entry.Status, &entry.Description, &entry.Timestamp); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *PostgresRepository) ListOrders(userID int, filter domain.OrderFilter) ([]domain.Order, int, error) {
	where := "WHERE user_id = $1"
	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.OrderType != "" {
		args = append(args, filter.OrderType)
		where += fmt.Sprintf(" AND order_type = $%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, order_number, order_type, status, payment_method, payment_status,
		       subtotal, delivery_fee, tax, total_amount, created_at
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		order.UserID = userID
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.OrderType, &order.Status,
			&order.PaymentMethod, &order.PaymentStatus,
			&order.Subtotal, &order.DeliveryFee, &order.Tax, &order.Total, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}

// ApplyTransition performs the compare-and-swap status update and appends the
// tracking entry in one transaction. Two racing transitions cannot both pass
// the status guard.
func (r *PostgresRepository) ApplyTransition(orderID int, from, to domain.OrderStatus, entry domain.TrackingEntry, deliveredAt *time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE orders
		SET status = $1,
		    delivered_at = COALESCE($2, delivered_at),
		    updated_at = NOW()
		WHERE id = $3 AND status = $4`,
		to, deliveredAt, orderID, from)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrStatusConflict
	}

	if _, err := tx.Exec(`
		INSERT INTO order_tracking (order_id, status, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		orderID, entry.Status, entry.Description, entry.Timestamp); err != nil {
		return fmt.Errorf("insert tracking entry: %w", err)
	}

	return tx.Commit()
}

func (r *PostgresRepository) CreateSubscription(sub *domain.Subscription, order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO tiffin_subscriptions (
			user_id, plan_id, start_date, end_date, status,
			delivery_address_id, next_delivery_date, total_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		sub.UserID, sub.PlanID, sub.StartDate, sub.EndDate, sub.Status,
		sub.DeliveryAddressID, sub.NextDeliveryDate, sub.Total).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}

	if err := insertOrder(tx, order); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) ListSubscriptions(userID int) ([]domain.Subscription, error) {
	rows, err := r.DB.Query(`
		SELECT s.id, s.user_id, s.plan_id, COALESCE(p.name, ''), s.start_date, s.end_date,
		       s.status, s.delivery_address_id, s.next_delivery_date, s.total_amount, s.created_at
		FROM tiffin_subscriptions s
		LEFT JOIN tiffin_plans p ON p.id = s.plan_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			continue
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (r *PostgresRepository) GetSubscription(id int) (*domain.Subscription, error) {
	row := r.DB.QueryRow(`
		SELECT s.id, s.user_id, s.plan_id, COALESCE(p.name, ''), s.start_date, s.end_date,
		       s.status, s.delivery_address_id, s.next_delivery_date, s.total_amount, s.created_at
		FROM tiffin_subscriptions s
		LEFT JOIN tiffin_plans p ON p.id = s.plan_id
		WHERE s.id = $1`, id)

	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var sub domain.Subscription
	var nextDelivery sql.NullTime
	err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.PlanName, &sub.StartDate, &sub.EndDate,
		&sub.Status, &sub.DeliveryAddressID, &nextDelivery, &sub.Total, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	if nextDelivery.Valid {
		sub.NextDeliveryDate = &nextDelivery.Time
	}
	return &sub, nil
}

func (r *PostgresRepository) SetSubscriptionStatus(id int, status domain.SubscriptionStatus, nextDelivery *time.Time) error {
	var err error
	if nextDelivery != nil {
		_, err = r.DB.Exec(`UPDATE tiffin_subscriptions SET status = $1, next_delivery_date = $2 WHERE id = $3`,
			status, nextDelivery, id)
	} else {
		_, err = r.DB.Exec(`UPDATE tiffin_subscriptions SET status = $1 WHERE id = $2`, status, id)
	}
	return err
}
