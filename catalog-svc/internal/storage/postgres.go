package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"delish/catalog-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	err := r.DB.QueryRow(`
		INSERT INTO restaurants (
			owner_id, name, description, cuisine_types, address, phone,
			min_order, delivery_fee, delivery_time_min, is_featured, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		rest.OwnerID, rest.Name, rest.Description, pq.Array(rest.CuisineTypes),
		rest.Address, rest.Phone, rest.MinOrder, rest.DeliveryFee,
		rest.DeliveryTimeMin, rest.IsFeatured, rest.IsActive).
		Scan(&rest.ID, &rest.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// restaurantSorts maps the sort keys accepted by the list endpoint to ORDER BY
// clauses. Unknown keys fall back to rating.
var restaurantSorts = map[string]string{
	"rating":        "rating DESC",
	"delivery_time": "delivery_time_min ASC",
	"delivery_fee":  "delivery_fee ASC",
	"newest":        "created_at DESC",
}

func (r *PostgresRepository) ListRestaurants(filter domain.RestaurantFilter) ([]domain.Restaurant, int, error) {
	where := "WHERE is_active"
	args := []interface{}{}
	if filter.Cuisine != "" {
		args = append(args, filter.Cuisine)
		where += fmt.Sprintf(" AND $%d = ANY(cuisine_types)", len(args))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		where += fmt.Sprintf(" AND rating >= $%d", len(args))
	}
	if filter.Featured {
		where += " AND is_featured"
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM restaurants "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	orderBy, ok := restaurantSorts[filter.SortBy]
	if !ok {
		orderBy = restaurantSorts["rating"]
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, owner_id, name, COALESCE(description, ''), cuisine_types,
		       COALESCE(address, ''), COALESCE(phone, ''), COALESCE(image_url, ''),
		       rating, review_count, min_order, delivery_fee, delivery_time_min,
		       is_featured, is_active, created_at
		FROM restaurants
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, orderBy, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			continue
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, total, nil
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	row := r.DB.QueryRow(`
		SELECT id, owner_id, name, COALESCE(description, ''), cuisine_types,
		       COALESCE(address, ''), COALESCE(phone, ''), COALESCE(image_url, ''),
		       rating, review_count, min_order, delivery_fee, delivery_time_min,
		       is_featured, is_active, created_at
		FROM restaurants
		WHERE id = $1`, id)

	rest, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return rest, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var cuisines pq.StringArray
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Description, &cuisines,
		&rest.Address, &rest.Phone, &rest.ImageURL,
		&rest.Rating, &rest.ReviewCount, &rest.MinOrder, &rest.DeliveryFee,
		&rest.DeliveryTimeMin, &rest.IsFeatured, &rest.IsActive, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	rest.CuisineTypes = cuisines
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	err := r.DB.QueryRow(`
		UPDATE restaurants
		SET name = $1, description = $2, cuisine_types = $3, address = $4, phone = $5,
		    min_order = $6, delivery_fee = $7, delivery_time_min = $8, is_featured = $9,
		    is_active = $10
		WHERE id = $11
		RETURNING created_at`,
		rest.Name, rest.Description, pq.Array(rest.CuisineTypes), rest.Address, rest.Phone,
		rest.MinOrder, rest.DeliveryFee, rest.DeliveryTimeMin, rest.IsFeatured,
		rest.IsActive, rest.ID).
		Scan(&rest.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.ErrRestaurantNotFound
	}
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateRestaurantImage(id int, imageURL string) error {
	result, err := r.DB.Exec(`UPDATE restaurants SET image_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return fmt.Errorf("update restaurant image: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *PostgresRepository) ListMenu(restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), COALESCE(category, ''),
		       price, is_veg, COALESCE(image_url, ''), is_available, created_at
		FROM menu_items
		WHERE restaurant_id = $1 AND is_available
		ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Category, &item.Price, &item.IsVeg, &item.ImageURL,
			&item.IsAvailable, &item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) CreateMenuItem(item *domain.MenuItem) error {
	err := r.DB.QueryRow(`
		INSERT INTO menu_items (restaurant_id, name, description, category, price, is_veg, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		item.RestaurantID, item.Name, item.Description, item.Category,
		item.Price, item.IsVeg, item.ImageURL, item.IsAvailable).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateMenuItem(item *domain.MenuItem) error {
	result, err := r.DB.Exec(`
		UPDATE menu_items
		SET name = $1, description = $2, category = $3, price = $4, is_veg = $5, is_available = $6
		WHERE id = $7 AND restaurant_id = $8`,
		item.Name, item.Description, item.Category, item.Price, item.IsVeg,
		item.IsAvailable, item.ID, item.RestaurantID)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMenuItem(restaurantID, itemID int) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`, itemID, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("delete menu item: %w", err)
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateTiffinPlan(plan *domain.TiffinPlan) error {
	var discounted decimal.NullDecimal
	if plan.DiscountedPrice != nil {
		discounted = decimal.NullDecimal{Decimal: *plan.DiscountedPrice, Valid: true}
	}
	err := r.DB.QueryRow(`
		INSERT INTO tiffin_plans (
			provider_id, name, description, meal_type, duration_days, meals_per_day,
			price, discounted_price, min_order, delivery_fee, image_url, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		plan.ProviderID, plan.Name, plan.Description, plan.MealType, plan.DurationDays,
		plan.MealsPerDay, plan.Price, discounted, plan.MinOrder, plan.DeliveryFee,
		plan.ImageURL, plan.IsActive).
		Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tiffin plan: %w", err)
	}
	return nil
}

var tiffinPlanSorts = map[string]string{
	"price_low":  "COALESCE(discounted_price, price) ASC",
	"price_high": "COALESCE(discounted_price, price) DESC",
	"newest":     "created_at DESC",
}

func (r *PostgresRepository) ListTiffinPlans(filter domain.TiffinPlanFilter) ([]domain.TiffinPlan, int, error) {
	where := "WHERE is_active"
	args := []interface{}{}
	if filter.MealType != "" {
		args = append(args, filter.MealType)
		where += fmt.Sprintf(" AND meal_type = $%d", len(args))
	}
	if filter.Duration > 0 {
		args = append(args, filter.Duration)
		where += fmt.Sprintf(" AND duration_days = $%d", len(args))
	}
	if filter.MaxPrice.IsPositive() {
		args = append(args, filter.MaxPrice)
		where += fmt.Sprintf(" AND COALESCE(discounted_price, price) <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM tiffin_plans "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tiffin plans: %w", err)
	}

	orderBy, ok := tiffinPlanSorts[filter.SortBy]
	if !ok {
		orderBy = tiffinPlanSorts["newest"]
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT id, provider_id, name, COALESCE(description, ''), meal_type, duration_days,
		       meals_per_day, price, discounted_price, min_order, delivery_fee,
		       COALESCE(image_url, ''), is_active, created_at
		FROM tiffin_plans
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, orderBy, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tiffin plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.TiffinPlan{}
	for rows.Next() {
		plan, err := scanTiffinPlan(rows)
		if err != nil {
			continue
		}
		plans = append(plans, *plan)
	}
	return plans, total, nil
}

func (r *PostgresRepository) GetTiffinPlan(id int) (*domain.TiffinPlan, error) {
	row := r.DB.QueryRow(`
		SELECT id, provider_id, name, COALESCE(description, ''), meal_type, duration_days,
		       meals_per_day, price, discounted_price, min_order, delivery_fee,
		       COALESCE(image_url, ''), is_active, created_at
		FROM tiffin_plans
		WHERE id = $1`, id)

	plan, err := scanTiffinPlan(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tiffin plan: %w", err)
	}
	return plan, nil
}

func scanTiffinPlan(row rowScanner) (*domain.TiffinPlan, error) {
	var plan domain.TiffinPlan
	var discounted decimal.NullDecimal
	err := row.Scan(&plan.ID, &plan.ProviderID, &plan.Name, &plan.Description, &plan.MealType,
		&plan.DurationDays, &plan.MealsPerDay, &plan.Price, &discounted,
		&plan.MinOrder, &plan.DeliveryFee, &plan.ImageURL, &plan.IsActive, &plan.CreatedAt)
	if err != nil {
		return nil, err
	}
	if discounted.Valid {
		plan.DiscountedPrice = &discounted.Decimal
	}
	return &plan, nil
}

func (r *PostgresRepository) HasDeliveredOrder(userID, restaurantID, orderID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM orders
			WHERE id = $1 AND user_id = $2 AND restaurant_id = $3 AND status = 'delivered'
		)`, orderID, userID, restaurantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check delivered order: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) HasReview(userID, orderID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND order_id = $2)`,
		userID, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) InsertReview(review *domain.Review) error {
	err := r.DB.QueryRow(`
		INSERT INTO reviews (restaurant_id, user_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		review.RestaurantID, review.UserID, review.OrderID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListReviews(restaurantID int) ([]domain.Review, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, user_id, order_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.RestaurantID, &review.UserID, &review.OrderID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// RecomputeRating refreshes the denormalized rating columns from the reviews
// table and returns the new aggregate.
func (r *PostgresRepository) RecomputeRating(restaurantID int) (domain.RatingSummary, error) {
	summary := domain.RatingSummary{RestaurantID: restaurantID}
	err := r.DB.QueryRow(`
		UPDATE restaurants
		SET rating = sub.avg_rating, review_count = sub.cnt
		FROM (
			SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0) AS avg_rating, COUNT(*) AS cnt
			FROM reviews
			WHERE restaurant_id = $1
		) sub
		WHERE id = $1
		RETURNING sub.avg_rating, sub.cnt`, restaurantID).
		Scan(&summary.Average, &summary.Count)
	if err != nil {
		return summary, fmt.Errorf("recompute rating: %w", err)
	}
	return summary, nil
}
