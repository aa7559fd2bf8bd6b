package storage

import (
	"database/sql"
	"fmt"

	"delish/account-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateAddress(addr *domain.Address) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if addr.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, addr.UserID); err != nil {
			return fmt.Errorf("clear default: %w", err)
		}
	}

	// The user's first address becomes the default regardless.
	err = tx.QueryRow(`
		INSERT INTO addresses (user_id, label, line1, line2, city, pincode, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        $8 OR NOT EXISTS(SELECT 1 FROM addresses WHERE user_id = $1))
		RETURNING id, is_default, created_at`,
		addr.UserID, addr.Label, addr.Line1, addr.Line2, addr.City, addr.Pincode, addr.Phone,
		addr.IsDefault).
		Scan(&addr.ID, &addr.IsDefault, &addr.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return tx.Commit()
}

func (r *PostgresRepository) ListAddresses(userID int) ([]domain.Address, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, label, line1, COALESCE(line2, ''), city, pincode,
		       COALESCE(phone, ''), is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(&addr.ID, &addr.UserID, &addr.Label, &addr.Line1, &addr.Line2,
			&addr.City, &addr.Pincode, &addr.Phone, &addr.IsDefault, &addr.CreatedAt); err != nil {
			continue
		}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}

func (r *PostgresRepository) GetAddress(id int) (*domain.Address, error) {
	var addr domain.Address
	err := r.DB.QueryRow(`
		SELECT id, user_id, label, line1, COALESCE(line2, ''), city, pincode,
		       COALESCE(phone, ''), is_default, created_at
		FROM addresses
		WHERE id = $1`, id).
		Scan(&addr.ID, &addr.UserID, &addr.Label, &addr.Line1, &addr.Line2,
			&addr.City, &addr.Pincode, &addr.Phone, &addr.IsDefault, &addr.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &addr, nil
}

func (r *PostgresRepository) UpdateAddress(addr *domain.Address) error {
	result, err := r.DB.Exec(`
		UPDATE addresses
		SET label = $1, line1 = $2, line2 = $3, city = $4, pincode = $5, phone = $6
		WHERE id = $7 AND user_id = $8`,
		addr.Label, addr.Line1, addr.Line2, addr.City, addr.Pincode, addr.Phone,
		addr.ID, addr.UserID)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAddress(userID, id int) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete address: %w", err)
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetDefaultAddress(userID, id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}
	result, err := tx.Exec(`UPDATE addresses SET is_default = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAddressNotFound
	}
	return tx.Commit()
}

func (r *PostgresRepository) RestaurantExists(id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check restaurant: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) AddFavorite(fav *domain.Favorite) error {
	err := r.DB.QueryRow(`
		INSERT INTO favorites (user_id, restaurant_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, restaurant_id) DO NOTHING
		RETURNING id, created_at`,
		fav.UserID, fav.RestaurantID).
		Scan(&fav.ID, &fav.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.ErrDuplicateFavorite
	}
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListFavorites(userID int) ([]domain.Favorite, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, restaurant_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.RestaurantID, &fav.CreatedAt); err != nil {
			continue
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

func (r *PostgresRepository) RemoveFavorite(userID, restaurantID int) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM favorites WHERE user_id = $1 AND restaurant_id = $2`, userID, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}
	return result.RowsAffected()
}
