package repository

import (
	"database/sql"
	"fmt"

	"pawhaven/internal/entities"
)

type WishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(database *sql.DB) *WishlistRepository {
	return &WishlistRepository{DB: database}
}

func (r *WishlistRepository) AddItem(userID int, itemType string, itemID int) error {
	_, err := r.DB.Exec(`
		INSERT INTO wishlist_items (user_id, item_type, item_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, item_type, item_id) DO NOTHING`,
		userID, itemType, itemID)
	return err
}

func (r *WishlistRepository) RemoveItem(userID int, itemType string, itemID int) error {
	_, err := r.DB.Exec(
		`DELETE FROM wishlist_items WHERE user_id = $1 AND item_type = $2 AND item_id = $3`,
		userID, itemType, itemID)
	return err
}

// ListItems hydrates each saved entry with the pet or product it points at.
func (r *WishlistRepository) ListItems(userID int) ([]entities.WishlistItemResponse, error) {
	query := `
		SELECT w.id, w.item_type, w.item_id,
		       COALESCE(p.name, pr.name, '') AS name,
		       COALESCE(p.photo_url, pr.photo_url, '') AS photo_url
		FROM wishlist_items w
		LEFT JOIN pets p ON w.item_type = 'pet' AND w.item_id = p.id
		LEFT JOIN products pr ON w.item_type = 'product' AND w.item_id = pr.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing wishlist: %w", err)
	}
	defer rows.Close()

	var items []entities.WishlistItemResponse
	for rows.Next() {
		var it entities.WishlistItemResponse
		if err := rows.Scan(&it.ID, &it.ItemType, &it.ItemID, &it.Name, &it.PhotoURL); err != nil {
			return nil, fmt.Errorf("error scanning wishlist item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating wishlist rows: %w", err)
	}
	return items, nil
}
