package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
// Item removal on cart deletion relies on the ON DELETE CASCADE constraint.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// CreateCart inserts a cart and assigns its id.
func (r *cartRepository) CreateCart(ctx context.Context, cart *model.ShoppingCart) error {
	query := `
		INSERT INTO shopping_carts (name, address, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		cart.Name,
		cart.Address,
	).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Int64("cart_id", cart.ID).Msg("cart created")
	return nil
}

// GetCart retrieves a cart by its id.
func (r *cartRepository) GetCart(ctx context.Context, id int64) (*model.ShoppingCart, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM shopping_carts
		WHERE id = $1
	`

	var cart model.ShoppingCart
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&cart.ID, &cart.Name, &cart.Address, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("cart_id", id).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &cart, nil
}

// DeleteCart removes a cart; its items cascade.
func (r *cartRepository) DeleteCart(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shopping_carts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("cart_id", id).Msg("cart not found for delete")
		return model.ErrCartNotFound
	}

	return nil
}

// AddItem inserts a cart item and assigns its id.
func (r *cartRepository) AddItem(ctx context.Context, item *model.ShoppingCartItem) error {
	query := `
		INSERT INTO shopping_cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		item.CartID,
		item.ProductID,
		item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("cart_id", item.CartID).
			Int64("product_id", item.ProductID).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Int64("cart_id", item.CartID).
		Int64("item_id", item.ID).
		Msg("cart item added")

	return nil
}

// ListItems retrieves all items belonging to a cart, ordered by id.
func (r *cartRepository) ListItems(ctx context.Context, cartID int64) ([]model.ShoppingCartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity
		FROM shopping_cart_items
		WHERE cart_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", cartID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingCartItem
	for rows.Next() {
		var item model.ShoppingCartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// DeleteItem removes a single item from a cart.
func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM shopping_cart_items WHERE cart_id = $1 AND id = $2`,
		cartID, itemID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("cart_id", cartID).
			Int64("item_id", itemID).
			Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Int64("cart_id", cartID).
			Int64("item_id", itemID).
			Msg("cart item not found for delete")
		return model.ErrCartItemNotFound
	}

	return nil
}
