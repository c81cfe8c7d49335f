package cart

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetCart(ctx context.Context, cartID string) (*cartRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, cartID string) (*cartRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, amount, tax_amount, delivery_charge
		FROM carts WHERE id = $1
	`, cartID)

	var c cartRow
	err := row.Scan(&c.ID, &c.Amount, &c.TaxAmount, &c.DeliveryCharge)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}
