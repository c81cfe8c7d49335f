package cart

import (
	"context"
	"strconv"
)

// Service is the boundary the payment layer sees of the commerce side: it
// only ever asks for the amounts of one cart.
type Service interface {
	GetTotals(ctx context.Context, cartID string) (*Totals, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTotals(ctx context.Context, cartID string) (*Totals, error) {
	if cartID == "" {
		return nil, ErrInvalidCartID
	}

	c, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c.Amount <= 0 {
		return nil, ErrEmptyCart
	}

	total := c.Amount + c.TaxAmount + c.DeliveryCharge

	return &Totals{
		CartID:         c.ID,
		Amount:         formatAmount(c.Amount),
		TaxAmount:      formatAmount(c.TaxAmount),
		DeliveryCharge: formatAmount(c.DeliveryCharge),
		TotalAmount:    formatAmount(total),
	}, nil
}

// formatAmount renders a decimal string without thousands separators. The
// same string flows into the signature and the form, so it must never be
// reformatted downstream.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
