package cart

import "errors"

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrInvalidCartID = errors.New("invalid cart id")
	ErrEmptyCart     = errors.New("cart has no payable amount")
)
