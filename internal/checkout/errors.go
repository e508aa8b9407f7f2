package checkout

import (
	"errors"
	"fmt"

	"github.com/Paphonsan-l/POS-CRUD/internal/stock"
)

// ErrEmptyCart rejects a checkout before any transaction is opened.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutFailedError wraps an infrastructure fault (lost connection, lock
// timeout, write conflict). The transaction has been fully rolled back, so
// the request is safe to retry.
type CheckoutFailedError struct {
	Err error
}

func (e *CheckoutFailedError) Error() string {
	return fmt.Sprintf("checkout failed: %v", e.Err)
}

func (e *CheckoutFailedError) Unwrap() error {
	return e.Err
}

// isValidationError reports whether err belongs to the checkout validation
// taxonomy, as opposed to an infrastructure fault.
func isValidationError(err error) bool {
	var notFound *stock.ProductNotFoundError
	var inactive *stock.ProductInactiveError
	var insufficient *stock.InsufficientStockError
	var invalidQty *stock.InvalidQuantityError

	return errors.Is(err, ErrEmptyCart) ||
		errors.As(err, &notFound) ||
		errors.As(err, &inactive) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &invalidQty)
}
