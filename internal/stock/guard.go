package stock

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/Paphonsan-l/POS-CRUD/internal/catalog"
)

// CartLine is one requested (product, quantity) pair. Carts may carry the
// same product on several lines; availability is always checked against the
// summed demand per product.
type CartLine struct {
	ProductID uint
	Quantity  int
}

// Guard answers "can this cart check out right now". It is an advisory
// pre-check over current catalog state: it may race with concurrent
// checkouts, and the settlement transaction re-validates authoritatively
// before any write.
type Guard struct {
	catalog *catalog.Reader
}

func NewGuard(reader *catalog.Reader) *Guard {
	return &Guard{catalog: reader}
}

// Validate checks every cart line against current stock. The first failing
// product aborts the whole cart; there is no partial approval.
func (g *Guard) Validate(ctx context.Context, cart []CartLine) error {
	demand, productIDs, err := AggregateDemand(cart)
	if err != nil {
		return err
	}

	for _, id := range productIDs {
		info, err := g.catalog.Get(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: id}
			}
			return err
		}

		if !info.IsActive {
			return &ProductInactiveError{ProductID: id, Name: info.Name}
		}

		if info.QuantityOnHand < demand[id] {
			return &InsufficientStockError{
				ProductID: id,
				Name:      info.Name,
				Available: info.QuantityOnHand,
				Requested: demand[id],
			}
		}
	}

	return nil
}

// AggregateDemand sums requested quantities per product and returns the
// product ids in ascending order, so callers that lock rows always acquire
// them in a consistent order.
func AggregateDemand(cart []CartLine) (map[uint]int, []uint, error) {
	demand := make(map[uint]int, len(cart))

	for _, line := range cart {
		if line.Quantity < 1 {
			return nil, nil, &InvalidQuantityError{ProductID: line.ProductID, Quantity: line.Quantity}
		}
		demand[line.ProductID] += line.Quantity
	}

	productIDs := make([]uint, 0, len(demand))
	for id := range demand {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	return demand, productIDs, nil
}
