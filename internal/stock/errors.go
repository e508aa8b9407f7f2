package stock

import "fmt"

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found with ID: %d", e.ProductID)
}

type ProductInactiveError struct {
	ProductID uint
	Name      string
}

func (e *ProductInactiveError) Error() string {
	return fmt.Sprintf("product %q (ID: %d) is no longer available", e.Name, e.ProductID)
}

type InsufficientStockError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, requested: %d", e.Name, e.Available, e.Requested)
}

type InvalidQuantityError struct {
	ProductID uint
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d: must be at least 1", e.Quantity, e.ProductID)
}
