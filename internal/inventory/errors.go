package inventory

import "fmt"

// InvalidInputError reports a loan request that fails basic validation,
// such as an empty borrower name or a non-positive quantity.
type InvalidInputError struct {
	// Reason describes the violated precondition.
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// InsufficientStockError reports a loan request exceeding the available
// count of the requested variant.
type InsufficientStockError struct {
	// Foil is the requested variant.
	Foil bool
	// Available is the raw availability of that variant at check time.
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s copies available (%d)", variantName(e.Foil), e.Available)
}

// NotFoundError reports a loan lookup that matched nothing.
type NotFoundError struct {
	// What names the missing thing, e.g. "loan".
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

func variantName(foil bool) string {
	if foil {
		return "foil"
	}
	return "non-foil"
}
