package cart

// Error messages returned to shoppers.
const (
	ErrMsgProductIncomplete = "Product data is incomplete."
	ErrMsgCartNotFound      = "Cart not found."
	ErrMsgItemNotInCart     = "Item not in cart."
)

// ValidationError is a recoverable rejection of a cart command. The cart is untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
