package domain

import "errors"

// Sentinel errors for the checkout protocol. Business-rule outcomes are
// typed results, not errors; these cover the protocol and lookup failures
// that abort a request.
var (
	ErrProductNotFound        = errors.New("product not found")
	ErrSKUNotFound            = errors.New("sku not found")
	ErrChannelNotFound        = errors.New("payment channel not found")
	ErrChannelUnavailable     = errors.New("payment channel unavailable for this amount")
	ErrInvalidToken           = errors.New("invalid validation token")
	ErrTokenAlreadyUsed       = errors.New("validation token already used")
	ErrTokenExpired           = errors.New("validation token expired")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrPromoNotApplicable     = errors.New("promo not applicable")
	ErrDuplicateInquiry       = errors.New("duplicate inquiry in flight")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAuthenticationRequired = errors.New("channel requires an authenticated user")
)

// Code is the machine-readable error code surfaced in API payloads.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "PRODUCT_NOT_FOUND"
	case errors.Is(err, ErrSKUNotFound):
		return "SKU_NOT_FOUND"
	case errors.Is(err, ErrChannelNotFound):
		return "PAYMENT_CHANNEL_NOT_FOUND"
	case errors.Is(err, ErrChannelUnavailable):
		return "PAYMENT_CHANNEL_UNAVAILABLE"
	case errors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	case errors.Is(err, ErrTokenAlreadyUsed):
		return "TOKEN_ALREADY_USED"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ErrGatewayUnavailable):
		return "PAYMENT_GATEWAY_UNAVAILABLE"
	case errors.Is(err, ErrAuthenticationRequired):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrOrderNotFound):
		return "ORDER_NOT_FOUND"
	}
	var pe *PromoError
	if errors.As(err, &pe) {
		return string(pe.Reason)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "VALIDATION_ERROR"
	}
	return "INTERNAL_ERROR"
}

// PromoError wraps an ineligibility reason when the caller supplied a promo
// code and the engine refuses to price with it silently dropped.
type PromoError struct {
	Reason Reason
}

func (e *PromoError) Error() string { return "promo ineligible: " + string(e.Reason) }

// ValidationError carries per-field input failures for inquiry requests.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
