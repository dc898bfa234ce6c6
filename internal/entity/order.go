package domain

import "time"

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// Order is a committed checkout. Its breakdown is the one frozen into the
// validation token at inquiry time; commit never reprices.
type Order struct {
	ID            string
	InvoiceNumber string
	UserID        string
	DeviceID      string
	IPAddress     string
	ItemCode      string
	Quantity      int
	ChannelCode   string
	PromoCode     string
	Phone         string
	Email         string
	Region        string
	Breakdown     PriceBreakdown
	Status        Status
	TokenID       string
	CreatedAt     time.Time
}
