package usecase

// Published to RabbitMQ (via the outbox) after a successful commit; the
// fulfillment dispatcher consumes it.
type OrderCommittedMsg struct {
	InvoiceNumber string `json:"invoiceNumber"`
	UserID        string `json:"userId,omitempty"`
	ItemCode      string `json:"itemCode"`
	Quantity      int    `json:"quantity"`
	ChannelCode   string `json:"channelCode"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
}

// Sent by the payment gateway on Kafka once an external payment settles.
type PaymentStatusChangedMsg struct {
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"` // "SUCCESS" | "FAILED"
	Amount        int64  `json:"amount"`
}
