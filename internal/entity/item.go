package domain

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Item is a sellable SKU (a top-up denomination or deposit nominal).
type Item struct {
	Code        string
	Name        string
	UnitPrice   int64
	SectionRef  string
	OrderType   OrderType
	IsAvailable bool
}

func (i Item) Subtotal(quantity int) int64 {
	return i.UnitPrice * int64(quantity)
}

func ValidQuantity(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}
