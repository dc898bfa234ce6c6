package domain

// Amounts are whole currency units (IDR), always non-negative.
// Percentage math is done in basis points so channel fees like 0.7%
// stay exact; rounding is half-up.

const bpsDenominator = 10000

// PercentOf returns amount*bps/10000 rounded half-up.
func PercentOf(amount, bps int64) int64 {
	if amount <= 0 || bps <= 0 {
		return 0
	}
	return (amount*bps + bpsDenominator/2) / bpsDenominator
}

func MinAmount(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
