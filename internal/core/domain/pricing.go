package domain

// Monthly rate per tier, in RWF.
var monthlyRates = map[SubscriptionType]int64{
	TypeBasic:   1000,
	TypePremium: 2500,
	TypeGold:    5000,
	TypeDiamond: 10000,
}

type term struct {
	months   int64
	discount int64 // percent
}

var terms = map[string]term{
	"3 months": {months: 3, discount: 0},
	"6 months": {months: 6, discount: 5},
	"1 year":   {months: 12, discount: 10},
	"2 years":  {months: 24, discount: 15},
	"10 years": {months: 120, discount: 30},
}

// ValidDuration reports whether d is one of the sold terms.
func ValidDuration(d string) bool {
	_, ok := terms[d]
	return ok
}

// SubscriptionAmount returns the price in RWF of plan t held for duration d.
func SubscriptionAmount(t SubscriptionType, d string) (int64, error) {
	rate, ok := monthlyRates[t]
	if !ok {
		return 0, ErrInvalidSubscriptionType
	}
	tm, ok := terms[d]
	if !ok {
		return 0, ErrInvalidDuration
	}
	return rate * tm.months * (100 - tm.discount) / 100, nil
}
