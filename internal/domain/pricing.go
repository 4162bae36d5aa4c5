package domain

// PriceTable maps ticket tiers to prices in the smallest currency unit.
type PriceTable map[TicketType]int64

// PriceFor returns the tier price and whether the tier is priced at all.
func (p PriceTable) PriceFor(t TicketType) (int64, bool) {
	price, ok := p[t]
	return price, ok
}

// DefaultPriceTable returns the stock tier pricing.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		TicketTypeSolo:  2000,
		TicketTypeGuest: 3000,
	}
}
