package services

// QuoteItem is one row of a quote assembled from already-priced catalog
// items: quantity, unit price, a percentage discount and a derived subtotal.
type QuoteItem struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id,omitempty"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitOfMeasure   string  `json:"unit_of_measure"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Subtotal        float64 `json:"subtotal"`
}

// ItemSubtotal computes quantity * unitPrice * (1 - discountPercent/100).
// The engine does not reject out-of-range discounts: a discount above 100
// yields a negative subtotal and the policy for that sits with the caller.
func ItemSubtotal(quantity, unitPrice, discountPercent float64) float64 {
	return orZero(quantity) * orZero(unitPrice) * (1 - orZero(discountPercent)/100)
}

// QuoteItemList is the ordered item collection of a quote, keyed by ID.
type QuoteItemList struct {
	items []QuoteItem
}

// NewQuoteItemList returns an empty item list.
func NewQuoteItemList() *QuoteItemList {
	return &QuoteItemList{}
}

func (l *QuoteItemList) indexOf(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Add appends an item, recomputing its subtotal from quantity, unit price
// and discount. Adding an ID already in the list is a no-op (first write
// wins) and returns false.
func (l *QuoteItemList) Add(item QuoteItem) bool {
	if l.indexOf(item.ID) >= 0 {
		return false
	}
	item.Subtotal = ItemSubtotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
	l.items = append(l.items, item)
	return true
}

// UpdateQuantity sets an item's quantity and recomputes its subtotal.
// Returns false when the ID is not present. Non-positive quantities are
// rejected at the call site that performs stock validation, not here.
func (l *QuoteItemList) UpdateQuantity(id string, quantity float64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items[i].Quantity = quantity
	l.items[i].Subtotal = ItemSubtotal(quantity, l.items[i].UnitPrice, l.items[i].DiscountPercent)
	return true
}

// Remove deletes an item by ID. Returns false when not present.
func (l *QuoteItemList) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Items returns the items in insertion order as a copy.
func (l *QuoteItemList) Items() []QuoteItem {
	out := make([]QuoteItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *QuoteItemList) Len() int {
	return len(l.items)
}
