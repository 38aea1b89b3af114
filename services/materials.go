package services

// MaterialList is the ordered set of material lines selected in the
// cost-based calculator. IDs are unique within the list; uniqueness is
// enforced here, at the point of mutation, not by callers.
type MaterialList struct {
	materials []CalculatorMaterial
}

// NewMaterialList returns an empty material list.
func NewMaterialList() *MaterialList {
	return &MaterialList{}
}

func (l *MaterialList) indexOf(id string) int {
	for i, m := range l.materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a material line. Adding an ID that is already present is a
// no-op (first write wins) and returns false; the existing entry keeps its
// quantity and subtotal. The stored subtotal is recomputed from unit price
// and quantity on insert.
func (l *MaterialList) Add(m CalculatorMaterial) bool {
	if l.indexOf(m.ID) >= 0 {
		return false
	}
	m.Subtotal = m.UnitPrice * m.Quantity
	l.materials = append(l.materials, m)
	return true
}

// UpdateQuantity sets a material's quantity and recomputes its subtotal
// immediately. Returns false when the ID is not present. Quantity range
// checks (stock availability) happen at the call site.
func (l *MaterialList) UpdateQuantity(id string, quantity float64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.materials[i].Quantity = quantity
	l.materials[i].Subtotal = l.materials[i].UnitPrice * quantity
	return true
}

// Remove deletes a material line by ID. Returns false when not present.
func (l *MaterialList) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.materials = append(l.materials[:i], l.materials[i+1:]...)
	return true
}

// Materials returns the lines in insertion order. The slice is a copy;
// mutating it does not affect the list.
func (l *MaterialList) Materials() []CalculatorMaterial {
	out := make([]CalculatorMaterial, len(l.materials))
	copy(out, l.materials)
	return out
}

// Total sums unitPrice * quantity over the list.
func (l *MaterialList) Total() float64 {
	return MaterialsTotal(l.materials)
}

// Len returns the number of material lines.
func (l *MaterialList) Len() int {
	return len(l.materials)
}
