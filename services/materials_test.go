package services

import "testing"

func TestMaterialList_Add(t *testing.T) {
	l := NewMaterialList()

	if !l.Add(CalculatorMaterial{ID: "m1", Name: "Steel", UnitPrice: 12, Quantity: 3}) {
		t.Fatal("first Add returned false")
	}

	materials := l.Materials()
	if len(materials) != 1 {
		t.Fatalf("len = %d, want 1", len(materials))
	}
	if !floatClose(materials[0].Subtotal, 36) {
		t.Errorf("Subtotal = %v, want 36", materials[0].Subtotal)
	}
}

// Adding a material whose ID is already present must not change the
// existing entry's quantity or subtotal.
func TestMaterialList_AddDuplicateIsNoOp(t *testing.T) {
	l := NewMaterialList()
	l.Add(CalculatorMaterial{ID: "m1", Name: "Steel", UnitPrice: 12, Quantity: 3})

	if l.Add(CalculatorMaterial{ID: "m1", Name: "Steel again", UnitPrice: 99, Quantity: 50}) {
		t.Error("duplicate Add returned true")
	}

	materials := l.Materials()
	if len(materials) != 1 {
		t.Fatalf("len = %d, want 1", len(materials))
	}
	if materials[0].Quantity != 3 || !floatClose(materials[0].Subtotal, 36) {
		t.Errorf("existing entry changed: %+v", materials[0])
	}
}

func TestMaterialList_UpdateQuantity(t *testing.T) {
	l := NewMaterialList()
	l.Add(CalculatorMaterial{ID: "m1", UnitPrice: 10, Quantity: 2})

	if !l.UpdateQuantity("m1", 7) {
		t.Fatal("UpdateQuantity returned false for existing material")
	}

	materials := l.Materials()
	if materials[0].Quantity != 7 || !floatClose(materials[0].Subtotal, 70) {
		t.Errorf("after update: %+v", materials[0])
	}

	if l.UpdateQuantity("missing", 1) {
		t.Error("UpdateQuantity returned true for missing material")
	}
}

func TestMaterialList_Remove(t *testing.T) {
	l := NewMaterialList()
	l.Add(CalculatorMaterial{ID: "m1", UnitPrice: 10, Quantity: 1})
	l.Add(CalculatorMaterial{ID: "m2", UnitPrice: 20, Quantity: 1})

	if !l.Remove("m1") {
		t.Fatal("Remove returned false for existing material")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	if l.Materials()[0].ID != "m2" {
		t.Errorf("remaining material = %s, want m2", l.Materials()[0].ID)
	}

	if l.Remove("m1") {
		t.Error("Remove of absent ID returned true")
	}
}

func TestMaterialList_Total(t *testing.T) {
	l := NewMaterialList()
	l.Add(CalculatorMaterial{ID: "m1", UnitPrice: 12.5, Quantity: 4})
	l.Add(CalculatorMaterial{ID: "m2", UnitPrice: 8, Quantity: 2})

	if got := l.Total(); !floatClose(got, 66) {
		t.Errorf("Total = %v, want 66", got)
	}

	l.UpdateQuantity("m2", 0)
	if got := l.Total(); !floatClose(got, 50) {
		t.Errorf("Total after zero quantity = %v, want 50", got)
	}
}
