package document

import (
	"reflect"
	"testing"
)

func TestGet_TopLevel(t *testing.T) {
	doc := Document{"name": "ada", "score": 42}
	v, ok := Get(doc, "name")
	if !ok || v != "ada" {
		t.Fatalf("Get(name) = %v, %v; want ada, true", v, ok)
	}
}

func TestGet_Nested(t *testing.T) {
	doc := Document{"profile": Document{"address": Document{"city": "turin"}}}
	v, ok := Get(doc, "profile.address.city")
	if !ok || v != "turin" {
		t.Fatalf("Get = %v, %v; want turin, true", v, ok)
	}
}

func TestGet_NestedPlainMap(t *testing.T) {
	// Decoders hand back map[string]interface{}, not Document.
	doc := Document{"profile": map[string]interface{}{"city": "turin"}}
	v, ok := Get(doc, "profile.city")
	if !ok || v != "turin" {
		t.Fatalf("Get = %v, %v; want turin, true", v, ok)
	}
}

func TestGet_AbsentIntermediate(t *testing.T) {
	doc := Document{"a": Document{"b": 1}}
	if v, ok := Get(doc, "a.x.y"); ok {
		t.Fatalf("expected absent, got %v", v)
	}
	if v, ok := Get(doc, "missing"); ok {
		t.Fatalf("expected absent, got %v", v)
	}
}

func TestGet_FansIntoSequenceFirstMatchWins(t *testing.T) {
	doc := Document{"orders": []interface{}{
		Document{"sku": nil},
		Document{"other": true},
		Document{"sku": "first"},
		Document{"sku": "second"},
	}}
	v, ok := Get(doc, "orders.sku")
	if !ok || v != "first" {
		t.Fatalf("Get = %v, %v; want first, true", v, ok)
	}
}

func TestGet_FansIntoTypedDocumentSlice(t *testing.T) {
	doc := Document{"orders": []Document{{"lines": []Document{{"qty": 3}}}}}
	v, ok := Get(doc, "orders.lines.qty")
	if !ok || v != 3 {
		t.Fatalf("Get = %v, %v; want 3, true", v, ok)
	}
}

func TestGet_EmptyPath(t *testing.T) {
	doc := Document{"a": 1}
	if _, ok := Get(doc, ""); ok {
		t.Fatal("expected absent for empty path")
	}
	if _, ok := Get(doc, "a..b"); ok {
		t.Fatal("expected absent for path with empty segment")
	}
}

func TestSet_CreatesIntermediates(t *testing.T) {
	doc := Document{}
	Set(doc, "a.b.c", 7)
	v, ok := Get(doc, "a.b.c")
	if !ok || v != 7 {
		t.Fatalf("round trip = %v, %v; want 7, true", v, ok)
	}
}

func TestSet_OverwritesExisting(t *testing.T) {
	doc := Document{"a": Document{"b": 1}}
	Set(doc, "a.b", 2)
	if v, _ := Get(doc, "a.b"); v != 2 {
		t.Fatalf("Get(a.b) = %v, want 2", v)
	}
}

func TestSet_AssignsArrayWholesale(t *testing.T) {
	doc := Document{}
	arr := []interface{}{Document{"x": 1}, Document{"x": 2}}
	Set(doc, "items", arr)
	v, ok := Get(doc, "items")
	if !ok || !reflect.DeepEqual(v, arr) {
		t.Fatalf("Get(items) = %v, want the array wholesale", v)
	}
}

func TestSet_DoesNotFanIntoSequenceIntermediate(t *testing.T) {
	// Get fans into arrays, Set must not. The write is dropped and the
	// existing elements stay untouched.
	doc := Document{"orders": []interface{}{Document{"sku": "a"}}}
	Set(doc, "orders.flag", true)

	if _, ok := Get(doc, "orders.flag"); ok {
		t.Fatal("Set must not write through a sequence intermediate")
	}
	if v, _ := Get(doc, "orders.sku"); v != "a" {
		t.Fatalf("existing element mutated: sku = %v", v)
	}
}

func TestSet_DoesNotOverwriteScalarIntermediate(t *testing.T) {
	doc := Document{"a": 5}
	Set(doc, "a.b", 1)
	if v, _ := Get(doc, "a"); v != 5 {
		t.Fatalf("scalar intermediate clobbered: a = %v", v)
	}
}

func TestDelete_TopLevel(t *testing.T) {
	doc := Document{"secret": "x", "name": "ada"}
	Delete(doc, "secret")
	if _, ok := doc["secret"]; ok {
		t.Fatal("secret still present")
	}
	if doc["name"] != "ada" {
		t.Fatal("unrelated key removed")
	}
}

func TestDelete_Nested(t *testing.T) {
	doc := Document{"profile": Document{"ssn": "123", "city": "turin"}}
	Delete(doc, "profile.ssn")
	if _, ok := Get(doc, "profile.ssn"); ok {
		t.Fatal("nested key still present")
	}
	if v, _ := Get(doc, "profile.city"); v != "turin" {
		t.Fatal("sibling key removed")
	}
}

func TestDelete_RecursesIntoEveryElement(t *testing.T) {
	doc := Document{"orders": []interface{}{
		Document{"price": 10, "sku": "a"},
		Document{"price": 20, "sku": "b"},
	}}
	Delete(doc, "orders.price")
	for i, elem := range doc["orders"].([]interface{}) {
		e := elem.(Document)
		if _, ok := e["price"]; ok {
			t.Fatalf("element %d still has price", i)
		}
		if _, ok := e["sku"]; !ok {
			t.Fatalf("element %d lost sku", i)
		}
	}
}

func TestDelete_AbsentPathIsNoOp(t *testing.T) {
	doc := Document{"a": Document{"b": 1}}
	Delete(doc, "a.x.y")
	Delete(doc, "missing")
	if v, _ := Get(doc, "a.b"); v != 1 {
		t.Fatalf("document changed by absent delete: %v", doc)
	}
}
