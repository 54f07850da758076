/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"jacobin/classloader"
	"jacobin/types"
)

func testClassWithFields(fields ...*classloader.Field) *classloader.Class {
	c := &classloader.Class{}
	c.FieldLayout = fields
	return c
}

func TestNewObjectZeroesFields(t *testing.T) {
	c := testClassWithFields(
		&classloader.Field{Name: "myInt", FieldType: types.FieldType{Kind: types.KindInt}},
		&classloader.Field{Name: "myLong", FieldType: types.FieldType{Kind: types.KindLong}},
		&classloader.Field{Name: "myRef", FieldType: types.FieldType{Kind: types.KindClass, ClassName: "java/lang/Object"}},
	)
	obj := NewObject(c)

	if v, ok := obj.GetField("myInt"); !ok || v.Int() != 0 {
		t.Errorf("myInt default = %v, want Int(0)", v)
	}
	if v, ok := obj.GetField("myLong"); !ok || v.Tag() != types.Long || v.Long() != 0 {
		t.Errorf("myLong default = %v, want Long(0)", v)
	}
	if v, ok := obj.GetField("myRef"); !ok || !v.IsNull() {
		t.Errorf("myRef default = %v, want null reference", v)
	}
}

func TestObjectSetGetField(t *testing.T) {
	c := testClassWithFields(&classloader.Field{Name: "x", FieldType: types.FieldType{Kind: types.KindInt}})
	obj := NewObject(c)

	if !obj.SetField("x", types.IntVal(42)) {
		t.Fatalf("SetField(x) failed")
	}
	v, ok := obj.GetField("x")
	if !ok || v.Int() != 42 {
		t.Errorf("GetField(x) = %v, ok=%v; want 42, true", v, ok)
	}
}

func TestObjectUnknownField(t *testing.T) {
	c := testClassWithFields()
	obj := NewObject(c)
	if _, ok := obj.GetField("nope"); ok {
		t.Errorf("GetField on an unknown name should report ok=false")
	}
	if obj.SetField("nope", types.IntVal(1)) {
		t.Errorf("SetField on an unknown name should report false")
	}
}

func TestArrayGetSetBounds(t *testing.T) {
	a := NewArray(types.FieldType{Kind: types.KindInt}, 3)
	if a.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", a.Length())
	}
	if !a.Set(1, types.IntVal(99)) {
		t.Fatalf("Set(1) failed")
	}
	v, ok := a.Get(1)
	if !ok || v.Int() != 99 {
		t.Errorf("Get(1) = %v, ok=%v; want 99, true", v, ok)
	}
	if a.Set(5, types.IntVal(1)) {
		t.Errorf("Set out of bounds should fail")
	}
	if _, ok := a.Get(-1); ok {
		t.Errorf("Get(-1) should fail")
	}
}

func TestByteArrayRoundTrip(t *testing.T) {
	a := ByteArrayFromGoString("hello")
	if got := GoStringFromByteArray(a); got != "hello" {
		t.Errorf("round-trip = %q, want hello", got)
	}
}

func TestByteArrayEquals(t *testing.T) {
	a := ByteArrayFromGoString("Foo")
	b := ByteArrayFromGoString("Foo")
	c := ByteArrayFromGoString("Bar")
	if !ByteArrayEquals(a, b) {
		t.Errorf("expected equal byte arrays to compare equal")
	}
	if ByteArrayEquals(a, c) {
		t.Errorf("expected different byte arrays to compare unequal")
	}
	if !ByteArrayEqualsIgnoreCase(a, ByteArrayFromGoString("FOO")) {
		t.Errorf("expected case-insensitive equality")
	}
}
