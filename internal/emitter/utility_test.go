package emitter_test

import (
	"testing"
)

const baseSrc = "interface T { a: string; b?: number; c: boolean }\n"

func TestPartialAndRequired(t *testing.T) {
	s := emit(t, baseSrc+"type A = Partial<T>", plain("A"))
	if len(s.Required) != 0 {
		t.Errorf("Partial required = %v", s.Required)
	}
	if s.Properties.Len() != 3 {
		t.Errorf("Partial properties = %v", s.Properties.Keys())
	}

	s = emit(t, baseSrc+"type A = Required<T>", plain("A"))
	wantRequired(t, s, "a", "b", "c")
}

// Pick/Omit duality: Pick keeps exactly K, Omit keeps exactly props ∖ K.
func TestPickOmitDuality(t *testing.T) {
	pick := emit(t, baseSrc+`type A = Pick<T, "a" | "c">`, plain("A"))
	if keys := pick.Properties.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("Pick keys = %v", keys)
	}

	omit := emit(t, baseSrc+`type A = Omit<T, "a" | "c">`, plain("A"))
	if keys := omit.Properties.Keys(); len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("Omit keys = %v", keys)
	}
}

func TestPickSingleKey(t *testing.T) {
	s := emit(t, baseSrc+`type A = Pick<T, "b">`, plain("A"))
	if keys := s.Properties.Keys(); len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("keys = %v", keys)
	}
	if len(s.Required) != 0 {
		t.Errorf("b stays optional: %v", s.Required)
	}
}

func TestPickThroughKeyAlias(t *testing.T) {
	src := baseSrc + `type Keys = "a" | "b"` + "\n" + `type A = Pick<T, Keys>`
	s := emit(t, src, plain("A"))
	if keys := s.Properties.Keys(); len(keys) != 2 {
		t.Fatalf("keys = %v", keys)
	}
}

func TestPickNonLiteralKeysPassesBaseThrough(t *testing.T) {
	s := emit(t, baseSrc+"type A = Pick<T, string>", plain("A"))
	if s.Properties.Len() != 3 {
		t.Fatalf("non-literal keys must keep the base: %v", s.Properties.Keys())
	}
}

func TestReadonlyAndNonNullablePassThrough(t *testing.T) {
	s := emit(t, "type A = Readonly<string>", plain("A"))
	wantType(t, s, "string")

	s = emit(t, "type A = NonNullable<number>", plain("A"))
	wantType(t, s, "number")
}

func TestSetAndMap(t *testing.T) {
	s := emit(t, "type A = Set<string>", plain("A"))
	wantType(t, s, "array")
	wantType(t, s.Items, "string")
	if !s.UniqueItems {
		t.Error("Set must set uniqueItems")
	}

	s = emit(t, "type A = Map<string, number>", plain("A"))
	wantType(t, s, "object")
	if s.AdditionalProperties == nil || s.AdditionalProperties.Schema == nil {
		t.Fatalf("Map additionalProperties = %+v", s.AdditionalProperties)
	}
	wantType(t, s.AdditionalProperties.Schema, "number")
}

func TestRecordForms(t *testing.T) {
	// literal key union: explicit properties, all required
	s := emit(t, `type A = Record<"x" | "y", number>`, plain("A"))
	wantType(t, s, "object")
	if keys := s.Properties.Keys(); len(keys) != 2 || keys[0] != "x" {
		t.Fatalf("keys = %v", keys)
	}
	wantRequired(t, s, "x", "y")

	// single literal key
	s = emit(t, `type A = Record<"only", string>`, plain("A"))
	if keys := s.Properties.Keys(); len(keys) != 1 || keys[0] != "only" {
		t.Fatalf("keys = %v", keys)
	}

	// open key type
	s = emit(t, "type A = Record<string, boolean>", plain("A"))
	if s.Properties != nil {
		t.Error("open record must not enumerate properties")
	}
	wantType(t, s.AdditionalProperties.Schema, "boolean")
}

func TestPartialOfInlineObject(t *testing.T) {
	s := emit(t, "type A = Partial<{ x: string; y: number }>", plain("A"))
	if len(s.Required) != 0 || s.Properties.Len() != 2 {
		t.Fatalf("schema = %+v", s)
	}
}

func TestUtilityOverIntersection(t *testing.T) {
	src := "interface B { x: string }\ninterface C { y: number }\ntype A = Partial<B & C>"
	s := emit(t, src, plain("A"))
	if s.Properties.Len() != 2 || len(s.Required) != 0 {
		t.Fatalf("schema props = %v required = %v", s.Properties.Keys(), s.Required)
	}
}
