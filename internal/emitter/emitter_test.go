package emitter_test

import (
	"errors"
	"fmt"
	"testing"

	"tschema/internal/ast"
	"tschema/internal/emitter"
	"tschema/internal/parser"
	"tschema/internal/schema"
)

// emit parses src and runs single-document emission.
func emit(t *testing.T, src string, opts emitter.Options) *schema.Schema {
	t.Helper()
	decls, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e, err := emitter.New(decls, opts)
	if err != nil {
		t.Fatalf("emitter setup failed: %v", err)
	}
	s, err := e.Emit()
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return s
}

func plain(root string) emitter.Options {
	return emitter.Options{RootType: root, IncludeJSDoc: true}
}

func prop(t *testing.T, s *schema.Schema, name string) *schema.Schema {
	t.Helper()
	if s.Properties == nil {
		t.Fatalf("schema has no properties: %+v", s)
	}
	p, ok := s.Properties.Get(name)
	if !ok {
		t.Fatalf("property %q missing; have %v", name, s.Properties.Keys())
	}
	return p
}

func wantType(t *testing.T, s *schema.Schema, typ string) {
	t.Helper()
	if got, ok := s.Type.Single(); !ok || got != typ {
		t.Fatalf("type = %v, want %q", s.Type, typ)
	}
}

func wantRequired(t *testing.T, s *schema.Schema, names ...string) {
	t.Helper()
	if len(s.Required) != len(names) {
		t.Fatalf("required = %v, want %v", s.Required, names)
	}
	for i := range names {
		if s.Required[i] != names[i] {
			t.Fatalf("required = %v, want %v", s.Required, names)
		}
	}
}

// Scenario: primitives and optionality.
func TestPrimitivesAndOptional(t *testing.T) {
	s := emit(t, "interface User { name: string; age?: number; active: boolean; }", plain("User"))
	wantType(t, s, "object")
	if s.SchemaURL != "" {
		t.Errorf("$schema must be absent when not requested: %q", s.SchemaURL)
	}
	wantType(t, prop(t, s, "name"), "string")
	wantType(t, prop(t, s, "age"), "number")
	wantType(t, prop(t, s, "active"), "boolean")
	wantRequired(t, s, "name", "active")
	if keys := s.Properties.Keys(); keys[0] != "name" || keys[1] != "age" || keys[2] != "active" {
		t.Errorf("property order lost: %v", keys)
	}
}

// Scenario: string-literal union.
func TestStringLiteralUnion(t *testing.T) {
	s := emit(t, `type Status = "a" | "b" | "c";`, plain("Status"))
	wantType(t, s, "string")
	if len(s.Enum) != 3 || s.Enum[0] != "a" || s.Enum[2] != "c" {
		t.Fatalf("enum = %v", s.Enum)
	}
}

// Scenario: recursive self-reference keeps the root under $defs.
func TestSelfReferenceRoot(t *testing.T) {
	s := emit(t, "interface T { v: string; kids: T[]; }", plain("T"))
	if s.Ref != "#/$defs/T" {
		t.Fatalf("root ref = %q", s.Ref)
	}
	def, ok := s.Defs.Get("T")
	if !ok {
		t.Fatal("T missing from $defs")
	}
	kids := prop(t, def, "kids")
	wantType(t, kids, "array")
	if kids.Items.Ref != "#/$defs/T" {
		t.Errorf("kids items ref = %q", kids.Items.Ref)
	}
}

func TestMutualRecursionDetected(t *testing.T) {
	src := "interface A { b: B } interface B { a: A }"
	s := emit(t, src, plain("A"))
	if s.Ref != "#/$defs/A" {
		t.Fatalf("mutually recursive root must stay in $defs, got ref %q", s.Ref)
	}
}

func TestNonRecursiveRootInlined(t *testing.T) {
	s := emit(t, "interface A { b: B } interface B { x: string }", plain("A"))
	if s.Ref != "" {
		t.Fatalf("non-recursive root must inline, got ref %q", s.Ref)
	}
	if s.Defs == nil || !s.Defs.Has("B") || s.Defs.Has("A") {
		t.Fatalf("$defs must contain exactly B: %v", s.Defs.Keys())
	}
}

// Scenario: Omit in an extends clause with an @additionalProperties tag.
func TestOmitInExtendsWithJSDoc(t *testing.T) {
	src := `interface Pet { _id: string; name: string; }
/** @additionalProperties false */
export interface PostPetReq extends Omit<Pet, "_id"> {}`
	s := emit(t, src, plain("PostPetReq"))
	wantType(t, s, "object")
	wantType(t, prop(t, s, "name"), "string")
	if s.Properties.Has("_id") {
		t.Error("_id must be omitted")
	}
	wantRequired(t, s, "name")
	if s.AdditionalProperties == nil || !s.AdditionalProperties.IsBool || s.AdditionalProperties.Bool {
		t.Errorf("additionalProperties = %+v, want false", s.AdditionalProperties)
	}
}

// Scenario: JSDoc numeric constraints, on and off.
func TestJSDocConstraints(t *testing.T) {
	src := `interface Opts {
  /** @minimum 1
   * @maximum 50
   * @default 10 */
  count: number;
}`
	s := emit(t, src, plain("Opts"))
	count := prop(t, s, "count")
	wantType(t, count, "number")
	if count.Minimum == nil || *count.Minimum != 1 || count.Maximum == nil || *count.Maximum != 50 {
		t.Errorf("bounds = %v/%v", count.Minimum, count.Maximum)
	}
	if count.Default != float64(10) {
		t.Errorf("default = %v", count.Default)
	}

	s = emit(t, src, emitter.Options{RootType: "Opts", IncludeJSDoc: false})
	count = prop(t, s, "count")
	wantType(t, count, "number")
	if count.Minimum != nil || count.Default != nil || count.Description != "" {
		t.Errorf("constraints must vanish with includeJSDoc=false: %+v", count)
	}
}

func TestDescriptionsAndTags(t *testing.T) {
	src := `/** A user account. */
interface User {
  /** Display name.
   * @minLength 1
   * @maxLength 64
   * @pattern ^[a-z]+$
   * @example "bob"
   * @deprecated */
  name: string;
}`
	s := emit(t, src, plain("User"))
	if s.Description != "A user account." {
		t.Errorf("declaration description = %q", s.Description)
	}
	name := prop(t, s, "name")
	if name.Description != "Display name." {
		t.Errorf("property description = %q", name.Description)
	}
	if name.MinLength == nil || *name.MinLength != 1 || name.MaxLength == nil || *name.MaxLength != 64 {
		t.Errorf("length bounds = %v/%v", name.MinLength, name.MaxLength)
	}
	if name.Pattern != "^[a-z]+$" {
		t.Errorf("pattern = %q", name.Pattern)
	}
	if len(name.Examples) != 1 || name.Examples[0] != "bob" {
		t.Errorf("examples = %v", name.Examples)
	}
	if !name.Deprecated {
		t.Error("deprecated lost")
	}
}

func TestIncludeSchemaHeader(t *testing.T) {
	s := emit(t, "interface A { x: string }", emitter.Options{
		RootType: "A", IncludeSchema: true, IncludeJSDoc: true,
	})
	if s.SchemaURL != schema.Version2020 {
		t.Errorf("$schema = %q", s.SchemaURL)
	}

	s = emit(t, "interface A { x: string }", emitter.Options{
		RootType: "A", IncludeSchema: true, SchemaVersion: "https://example.com/custom",
		IncludeJSDoc: true,
	})
	if s.SchemaURL != "https://example.com/custom" {
		t.Errorf("$schema = %q", s.SchemaURL)
	}
}

func TestPrimitiveMappings(t *testing.T) {
	tests := []struct {
		src   string
		check func(*testing.T, *schema.Schema)
	}{
		{"type A = bigint", func(t *testing.T, s *schema.Schema) { wantType(t, s, "integer") }},
		{"type A = object", func(t *testing.T, s *schema.Schema) { wantType(t, s, "object") }},
		{"type A = null", func(t *testing.T, s *schema.Schema) { wantType(t, s, "null") }},
		{"type A = never", func(t *testing.T, s *schema.Schema) {
			if s.Not == nil {
				t.Error("never must emit not:{}")
			}
		}},
		{"type A = any", func(t *testing.T, s *schema.Schema) {
			if s.Type != nil || s.Not != nil {
				t.Errorf("any must accept anything: %+v", s)
			}
		}},
		{"type A = Date", func(t *testing.T, s *schema.Schema) {
			wantType(t, s, "string")
			if s.Format != "date-time" {
				t.Errorf("format = %q", s.Format)
			}
		}},
		{`type A = "lit"`, func(t *testing.T, s *schema.Schema) {
			if s.Const != "lit" {
				t.Errorf("const = %v", s.Const)
			}
		}},
		{"type A = 7", func(t *testing.T, s *schema.Schema) {
			if s.Const != float64(7) {
				t.Errorf("const = %v", s.Const)
			}
		}},
		{"type A = true", func(t *testing.T, s *schema.Schema) {
			if s.Const != true {
				t.Errorf("const = %v", s.Const)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tt.check(t, emit(t, tt.src, plain("A")))
		})
	}
}

func TestArraysAndTuples(t *testing.T) {
	s := emit(t, "type A = string[]", plain("A"))
	wantType(t, s, "array")
	wantType(t, s.Items, "string")

	s = emit(t, "type A = [string, number?]", plain("A"))
	wantType(t, s, "array")
	if len(s.PrefixItems) != 2 {
		t.Fatalf("prefixItems = %d", len(s.PrefixItems))
	}
	if s.MinItems == nil || *s.MinItems != 1 || s.MaxItems == nil || *s.MaxItems != 2 {
		t.Errorf("bounds = %v/%v", s.MinItems, s.MaxItems)
	}

	s = emit(t, "type A = [string, ...number[]]", plain("A"))
	if len(s.PrefixItems) != 1 || s.Items == nil || s.MaxItems != nil {
		t.Errorf("rest tuple: prefix=%d items=%v max=%v", len(s.PrefixItems), s.Items, s.MaxItems)
	}
	wantType(t, s.Items, "array")
}

func TestUnionEmission(t *testing.T) {
	// number literal union
	s := emit(t, "type A = 1 | 2 | 3", plain("A"))
	wantType(t, s, "number")
	if len(s.Enum) != 3 {
		t.Fatalf("enum = %v", s.Enum)
	}

	// nullable single type
	s = emit(t, "type A = string | null", plain("A"))
	if len(s.Type) != 2 || s.Type[0] != "string" || s.Type[1] != "null" {
		t.Fatalf("type = %v", s.Type)
	}

	// undefined behaves like null for nullability
	s = emit(t, "type A = number | undefined", plain("A"))
	if len(s.Type) != 2 || s.Type[1] != "null" {
		t.Fatalf("type = %v", s.Type)
	}

	// several non-null members flatten into per-member anyOf
	s = emit(t, `type A = ("x" | "y") | null`, plain("A"))
	if len(s.AnyOf) != 3 {
		t.Fatalf("anyOf = %+v", s.AnyOf)
	}
	if s.AnyOf[0].Const != "x" {
		t.Errorf("anyOf[0] = %+v", s.AnyOf[0])
	}
	if got, _ := s.AnyOf[2].Type.Single(); got != "null" {
		t.Errorf("anyOf[2] = %+v", s.AnyOf[2])
	}

	// nullable composite becomes anyOf
	s = emit(t, "type A = B | null\ninterface B { x: string }", plain("A"))
	if len(s.AnyOf) != 2 || s.AnyOf[0].Ref == "" {
		t.Fatalf("anyOf = %+v", s.AnyOf)
	}
	if got, _ := s.AnyOf[1].Type.Single(); got != "null" {
		t.Errorf("anyOf[1] = %+v", s.AnyOf[1])
	}

	// mixed members
	s = emit(t, `type A = string | number`, plain("A"))
	if len(s.AnyOf) != 2 {
		t.Fatalf("anyOf = %+v", s.AnyOf)
	}
}

// Flattening idempotence: a union of unions emits like its flat form.
func TestUnionFlattening(t *testing.T) {
	nested := emit(t, `type A = ("a" | "b") | ("c" | "d")`, plain("A"))
	flat := emit(t, `type A = "a" | "b" | "c" | "d"`, plain("A"))
	nb, _ := nested.Encode()
	fb, _ := flat.Encode()
	if string(nb) != string(fb) {
		t.Errorf("nested union differs from flat:\n%s\n%s", nb, fb)
	}
}

func TestIntersection(t *testing.T) {
	s := emit(t, "type A = B & C\ninterface B { x: string }\ninterface C { y: string }", plain("A"))
	if len(s.AllOf) != 2 {
		t.Fatalf("allOf = %+v", s.AllOf)
	}
}

func TestReadonlyProperty(t *testing.T) {
	s := emit(t, "interface A { readonly id: string }", plain("A"))
	if !prop(t, s, "id").ReadOnly {
		t.Error("readOnly lost")
	}
}

func TestIndexSignature(t *testing.T) {
	s := emit(t, "interface A { name: string; [k: string]: number }", plain("A"))
	ap := s.AdditionalProperties
	if ap == nil || ap.Schema == nil {
		t.Fatalf("additionalProperties = %+v", ap)
	}
	wantType(t, ap.Schema, "number")
}

// Round-trip structural fidelity: counts survive emission.
func TestStructuralFidelity(t *testing.T) {
	src := "interface A { a: string; b?: number; c: boolean; d?: string[]; [k: string]: unknown }"
	decls, err := parser.ParseSource(src)
	if err != nil {
		t.Fatal(err)
	}
	d := decls[0]
	s := emit(t, src, plain("A"))

	if s.Properties.Len() != len(d.Props) {
		t.Errorf("property count %d != %d", s.Properties.Len(), len(d.Props))
	}
	var required int
	for _, p := range d.Props {
		if !p.Optional {
			required++
		}
	}
	if len(s.Required) != required {
		t.Errorf("required count %d != %d", len(s.Required), required)
	}
	if (s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil) != (d.Index != nil) {
		t.Error("index signature presence lost")
	}
}

func TestEnumDeclarations(t *testing.T) {
	s := emit(t, `enum Color { Red = "red", Green = "green" }`, plain("Color"))
	wantType(t, s, "string")
	if len(s.Enum) != 2 || s.Enum[0] != "red" {
		t.Fatalf("enum = %v", s.Enum)
	}

	s = emit(t, "enum N { A, B, C }", plain("N"))
	wantType(t, s, "number")
	if len(s.Enum) != 3 || s.Enum[2] != float64(2) {
		t.Fatalf("enum = %v", s.Enum)
	}
}

// additionalProperties precedence: index signature > JSDoc tag >
// strictObjects > option > absent.
func TestAdditionalPropertiesPrecedence(t *testing.T) {
	truthy := true

	// all four present: the index signature wins
	src := `/** @additionalProperties true */
interface A { x: string; [k: string]: number }`
	s := emit(t, src, emitter.Options{
		RootType: "A", IncludeJSDoc: true, StrictObjects: true, AdditionalProperties: &truthy,
	})
	if s.AdditionalProperties == nil || s.AdditionalProperties.Schema == nil {
		t.Fatalf("index signature must win: %+v", s.AdditionalProperties)
	}

	// tag beats strictObjects and the option
	src = "/** @additionalProperties true */\ninterface A { x: string }"
	s = emit(t, src, emitter.Options{
		RootType: "A", IncludeJSDoc: true, StrictObjects: true,
	})
	if !s.AdditionalProperties.IsBool || !s.AdditionalProperties.Bool {
		t.Fatalf("tag must win over strictObjects: %+v", s.AdditionalProperties)
	}

	// tag is ignored without JSDoc
	s = emit(t, src, emitter.Options{RootType: "A", IncludeJSDoc: false, StrictObjects: true})
	if !s.AdditionalProperties.IsBool || s.AdditionalProperties.Bool {
		t.Fatalf("strictObjects must apply when JSDoc is off: %+v", s.AdditionalProperties)
	}

	// strictObjects beats the option
	s = emit(t, "interface A { x: string }", emitter.Options{
		RootType: "A", IncludeJSDoc: true, StrictObjects: true, AdditionalProperties: &truthy,
	})
	if s.AdditionalProperties.Bool {
		t.Fatalf("strictObjects must win over the option: %+v", s.AdditionalProperties)
	}

	// the option alone
	s = emit(t, "interface A { x: string }", emitter.Options{
		RootType: "A", IncludeJSDoc: true, AdditionalProperties: &truthy,
	})
	if !s.AdditionalProperties.Bool {
		t.Fatalf("option fallback: %+v", s.AdditionalProperties)
	}

	// nothing: absent
	s = emit(t, "interface A { x: string }", plain("A"))
	if s.AdditionalProperties != nil {
		t.Fatalf("additionalProperties must be absent: %+v", s.AdditionalProperties)
	}
}

func TestNameTransform(t *testing.T) {
	src := "interface A { b: B }\ninterface B { x: string }"
	decls, err := parser.ParseSource(src)
	if err != nil {
		t.Fatal(err)
	}
	e, err := emitter.New(decls, emitter.Options{
		RootType: "A", IncludeJSDoc: true,
		DefineNameTransform: func(name string, _ *ast.Declaration, _ string) (string, error) {
			return "X" + name, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := e.Emit()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Defs.Has("XB") {
		t.Fatalf("$defs keys = %v", s.Defs.Keys())
	}
	if prop(t, s, "b").Ref != "#/$defs/XB" {
		t.Errorf("ref = %q", prop(t, s, "b").Ref)
	}
}

func TestNameTransformCollision(t *testing.T) {
	decls, err := parser.ParseSource("interface A { x: string }\ninterface B { y: string }")
	if err != nil {
		t.Fatal(err)
	}
	_, err = emitter.New(decls, emitter.Options{
		IncludeJSDoc: true,
		DefineNameTransform: func(string, *ast.Declaration, string) (string, error) {
			return "Same", nil
		},
	})
	var ce *emitter.NameCollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected NameCollisionError, got %v", err)
	}
}

func TestCallbackErrorWrapped(t *testing.T) {
	decls, _ := parser.ParseSource("interface A { x: string }")
	boom := fmt.Errorf("boom")
	_, err := emitter.New(decls, emitter.Options{
		IncludeJSDoc: true,
		DefineNameTransform: func(string, *ast.Declaration, string) (string, error) {
			return "", boom
		},
	})
	var ce *emitter.CallbackError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CallbackError, got %v", err)
	}
	if ce.TypeName != "A" || !errors.Is(err, boom) {
		t.Errorf("callback error context lost: %+v", ce)
	}
}

func TestGenericInstantiation(t *testing.T) {
	src := "type Box<T> = { value: T }\ntype A = Box<string>"
	s := emit(t, src, plain("A"))
	wantType(t, s, "object")
	wantType(t, prop(t, s, "value"), "string")
	// the generic itself gets no $defs entry
	if s.Defs.Has("Box") {
		t.Errorf("$defs = %v", s.Defs.Keys())
	}

	// a generic interface substitutes through its recorded parameter list
	src = "interface Pair<T, U> { first: T, second: U }\ntype A = Pair<string, number>"
	s = emit(t, src, plain("A"))
	wantType(t, prop(t, s, "first"), "string")
	wantType(t, prop(t, s, "second"), "number")
}

func TestGenericSkippedInDefs(t *testing.T) {
	s := emit(t, "type Box<T> = { v: T }\ninterface A { x: string }", plain("A"))
	if s.Defs.Len() != 0 {
		t.Errorf("uninstantiated generic must not be declared: %v", s.Defs.Keys())
	}
}
