package emitter_test

import (
	"errors"
	"strings"
	"testing"

	"tschema/internal/ast"
	"tschema/internal/emitter"
	"tschema/internal/parser"
	"tschema/internal/schema"
)

func emitAll(t *testing.T, src string, opts emitter.Options) *schema.Map {
	t.Helper()
	decls, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e, err := emitter.New(decls, opts)
	if err != nil {
		t.Fatalf("emitter setup failed: %v", err)
	}
	out, err := e.EmitAll()
	if err != nil {
		t.Fatalf("emitAll failed: %v", err)
	}
	return out
}

func TestBatchSelfContainedEntries(t *testing.T) {
	src := "interface A { b: B }\ninterface B { x: string }"
	out := emitAll(t, src, emitter.Options{IncludeJSDoc: true})

	if keys := out.Keys(); len(keys) != 2 || keys[0] != "A" || keys[1] != "B" {
		t.Fatalf("entries = %v", keys)
	}

	a, _ := out.Get("A")
	// dependencies live in a draft-07 definitions block
	if a.Definitions == nil || !a.Definitions.Has("B") {
		t.Fatalf("A definitions = %+v", a.Definitions)
	}
	if a.Defs != nil {
		t.Error("batch entries must not carry $defs")
	}
	if prop(t, a, "b").Ref != "#/definitions/B" {
		t.Errorf("ref = %q", prop(t, a, "b").Ref)
	}
	// A does not embed itself
	if a.Definitions.Has("A") {
		t.Error("non-recursive entry must not embed itself")
	}

	b, _ := out.Get("B")
	if b.Definitions != nil {
		t.Errorf("B needs no definitions: %+v", b.Definitions)
	}
}

func TestBatchSelfReferentialEntryEmbedsItself(t *testing.T) {
	out := emitAll(t, "interface T { kids: T[] }", emitter.Options{IncludeJSDoc: true})
	entry, _ := out.Get("T")
	if entry.Definitions == nil || !entry.Definitions.Has("T") {
		t.Fatalf("recursive entry must embed itself: %+v", entry.Definitions)
	}
	kids := prop(t, entry, "kids")
	if kids.Items.Ref != "#/definitions/T" {
		t.Errorf("ref = %q", kids.Items.Ref)
	}
}

func TestBatchIncludesSchemaHeader(t *testing.T) {
	out := emitAll(t, "interface A { x: string }", emitter.Options{IncludeSchema: true, IncludeJSDoc: true})
	a, _ := out.Get("A")
	if a.SchemaURL == "" {
		t.Error("$schema missing on batch entry")
	}
}

func TestDefineID(t *testing.T) {
	src := "interface A { b: B }\ninterface B { x: string }"
	decls, err := parser.ParseSource(src)
	if err != nil {
		t.Fatal(err)
	}
	e, err := emitter.New(decls, emitter.Options{
		IncludeJSDoc: true,
		DefineID: func(name string, _ *ast.Declaration) (string, error) {
			return "https://example.com/schemas/" + strings.ToLower(name), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.EmitAll()
	if err != nil {
		t.Fatal(err)
	}

	a, ok := out.Get("https://example.com/schemas/a")
	if !ok {
		t.Fatalf("keys = %v", out.Keys())
	}
	if a.ID != "https://example.com/schemas/a" {
		t.Errorf("$id = %q", a.ID)
	}
	if a.Definitions != nil {
		t.Error("definitions must be omitted with defineId")
	}
	if prop(t, a, "b").Ref != "https://example.com/schemas/b" {
		t.Errorf("cross-schema ref = %q", prop(t, a, "b").Ref)
	}
}

func TestDuplicateID(t *testing.T) {
	decls, _ := parser.ParseSource("interface A { x: string }\ninterface B { y: string }")
	e, err := emitter.New(decls, emitter.Options{
		IncludeJSDoc: true,
		DefineID: func(string, *ast.Declaration) (string, error) {
			return "same-id", nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.EmitAll()
	var de *emitter.DuplicateIDError
	if !errors.As(err, &de) {
		t.Fatalf("expected DuplicateIDError, got %v", err)
	}
	if de.ID != "same-id" {
		t.Errorf("id = %q", de.ID)
	}
}

func TestBatchSkipsGenerics(t *testing.T) {
	out := emitAll(t, "type Box<T> = { v: T }\ninterface A { x: string }", emitter.Options{IncludeJSDoc: true})
	if keys := out.Keys(); len(keys) != 1 || keys[0] != "A" {
		t.Fatalf("entries = %v", keys)
	}
}
