package ast

// DeclKind discriminates the top-level declaration variants.
type DeclKind uint8

const (
	// DeclInterface is an `interface Name { ... }` declaration.
	DeclInterface DeclKind = iota
	// DeclTypeAlias is a `type Name = T` declaration.
	DeclTypeAlias
	// DeclEnum is an `enum Name { ... }` declaration.
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclInterface:
		return "interface"
	case DeclTypeAlias:
		return "type alias"
	case DeclEnum:
		return "enum"
	}
	return "unknown"
}

// Declaration is a named top-level entity. It is immutable after parsing;
// the emitter only reads it and builds fresh trees for substitutions.
type Declaration struct {
	Kind     DeclKind
	Name     string
	Doc      *Doc // attached JSDoc, nil when absent
	Exported bool
	// SourceFile is the absolute path of the declaring file, set by the
	// module resolver. Empty for string-source conversions.
	SourceFile string
	// TypeParams holds declared type parameter names in positional order.
	// Non-empty only for generic declarations.
	TypeParams []string

	// interface
	Props   []Property
	Index   *IndexSignature
	Extends []TypeNode

	// type alias
	Alias TypeNode

	// enum
	Members []EnumMember
}

// IsGeneric reports whether the declaration takes type parameters.
func (d *Declaration) IsGeneric() bool { return len(d.TypeParams) > 0 }

// Property is a single named member of an interface or object type.
type Property struct {
	Name     string
	Type     TypeNode
	Optional bool
	Readonly bool
	Doc      *Doc
}

// IndexSignature is `[key: K]: V`.
type IndexSignature struct {
	KeyName   string
	KeyType   TypeNode
	ValueType TypeNode
}

// EnumMember is one enum entry. String members carry their literal value;
// numeric members auto-increment when no initializer is present.
type EnumMember struct {
	Name     string
	IsString bool
	Str      string
	Num      float64
}
