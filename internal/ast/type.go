package ast

// TypeNode is the recursive type expression tree. Nodes are pure owned
// values: cycles never appear in the tree itself, only through named
// references resolved at emission time.
type TypeNode interface {
	isType()
}

// PrimitiveType is a built-in primitive (string, number, boolean, null,
// undefined, any, unknown, never, void, object, bigint).
type PrimitiveType struct {
	Name string
}

// StringLit is a string literal type.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal type.
type NumberLit struct {
	Value float64
}

// BoolLit is a boolean literal type (`true` or `false`).
type BoolLit struct {
	Value bool
}

// ObjectType is an inline `{ ... }` object type.
type ObjectType struct {
	Props []Property
	Index *IndexSignature
}

// ArrayType is `T[]` or `Array<T>`.
type ArrayType struct {
	Elem TypeNode
}

// TupleType is `[A, B, ...C]`.
type TupleType struct {
	Elements []TupleElement
}

// TupleElement is one position of a tuple, with an optional label and
// optional/rest markers. A rest element is unique and last.
type TupleElement struct {
	Type     TypeNode
	Optional bool
	Label    string
	Rest     bool
}

// UnionType is `A | B | ...` with at least two members; singleton unions
// are unwrapped by the parser.
type UnionType struct {
	Members []TypeNode
}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Members []TypeNode
}

// RefType names another declaration, optionally with type arguments.
// Args, when present, has at least one element.
type RefType struct {
	Name string
	Args []TypeNode
}

// ParenType is a parenthesized type; emission recurses into Inner.
type ParenType struct {
	Inner TypeNode
}

// RecordType is `Record<K, V>`, recognized at parse time.
type RecordType struct {
	Key   TypeNode
	Value TypeNode
}

// TemplateLitType is an explicit template literal type. Only its presence
// matters to emission (best-effort `{type:"string"}`).
type TemplateLitType struct {
	Parts []string
}

// MappedType is a mapped type `{ [P in K]: V }` (best-effort emission).
type MappedType struct {
	Param      string
	Constraint TypeNode
	Value      TypeNode
	Optional   bool
}

func (*PrimitiveType) isType()   {}
func (*StringLit) isType()       {}
func (*NumberLit) isType()       {}
func (*BoolLit) isType()         {}
func (*ObjectType) isType()      {}
func (*ArrayType) isType()       {}
func (*TupleType) isType()       {}
func (*UnionType) isType()       {}
func (*IntersectionType) isType() {}
func (*RefType) isType()         {}
func (*ParenType) isType()       {}
func (*RecordType) isType()      {}
func (*TemplateLitType) isType() {}
func (*MappedType) isType()      {}
