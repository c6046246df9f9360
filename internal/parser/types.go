package parser

import (
	"strconv"

	"tschema/internal/ast"
	"tschema/internal/token"
)

// Type grammar, lowest to highest precedence:
//
//	Union        := '|'? Intersection ('|' Intersection)*
//	Intersection := '&'? Postfix     ('&' Postfix)*
//	Postfix      := Primary ('[' ']')*
//	Primary      := primitive | literal | '(' Union ')' | tuple | object
//	              | 'readonly' Postfix | reference
func (p *Parser) parseType() (ast.TypeNode, error) {
	return p.parseUnion()
}

func (p *Parser) parseUnion() (ast.TypeNode, error) {
	p.eatPunct("|") // tolerate a leading '|'
	first, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}
	members := []ast.TypeNode{first}
	for p.eatPunct("|") {
		m, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return first, nil
	}
	return &ast.UnionType{Members: members}, nil
}

func (p *Parser) parseIntersection() (ast.TypeNode, error) {
	p.eatPunct("&")
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	members := []ast.TypeNode{first}
	for p.eatPunct("&") {
		m, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return first, nil
	}
	return &ast.IntersectionType{Members: members}, nil
}

func (p *Parser) parsePostfix() (ast.TypeNode, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.atPunct("[") && p.peekAhead(1).IsPunct("]") {
		p.next()
		p.next()
		t = &ast.ArrayType{Elem: t}
	}
	return t, nil
}

func (p *Parser) parsePrimary() (ast.TypeNode, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Primitive:
		p.next()
		switch tok.Text {
		case "true":
			return &ast.BoolLit{Value: true}, nil
		case "false":
			return &ast.BoolLit{Value: false}, nil
		}
		return &ast.PrimitiveType{Name: tok.Text}, nil

	case token.String:
		p.next()
		return &ast.StringLit{Value: tok.Text}, nil

	case token.Number:
		p.next()
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.unexpected("number literal")
		}
		return &ast.NumberLit{Value: n}, nil

	case token.Ident:
		return p.parseTypeReference()

	case token.Keyword:
		if tok.Text == "readonly" {
			// `readonly T[]` is the same schema as `T[]`
			p.next()
			return p.parsePostfix()
		}

	case token.Punct:
		switch tok.Text {
		case "(":
			p.next()
			inner, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return &ast.ParenType{Inner: inner}, nil
		case "[":
			return p.parseTuple()
		case "{":
			if p.atMappedType() {
				return p.parseMappedType()
			}
			p.next()
			props, index, err := p.parseObjectBody()
			if err != nil {
				return nil, err
			}
			return &ast.ObjectType{Props: props, Index: index}, nil
		}
	}
	return nil, p.unexpected("type")
}

// parseTypeReference parses `Name` or `Name<A, B>`. The built-in container
// names Array, Record, and Promise are normalized at parse time.
func (p *Parser) parseTypeReference() (ast.TypeNode, error) {
	name := p.next().Text

	var args []ast.TypeNode
	if p.eatPunct("<") {
		for {
			arg, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.eatPunct(",") {
				break
			}
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	switch {
	case name == "Array" && len(args) == 1:
		return &ast.ArrayType{Elem: args[0]}, nil
	case name == "Record" && len(args) == 2:
		return &ast.RecordType{Key: args[0], Value: args[1]}, nil
	case name == "Promise" && len(args) == 1:
		// promises are transparent to the schema
		return args[0], nil
	}
	return &ast.RefType{Name: name, Args: args}, nil
}

// parseTuple parses `[ Element (',' Element)* ]` where
// Element := '...'? (label ':')? Union '?'?.
func (p *Parser) parseTuple() (ast.TypeNode, error) {
	p.next() // '['
	tuple := &ast.TupleType{}
	for {
		if p.atPunct("]") {
			p.next()
			return tuple, nil
		}
		if p.at(token.EOF) {
			return nil, p.unexpected("']'")
		}

		var elem ast.TupleElement
		if p.atPunct(".") && p.peekAhead(1).IsPunct(".") && p.peekAhead(2).IsPunct(".") {
			p.next()
			p.next()
			p.next()
			elem.Rest = true
		}
		if p.at(token.Ident) &&
			(p.peekAhead(1).IsPunct(":") ||
				(p.peekAhead(1).IsPunct("?") && p.peekAhead(2).IsPunct(":"))) {
			elem.Label = p.next().Text
			if p.eatPunct("?") {
				elem.Optional = true
			}
			p.next() // ':'
		}
		typ, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		elem.Type = typ
		if p.eatPunct("?") {
			elem.Optional = true
		}
		tuple.Elements = append(tuple.Elements, elem)

		if !p.eatPunct(",") {
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return tuple, nil
		}
	}
}

// atMappedType detects `{ [P in K]: V }` by lookahead before committing to
// an object body.
func (p *Parser) atMappedType() bool {
	return p.atPunct("{") &&
		p.peekAhead(1).IsPunct("[") &&
		p.peekAhead(2).Kind == token.Ident &&
		p.peekAhead(3).Kind == token.Ident && p.peekAhead(3).Text == "in"
}

// parseMappedType parses a mapped type into its best-effort AST node.
func (p *Parser) parseMappedType() (ast.TypeNode, error) {
	p.next() // '{'
	p.next() // '['
	param := p.next().Text
	p.next() // 'in'
	constraint, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	optional := p.eatPunct("?")
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	value, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.eatPunct(";")
	p.eatPunct(",")
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.MappedType{
		Param:      param,
		Constraint: constraint,
		Value:      value,
		Optional:   optional,
	}, nil
}
