package parser

import (
	"strconv"

	"tschema/internal/ast"
	"tschema/internal/token"
)

// parseEnum parses `enum Name { A, B = "b", C = 2 }`. String members take
// their literal value; numeric members auto-increment from 0 or from the
// last explicit numeric value + 1. Non-literal initializers are tolerated
// by skipping the initializer and falling back to auto-increment.
func (p *Parser) parseEnum(exported bool) (*ast.Declaration, error) {
	doc := p.takeDoc()
	p.next() // 'enum'

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var members []ast.EnumMember
	nextNum := float64(0)
	for {
		p.absorbDocs()
		if p.atPunct("}") {
			p.next()
			break
		}
		if p.at(token.EOF) {
			return nil, p.unexpected("'}'")
		}

		var memberName string
		switch p.peek().Kind {
		case token.Ident, token.Keyword, token.Primitive:
			memberName = p.next().Text
		case token.String:
			memberName = p.next().Text
		default:
			return nil, p.unexpected("enum member name")
		}
		p.takeDoc() // member docs are not carried into the schema

		member := ast.EnumMember{Name: memberName}
		explicit := false
		if p.eatPunct("=") {
			switch p.peek().Kind {
			case token.String:
				member.IsString = true
				member.Str = p.next().Text
				explicit = true
			case token.Number:
				n, convErr := strconv.ParseFloat(p.next().Text, 64)
				if convErr == nil {
					member.Num = n
					nextNum = n + 1
					explicit = true
				}
			default:
				p.skipEnumInitializer()
			}
		}
		if !explicit && !member.IsString {
			member.Num = nextNum
			nextNum++
		}
		members = append(members, member)

		if !p.eatPunct(",") {
			p.eatPunct(";")
		}
	}

	return &ast.Declaration{
		Kind:     ast.DeclEnum,
		Name:     name,
		Doc:      doc,
		Exported: exported,
		Members:  members,
	}, nil
}

// skipEnumInitializer discards a non-literal initializer expression up to
// the next member separator or the closing brace.
func (p *Parser) skipEnumInitializer() {
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF:
			return
		case t.IsPunct("(") || t.IsPunct("["):
			depth++
			p.next()
		case t.IsPunct(")") || t.IsPunct("]"):
			depth--
			p.next()
		case depth == 0 && (t.IsPunct(",") || t.IsPunct(";") || t.IsPunct("}")):
			return
		default:
			p.next()
		}
	}
}
