package parser

import (
	"tschema/internal/ast"
	"tschema/internal/token"
)

// parseObjectBody parses interface and inline object bodies after the
// opening brace, through the closing one. Members are separated by `,` or
// `;`, both optional at the last member.
func (p *Parser) parseObjectBody() ([]ast.Property, *ast.IndexSignature, error) {
	var props []ast.Property
	var index *ast.IndexSignature

	for {
		p.absorbDocs()
		if p.atPunct("}") {
			p.next()
			return props, index, nil
		}
		if p.at(token.EOF) {
			return nil, nil, p.unexpected("'}'")
		}

		if p.atIndexSignature() {
			sig, err := p.parseIndexSignature()
			if err != nil {
				return nil, nil, err
			}
			p.takeDoc()
			index = sig
		} else {
			prop, err := p.parseProperty()
			if err != nil {
				return nil, nil, err
			}
			props = append(props, prop)
		}

		if !p.eatPunct(",") {
			p.eatPunct(";")
		}
	}
}

// atIndexSignature detects `[name: T]: U` by lookahead: `[` identifier `:`.
func (p *Parser) atIndexSignature() bool {
	return p.atPunct("[") &&
		p.peekAhead(1).Kind == token.Ident &&
		p.peekAhead(2).IsPunct(":")
}

func (p *Parser) parseIndexSignature() (*ast.IndexSignature, error) {
	p.next() // '['
	keyName := p.next().Text
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	keyType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	valueType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.IndexSignature{KeyName: keyName, KeyType: keyType, ValueType: valueType}, nil
}

// parseProperty parses `readonly? name ?? : T`.
func (p *Parser) parseProperty() (ast.Property, error) {
	var prop ast.Property
	prop.Doc = p.takeDoc()

	if p.atKeyword("readonly") && isPropertyName(p.peekAhead(1)) {
		p.next()
		prop.Readonly = true
	}

	if !isPropertyName(p.peek()) {
		return prop, p.unexpected("property name")
	}
	prop.Name = p.next().Text

	if p.eatPunct("?") {
		prop.Optional = true
	}
	if err := p.expectPunct(":"); err != nil {
		return prop, err
	}
	typ, err := p.parseType()
	if err != nil {
		return prop, err
	}
	prop.Type = typ
	return prop, nil
}

// isPropertyName reports whether tok can name an object member. Keywords
// and primitive names are allowed: `type?: string` is a legal property.
func isPropertyName(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Keyword, token.Primitive, token.String, token.Number:
		return true
	default:
		return false
	}
}
