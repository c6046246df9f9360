package parser

import (
	"tschema/internal/ast"
)

// parseTypeAlias parses `type Name [<T, ...>] = T ;?`.
func (p *Parser) parseTypeAlias(exported bool) (*ast.Declaration, error) {
	doc := p.takeDoc()
	p.next() // 'type'

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	params, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	alias, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.eatPunct(";")

	return &ast.Declaration{
		Kind:       ast.DeclTypeAlias,
		Name:       name,
		Doc:        doc,
		Exported:   exported,
		TypeParams: params,
		Alias:      alias,
	}, nil
}
