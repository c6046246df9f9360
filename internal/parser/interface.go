package parser

import (
	"tschema/internal/ast"
)

// parseInterface parses `interface Name [<T, ...>] [extends A, B] { body }`.
func (p *Parser) parseInterface(exported bool) (*ast.Declaration, error) {
	doc := p.takeDoc()
	p.next() // 'interface'

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	params, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}

	var extends []ast.TypeNode
	if p.atKeyword("extends") {
		p.next()
		for {
			// a full type expression: `extends Omit<Pet, "_id">` is valid
			base, err := p.parseType()
			if err != nil {
				return nil, err
			}
			extends = append(extends, base)
			if !p.eatPunct(",") {
				break
			}
		}
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	props, index, err := p.parseObjectBody()
	if err != nil {
		return nil, err
	}

	return &ast.Declaration{
		Kind:       ast.DeclInterface,
		Name:       name,
		Doc:        doc,
		Exported:   exported,
		TypeParams: params,
		Props:      props,
		Index:      index,
		Extends:    extends,
	}, nil
}

// parseTypeParams consumes an optional `<T, U extends X = D, ...>` list and
// returns the declared parameter names in positional order. Constraints
// and defaults are consumed and dropped: only monomorphic instantiation is
// supported downstream.
func (p *Parser) parseTypeParams() ([]string, error) {
	if !p.eatPunct("<") {
		return nil, nil
	}
	var names []string
	for {
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.atKeyword("extends") {
			p.next()
			if _, err := p.parseType(); err != nil {
				return nil, err
			}
		}
		if p.eatPunct("=") {
			if _, err := p.parseType(); err != nil {
				return nil, err
			}
		}
		if p.eatPunct(",") {
			continue
		}
		break
	}
	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}
	return names, nil
}
