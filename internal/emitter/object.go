package emitter

import (
	"strconv"

	"tschema/internal/ast"
	"tschema/internal/schema"
)

// emitObject emits a resolved property set. declDoc is the owning
// declaration's JSDoc, consulted only for the @additionalProperties tag;
// descriptions are applied by the caller.
func (e *Emitter) emitObject(parts *objParts, declDoc *ast.Doc) (*schema.Schema, error) {
	s := &schema.Schema{Type: schema.TypeValue{"object"}}

	if len(parts.props) > 0 {
		s.Properties = schema.NewMap()
		for _, prop := range parts.props {
			ps, err := e.emitType(prop.Type)
			if err != nil {
				return nil, err
			}
			if prop.Readonly {
				ps.ReadOnly = true
			}
			e.applyDoc(ps, prop.Doc)
			s.Properties.Set(prop.Name, ps)
			if !prop.Optional {
				s.Required = append(s.Required, prop.Name)
			}
		}
	}

	ap, err := e.chooseAdditionalProps(parts.index, declDoc)
	if err != nil {
		return nil, err
	}
	s.AdditionalProperties = ap
	return s, nil
}

// chooseAdditionalProps concentrates the additionalProperties decision.
// Strict precedence, first match wins:
//
//  1. an index signature on the object
//  2. an @additionalProperties JSDoc tag (unless JSDoc is suppressed)
//  3. the strictObjects option
//  4. the additionalProperties option
//  5. absent
func (e *Emitter) chooseAdditionalProps(index *ast.IndexSignature, doc *ast.Doc) (*schema.AdditionalProps, error) {
	if index != nil {
		vs, err := e.emitType(index.ValueType)
		if err != nil {
			return nil, err
		}
		return schema.Of(vs), nil
	}
	if e.opts.IncludeJSDoc {
		if raw, ok := doc.Get("additionalProperties"); ok {
			if v, err := strconv.ParseBool(raw); err == nil {
				return schema.Bool(v), nil
			}
		}
	}
	if e.opts.StrictObjects {
		return schema.Bool(false), nil
	}
	if e.opts.AdditionalProperties != nil {
		return schema.Bool(*e.opts.AdditionalProperties), nil
	}
	return nil, nil
}
