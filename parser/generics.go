package parser

import (
	"text/scanner"

	"github.com/jhump/derive"
)

// ParseGenerics parses a generic parameter list, such as
//
//    <'a, 'b: 'a, T: Clone + Iterator<Item = u8> = Vec<u8>, const N: usize = 3>
//
// The enclosing angle brackets are optional. Empty text (or "<>") yields no
// parameters. Bounds are split on '+' and defaults follow '='; both are kept
// as written. Where clauses are not supported.
func ParseGenerics(filename, text string) ([]derive.Parameter, *ParseError) {
	l := newLexer(filename, text)
	toks, err := l.tokens()
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}
	if toks[0].r == '<' {
		last := len(toks) - 1
		if last == 0 || toks[last].r != '>' || isArrow(toks, last) {
			return nil, errorf(toks[0].pos, "unclosed generic parameter list")
		}
		toks = toks[1:last]
	}

	parts, seps, err := splitTopLevel(toks, ',')
	if err != nil {
		return nil, err
	}
	var params []derive.Parameter
	for i, part := range parts {
		if len(part) == 0 {
			if i == len(parts)-1 {
				continue
			}
			return nil, errorf(sepPos(seps, i), "expecting generic parameter")
		}
		p, err := l.parseParam(part)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (l *lexer) parseParam(part []token) (derive.Parameter, *ParseError) {
	first := part[0]
	switch {
	case first.r == '\'':
		if len(part) < 2 || part[1].r != scanner.Ident || part[1].pos.Offset != first.end {
			return derive.Parameter{}, errorf(first.pos, "expecting lifetime name after '")
		}
		p := derive.Parameter{Kind: derive.LifetimeParam, Name: part[1].text}
		rest := part[2:]
		if len(rest) == 0 {
			return p, nil
		}
		if rest[0].r != ':' {
			return derive.Parameter{}, errorf(rest[0].pos, "unexpected %s after lifetime '%s", rest[0], p.Name)
		}
		bounds, err := l.bounds(rest[1:])
		if err != nil {
			return derive.Parameter{}, err
		}
		p.Bounds = bounds
		return p, nil

	case first.r == scanner.Ident && first.text == "const":
		if len(part) < 2 || part[1].r != scanner.Ident {
			return derive.Parameter{}, errorf(first.pos, "expecting name of const parameter")
		}
		p := derive.Parameter{Kind: derive.ConstParam, Name: part[1].text}
		rest := part[2:]
		if len(rest) == 0 || rest[0].r != ':' {
			return derive.Parameter{}, errorf(part[1].pos, "const parameter %s must have a type", p.Name)
		}
		typ, def, hasDef := splitFirst(rest[1:], '=')
		if len(typ) == 0 {
			return derive.Parameter{}, errorf(rest[0].pos, "const parameter %s must have a type", p.Name)
		}
		p.Type = l.span(typ)
		if hasDef {
			if len(def) == 0 {
				return derive.Parameter{}, errorf(typ[len(typ)-1].pos, "expecting default value for %s", p.Name)
			}
			p.Default = l.span(def)
		}
		return p, nil

	case first.r == scanner.Ident:
		p := derive.Parameter{Kind: derive.TypeParam, Name: first.text}
		rest := part[1:]
		if len(rest) == 0 {
			return p, nil
		}
		var def []token
		var hasDef bool
		switch rest[0].r {
		case ':':
			var bnd []token
			bnd, def, hasDef = splitFirst(rest[1:], '=')
			bounds, err := l.bounds(bnd)
			if err != nil {
				return derive.Parameter{}, err
			}
			p.Bounds = bounds
		case '=':
			def, hasDef = rest[1:], true
		default:
			return derive.Parameter{}, errorf(rest[0].pos, "unexpected %s after type parameter %s", rest[0], p.Name)
		}
		if hasDef {
			if len(def) == 0 {
				return derive.Parameter{}, errorf(rest[0].pos, "expecting default type for %s", p.Name)
			}
			p.Default = l.span(def)
		}
		return p, nil

	default:
		return derive.Parameter{}, errorf(first.pos, "expecting generic parameter, got %s", first)
	}
}

// bounds splits the given tokens into '+'-separated bounds. An empty list of
// tokens means no bounds.
func (l *lexer) bounds(toks []token) ([]string, *ParseError) {
	if len(toks) == 0 {
		return nil, nil
	}
	parts, seps, err := splitTopLevel(toks, '+')
	if err != nil {
		return nil, err
	}
	bounds := make([]string, 0, len(parts))
	for i, p := range parts {
		if len(p) == 0 {
			if i == len(parts)-1 {
				continue
			}
			return nil, errorf(sepPos(seps, i), "expecting bound")
		}
		bounds = append(bounds, l.span(p))
	}
	return bounds, nil
}
