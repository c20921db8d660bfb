package parser

import (
	"text/scanner"

	"github.com/jhump/derive"
)

// AttributeWrapper is the name of the attribute that holds derive annotations,
// as in #[nserde(rename = "id")].
const AttributeWrapper = "nserde"

// ParseAttributes parses the text of one attribute into annotations. The
// following forms are accepted, where ITEMS is a comma-separated list:
//
//    #[nserde(ITEMS)]
//    nserde(ITEMS)
//    ITEMS
//
// Each item is one annotation:
//
//    name                  ->  [name]
//    name = value          ->  [name, value]
//    name(v1, v2, ...)     ->  [name, v1, v2, ...]
//
// A value that is a single string literal is unquoted. Any other value (an
// identifier, path, number, or expression) is kept exactly as written. A
// trailing comma is allowed. The annotations are not validated.
func ParseAttributes(filename, text string) ([]derive.Annotation, *ParseError) {
	l := newLexer(filename, text)
	toks, err := l.tokens()
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}

	if toks[0].r == '#' {
		if len(toks) < 3 || toks[1].r != '[' || toks[len(toks)-1].r != ']' {
			return nil, errorf(toks[0].pos, "malformed attribute: expecting #[...]")
		}
		toks = toks[2 : len(toks)-1]
	}
	if len(toks) >= 2 && toks[0].r == scanner.Ident && toks[0].text == AttributeWrapper {
		if toks[1].r != '(' || toks[len(toks)-1].r != ')' {
			return nil, errorf(toks[0].pos, "malformed attribute: expecting %s(...)", AttributeWrapper)
		}
		toks = toks[2 : len(toks)-1]
	}
	if len(toks) == 0 {
		return nil, nil
	}

	items, seps, err := splitTopLevel(toks, ',')
	if err != nil {
		return nil, err
	}
	var annos []derive.Annotation
	for i, item := range items {
		if len(item) == 0 {
			if i == len(items)-1 {
				// trailing comma
				continue
			}
			return nil, errorf(sepPos(seps, i), "expecting annotation")
		}
		a, err := l.parseItem(item)
		if err != nil {
			return nil, err
		}
		annos = append(annos, a)
	}
	return annos, nil
}

func (l *lexer) parseItem(item []token) (derive.Annotation, *ParseError) {
	name := item[0]
	if name.r != scanner.Ident {
		return derive.Annotation{}, errorf(name.pos, "expecting annotation name, got %s", name)
	}
	rest := item[1:]
	switch {
	case len(rest) == 0:
		return derive.NewAnnotation(name.text), nil

	case rest[0].r == '=':
		if len(rest) == 1 {
			return derive.Annotation{}, errorf(rest[0].pos, "expecting value after '=' for %s", name.text)
		}
		return derive.NewAnnotation(name.text, l.value(rest[1:])), nil

	case rest[0].r == '(':
		last := rest[len(rest)-1]
		if last.r != ')' {
			return derive.Annotation{}, errorf(last.pos, "unexpected %s after arguments to %s", last, name.text)
		}
		inner := rest[1 : len(rest)-1]
		if len(inner) == 0 {
			return derive.NewAnnotation(name.text), nil
		}
		parts, seps, err := splitTopLevel(inner, ',')
		if err != nil {
			return derive.Annotation{}, err
		}
		var args []string
		for i, p := range parts {
			if len(p) == 0 {
				if i == len(parts)-1 {
					continue
				}
				return derive.Annotation{}, errorf(sepPos(seps, i), "expecting argument to %s", name.text)
			}
			args = append(args, l.value(p))
		}
		return derive.NewAnnotation(name.text, args...), nil

	default:
		return derive.Annotation{}, errorf(rest[0].pos, "unexpected %s after annotation name %s", rest[0], name.text)
	}
}
