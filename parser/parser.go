// Package parser turns the text of attributes and generic parameter lists, as
// written on a struct or enum declaration, into the model used by the derive
// package.
//
// Both inputs are tokenized with text/scanner. Character literals are not
// scanned, so a lifetime such as 'a lexes as an apostrophe followed by an
// identifier.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseError is an error encountered while parsing attributes or generics. It
// carries the location in the input where the error was found.
type ParseError struct {
	err error
	pos scanner.Position
}

func errorf(pos scanner.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{err: fmt.Errorf(format, args...), pos: pos}
}

func (e *ParseError) Error() string {
	if e.pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.pos.Filename, e.pos.Line, e.pos.Column, e.err)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.pos.Line, e.pos.Column, e.err)
}

// Underlying returns the underlying error, without position information.
func (e *ParseError) Underlying() error {
	return e.err
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// Pos returns the location in the input where the error was encountered.
func (e *ParseError) Pos() scanner.Position {
	return e.pos
}

type token struct {
	r    rune
	text string
	pos  scanner.Position
	// end is the byte offset just past the token
	end int
}

func (t token) String() string {
	switch t.r {
	case scanner.Ident:
		return fmt.Sprintf("identifier %q", t.text)
	case scanner.String, scanner.RawString:
		return "string literal"
	case scanner.Int:
		return "int literal"
	case scanner.Float:
		return "float literal"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

type lexer struct {
	src    string
	s      scanner.Scanner
	err    error
	errPos scanner.Position
}

func newLexer(filename, src string) *lexer {
	l := lexer{src: src}
	l.s.Init(strings.NewReader(src))
	l.s.Filename = filename
	l.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings
	l.s.Error = func(s *scanner.Scanner, msg string) {
		if l.err != nil {
			return
		}
		l.err = errors.New(msg)
		l.errPos = s.Position
		if !l.errPos.IsValid() {
			l.errPos = s.Pos()
		}
	}
	return &l
}

func (l *lexer) tokens() ([]token, *ParseError) {
	var toks []token
	for {
		r := l.s.Scan()
		if l.err != nil {
			return nil, &ParseError{err: l.err, pos: l.errPos}
		}
		if r == scanner.EOF {
			return toks, nil
		}
		toks = append(toks, token{r: r, text: l.s.TokenText(), pos: l.s.Position, end: l.s.Pos().Offset})
	}
}

// span returns the source text covered by the given tokens, as written.
func (l *lexer) span(toks []token) string {
	if len(toks) == 0 {
		return ""
	}
	return strings.TrimSpace(l.src[toks[0].pos.Offset:toks[len(toks)-1].end])
}

// value returns the text of a value: the contents of a lone string literal or
// otherwise the source text as written.
func (l *lexer) value(toks []token) string {
	if len(toks) == 1 && (toks[0].r == scanner.String || toks[0].r == scanner.RawString) {
		if s, err := strconv.Unquote(toks[0].text); err == nil {
			return s
		}
	}
	return l.span(toks)
}

var closers = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

// isArrow returns true if toks[i] is the '>' of a "->".
func isArrow(toks []token, i int) bool {
	return toks[i].r == '>' && i > 0 && toks[i-1].r == '-' && toks[i-1].end == toks[i].pos.Offset
}

// splitTopLevel splits toks at every sep that is not nested inside brackets.
// It returns the parts along with the separators between them. It reports an
// error if the brackets are unbalanced.
func splitTopLevel(toks []token, sep rune) ([][]token, []token, *ParseError) {
	var parts [][]token
	var seps []token
	var stack []token
	start := 0
	for i, t := range toks {
		if _, ok := closers[t.r]; ok {
			stack = append(stack, t)
			continue
		}
		switch t.r {
		case ')', ']', '}', '>':
			if isArrow(toks, i) {
				continue
			}
			if len(stack) == 0 || closers[stack[len(stack)-1].r] != t.r {
				return nil, nil, errorf(t.pos, "unexpected %s", t)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if t.r == sep && len(stack) == 0 {
			parts = append(parts, toks[start:i])
			seps = append(seps, t)
			start = i + 1
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, nil, errorf(open.pos, "unclosed %s", open)
	}
	parts = append(parts, toks[start:])
	return parts, seps, nil
}

// splitFirst splits toks at the first sep that is not nested inside brackets.
// The given tokens must be balanced.
func splitFirst(toks []token, sep rune) (before, after []token, found bool) {
	depth := 0
	for i, t := range toks {
		if _, ok := closers[t.r]; ok {
			depth++
			continue
		}
		switch t.r {
		case ')', ']', '}', '>':
			if !isArrow(toks, i) {
				depth--
			}
			continue
		}
		if t.r == sep && depth == 0 {
			return toks[:i], toks[i+1:], true
		}
	}
	return toks, nil, false
}

// sepPos returns a position to report for the empty part at index i.
func sepPos(seps []token, i int) scanner.Position {
	if i > 0 {
		return seps[i-1].pos
	}
	return seps[0].pos
}
