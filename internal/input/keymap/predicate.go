package keymap

import (
	"fmt"
	"strings"
	"unicode"
)

// Predicate is a compiled context expression.
type Predicate interface {
	// Eval reports whether the predicate holds for the stack, whose last
	// element is the innermost frame.
	Eval(stack []Context) bool

	String() string
}

type identPredicate struct {
	name string
}

func (p identPredicate) Eval(stack []Context) bool {
	return len(stack) > 0 && stack[len(stack)-1].Has(p.name)
}

func (p identPredicate) String() string { return p.name }

type equalPredicate struct {
	key, value string
	negate     bool
}

func (p equalPredicate) Eval(stack []Context) bool {
	if len(stack) == 0 {
		return p.negate
	}
	v, ok := stack[len(stack)-1].Get(p.key)
	return (ok && v == p.value) != p.negate
}

func (p equalPredicate) String() string {
	if p.negate {
		return p.key + " != " + p.value
	}
	return p.key + " == " + p.value
}

type notPredicate struct {
	inner Predicate
}

func (p notPredicate) Eval(stack []Context) bool { return !p.inner.Eval(stack) }

func (p notPredicate) String() string { return "!" + wrap(p.inner) }

type andPredicate struct {
	left, right Predicate
}

func (p andPredicate) Eval(stack []Context) bool {
	return p.left.Eval(stack) && p.right.Eval(stack)
}

func (p andPredicate) String() string { return wrap(p.left) + " && " + wrap(p.right) }

type orPredicate struct {
	left, right Predicate
}

func (p orPredicate) Eval(stack []Context) bool {
	return p.left.Eval(stack) || p.right.Eval(stack)
}

func (p orPredicate) String() string { return wrap(p.left) + " || " + wrap(p.right) }

// childPredicate requires child to hold for the stack and parent to hold
// for some strictly enclosing prefix of it.
type childPredicate struct {
	parent, child Predicate
}

func (p childPredicate) Eval(stack []Context) bool {
	if len(stack) < 2 || !p.child.Eval(stack) {
		return false
	}
	for i := len(stack) - 1; i >= 1; i-- {
		if p.parent.Eval(stack[:i]) {
			return true
		}
	}
	return false
}

func (p childPredicate) String() string { return p.parent.String() + " > " + p.child.String() }

func wrap(p Predicate) string {
	switch p.(type) {
	case identPredicate, notPredicate:
		return p.String()
	default:
		return "(" + p.String() + ")"
	}
}

// ParsePredicate compiles a context expression.
func ParsePredicate(src string) (Predicate, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidContext)
	}

	p := &predicateParser{src: src, toks: toks}
	pred, err := p.parseChild()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf("unexpected %q", p.toks[p.pos].text)
	}
	return pred, nil
}

// MustParsePredicate is like ParsePredicate but panics on error.
func MustParsePredicate(src string) Predicate {
	p, err := ParsePredicate(src)
	if err != nil {
		panic(err)
	}
	return p
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNot
	tokAnd
	tokOr
	tokEq
	tokNe
	tokGt
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		two := ""
		if i+1 < len(src) {
			two = src[i : i+2]
		}

		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case two == "&&":
			toks = append(toks, token{tokAnd, two, i})
			i += 2
		case two == "||":
			toks = append(toks, token{tokOr, two, i})
			i += 2
		case two == "==":
			toks = append(toks, token{tokEq, two, i})
			i += 2
		case two == "!=":
			toks = append(toks, token{tokNe, two, i})
			i += 2
		case c == '!':
			toks = append(toks, token{tokNot, "!", i})
			i++
		case c == '>':
			toks = append(toks, token{tokGt, ">", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case isIdentRune(rune(c)):
			start := i
			for i < len(src) && isIdentRune(rune(src[i])) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d in %q", ErrInvalidContext, c, i, src)
		}
	}
	return toks, nil
}

type predicateParser struct {
	src  string
	toks []token
	pos  int
}

func (p *predicateParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *predicateParser) accept(kind tokenKind) bool {
	if t, ok := p.peek(); ok && t.kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *predicateParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s in %q", ErrInvalidContext, fmt.Sprintf(format, args...), p.src)
}

func (p *predicateParser) parseChild() (Predicate, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.accept(tokGt) {
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = childPredicate{parent: left, child: right}
	}
	return left, nil
}

func (p *predicateParser) parseOr() (Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orPredicate{left: left, right: right}
	}
	return left, nil
}

func (p *predicateParser) parseAnd() (Predicate, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = andPredicate{left: left, right: right}
	}
	return left, nil
}

func (p *predicateParser) parseEquality() (Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	t, ok := p.peek()
	if !ok || (t.kind != tokEq && t.kind != tokNe) {
		return left, nil
	}
	p.pos++

	ident, isIdent := left.(identPredicate)
	if !isIdent {
		return nil, p.errorf("left side of %s must be an identifier", t.text)
	}
	rhs, ok := p.peek()
	if !ok || rhs.kind != tokIdent {
		return nil, p.errorf("expected value after %s", t.text)
	}
	p.pos++
	return equalPredicate{key: ident.name, value: rhs.text, negate: t.kind == tokNe}, nil
}

func (p *predicateParser) parseUnary() (Predicate, error) {
	if p.accept(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notPredicate{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *predicateParser) parsePrimary() (Predicate, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokIdent:
		p.pos++
		return identPredicate{name: t.text}, nil
	case tokLParen:
		p.pos++
		inner, err := p.parseChild()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, p.errorf("missing )")
		}
		return inner, nil
	default:
		return nil, p.errorf("unexpected %q", t.text)
	}
}

// normalizeContext treats blank context strings as absent.
func normalizeContext(s string) string {
	return strings.TrimSpace(s)
}
