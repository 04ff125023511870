package typesystem

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads the textual type syntax used by fixture files and the
// package catalog:
//
//	Int | List<Int> | Result<a, String> | a | (Int, a) -> Bool
//
// Lower-case names are type variables.
func Parse(s string) (Type, error) {
	p := &typeParser{input: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.input[p.pos:], p.pos, s)
	}
	return t, nil
}

// MustParse is Parse for signatures known to be valid.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d in type %q", c, p.pos, p.input)
	}
	p.pos++
	return nil
}

func (p *typeParser) parseType() (Type, error) {
	if p.peek() == '(' {
		return p.parseFunc()
	}
	name := p.parseName()
	if name == "" {
		return nil, fmt.Errorf("expected type name at offset %d in %q", p.pos, p.input)
	}
	if unicode.IsLower(rune(name[0])) {
		return TVar{Name: name}, nil
	}
	if p.peek() != '<' {
		return TCon{Name: name}, nil
	}
	p.pos++
	args, err := p.parseList('>')
	if err != nil {
		return nil, err
	}
	return TApp{Constructor: TCon{Name: name}, Args: args}, nil
}

func (p *typeParser) parseFunc() (Type, error) {
	p.pos++
	params, err := p.parseList(')')
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.input[p.pos:], "->") {
		return nil, fmt.Errorf("expected -> at offset %d in type %q", p.pos, p.input)
	}
	p.pos += 2
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return TFunc{Params: params, ReturnType: ret}, nil
}

func (p *typeParser) parseList(closing byte) ([]Type, error) {
	var types []Type
	if p.peek() == closing {
		p.pos++
		return types, nil
	}
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return types, nil
		default:
			return nil, fmt.Errorf("expected ',' or %q at offset %d in type %q", closing, p.pos, p.input)
		}
	}
}

func (p *typeParser) parseName() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '\'' {
			break
		}
		p.pos++
	}
	return strings.TrimPrefix(p.input[start:p.pos], "'")
}
