package apnconfig

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gopetri/apn/adt"
)

// tokenType enumerates the lexical classes recognized by the term-text
// tokenizer, in the style of the teacher's parser.TokenType.
type tokenType int

const (
	tokIdent tokenType = iota
	tokOpenParen
	tokCloseParen
	tokComma
	tokEOF
)

type token struct {
	typ tokenType
	val string
	pos int
}

// tokenize splits a term-text expression like "add(x, succ(y))" into
// identifiers and structural punctuation. Whitespace is insignificant.
func tokenize(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{typ: tokOpenParen, val: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{typ: tokCloseParen, val: ")", pos: i})
			i++
		case r == ',':
			toks = append(toks, token{typ: tokComma, val: ",", pos: i})
			i++
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_' || runes[i] == '.') {
				i++
			}
			toks = append(toks, token{typ: tokIdent, val: string(runes[start:i]), pos: start})
		default:
			return nil, fmt.Errorf("term text %q: unexpected character %q at position %d", src, r, i)
		}
	}
	toks = append(toks, token{typ: tokEOF, pos: len(runes)})
	return toks, nil
}

// termParser is a recursive-descent parser over a token stream, resolving
// identifiers against a caller-supplied sort registry.
type termParser struct {
	toks    []token
	pos     int
	sorts   map[string]*adt.Sort
	varSort *adt.Sort // sort new free variables are declared on, when provided
}

// ParseTerm parses a term-text expression such as "nat.add(nat.zero(), x)"
// or the unqualified "add(zero(), x)" form, resolving operation and
// variable names against sorts. Every operation name must be declared on
// exactly one sort in sorts, or be written as "<sort>.<name>(...)" to
// disambiguate. Bare identifiers not matching any declared operation of
// arity zero are treated as variable references: an existing declared
// variable of that name is reused if defaultVarSort declares one, otherwise
// a fresh variable is declared on defaultVarSort.
func ParseTerm(text string, sorts map[string]*adt.Sort, defaultVarSort *adt.Sort) (*adt.Term, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &termParser{toks: toks, sorts: sorts, varSort: defaultVarSort}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.current().typ != tokEOF {
		return nil, fmt.Errorf("term text %q: unexpected trailing input at position %d", text, p.current().pos)
	}
	return term, nil
}

func (p *termParser) current() token { return p.toks[p.pos] }

func (p *termParser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *termParser) parseTerm() (*adt.Term, error) {
	tok := p.current()
	if tok.typ != tokIdent {
		return nil, fmt.Errorf("expected an identifier at position %d, found %q", tok.pos, tok.val)
	}
	p.advance()

	name := tok.val
	hostName := ""
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		hostName, name = name[:idx], name[idx+1:]
	}

	if p.current().typ != tokOpenParen {
		return p.resolveNullary(hostName, name, tok.pos)
	}

	p.advance() // consume '('
	var args []*adt.Term
	if p.current().typ != tokCloseParen {
		for {
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().typ == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.current().typ != tokCloseParen {
		return nil, fmt.Errorf("expected ')' at position %d", p.current().pos)
	}
	p.advance()

	op, err := p.resolveOperation(hostName, name)
	if err != nil {
		return nil, err
	}
	return op.New(args...)
}

// resolveNullary handles a bare identifier with no parentheses: either a
// zero-arity operation or a variable reference.
func (p *termParser) resolveNullary(hostName, name string, pos int) (*adt.Term, error) {
	if op, err := p.resolveOperation(hostName, name); err == nil && op.Arity() == 0 {
		return op.New()
	}
	if hostName != "" {
		sort, ok := p.sorts[hostName]
		if !ok {
			return nil, fmt.Errorf("unknown sort %q at position %d", hostName, pos)
		}
		if v, ok := sort.Variable(name); ok {
			return v.New(), nil
		}
		v, err := sort.DeclareVariable(name)
		if err != nil {
			return nil, err
		}
		return v.New(), nil
	}
	if p.varSort == nil {
		return nil, fmt.Errorf("identifier %q at position %d is neither a declared nullary operation nor qualified with a sort", name, pos)
	}
	if v, ok := p.varSort.Variable(name); ok {
		return v.New(), nil
	}
	v, err := p.varSort.DeclareVariable(name)
	if err != nil {
		return nil, err
	}
	return v.New(), nil
}

// resolveOperation finds the operation named name, optionally qualified by
// hostName, searching every sort in the registry when hostName is empty.
func (p *termParser) resolveOperation(hostName, name string) (*adt.Operation, error) {
	if hostName != "" {
		sort, ok := p.sorts[hostName]
		if !ok {
			return nil, fmt.Errorf("unknown sort %q", hostName)
		}
		op, ok := sort.Operation(name)
		if !ok {
			return nil, fmt.Errorf("sort %q declares no operation %q", hostName, name)
		}
		return op, nil
	}
	var found *adt.Operation
	for _, sort := range p.sorts {
		if op, ok := sort.Operation(name); ok {
			if found != nil {
				return nil, fmt.Errorf("operation %q is ambiguous across multiple sorts; qualify it as <sort>.%s", name, name)
			}
			found = op
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no sort declares an operation named %q", name)
	}
	return found, nil
}
