// Package parser implements a recursive-descent parser over the token
// stream produced by package lexer, building an *ast.Document with no
// backtracking beyond one token of lookahead.
package parser

import (
	"fmt"

	"github.com/zyxzen/graphqlite/ast"
	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/internal/lexer"
)

type syntaxError string

// Parse lexes and parses a GraphQL request document.
func Parse(src string) (doc *ast.Document, qerr *errors.QueryError) {
	tokens, qerr := lexer.Lex(src)
	if qerr != nil {
		return nil, qerr
	}

	p := &parser{tokens: tokens}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(syntaxError)
			if !ok {
				panic(r)
			}
			qerr = &errors.QueryError{
				Message:   fmt.Sprintf("syntax error: %s", se),
				Locations: []errors.Location{p.peek().Loc},
				Kind:      errors.KindParse,
			}
			doc = nil
		}
	}()

	doc = p.parseDocument()
	return doc, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekKind() lexer.Kind {
	return p.tokens[p.pos].Kind
}

func (p *parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) syntaxError(format string, a ...interface{}) {
	panic(syntaxError(fmt.Sprintf(format, a...)))
}

func (p *parser) expect(k lexer.Kind) lexer.Token {
	t := p.peek()
	if t.Kind != k {
		p.syntaxError("unexpected %q, expecting %s", t.Lexeme, k)
	}
	return p.advance()
}

func (p *parser) expectName(name string) lexer.Token {
	t := p.peek()
	if t.Kind != lexer.NAME || t.Lexeme != name {
		p.syntaxError("unexpected %q, expecting %q", t.Lexeme, name)
	}
	return p.advance()
}

func (p *parser) ident(t lexer.Token) ast.Ident {
	return ast.Ident{Name: t.Lexeme, Loc: t.Loc}
}

func (p *parser) parseDocument() *ast.Document {
	doc := &ast.Document{}
	for p.peekKind() != lexer.EOF {
		switch {
		case p.peekKind() == lexer.LBRACE:
			doc.Operations = append(doc.Operations, p.parseShorthandQuery())
		case p.peekKind() == lexer.NAME && p.peek().Lexeme == "query":
			doc.Operations = append(doc.Operations, p.parseOperation(ast.Query))
		case p.peekKind() == lexer.NAME && p.peek().Lexeme == "mutation":
			doc.Operations = append(doc.Operations, p.parseOperation(ast.Mutation))
		case p.peekKind() == lexer.NAME && p.peek().Lexeme == "subscription":
			doc.Operations = append(doc.Operations, p.parseOperation(ast.Subscription))
		case p.peekKind() == lexer.NAME && p.peek().Lexeme == "fragment":
			doc.Fragments = append(doc.Fragments, p.parseFragmentDefinition())
		default:
			p.syntaxError("unexpected %q, expecting a query, mutation, subscription or fragment", p.peek().Lexeme)
		}
	}
	return doc
}

func (p *parser) parseShorthandQuery() *ast.OperationDefinition {
	loc := p.peek().Loc
	return &ast.OperationDefinition{
		Type:       ast.Query,
		Selections: p.parseSelectionSet(),
		Loc:        loc,
	}
}

func (p *parser) parseOperation(opType ast.OperationType) *ast.OperationDefinition {
	loc := p.advance().Loc // consume "query"/"mutation"/"subscription"
	op := &ast.OperationDefinition{Type: opType, Loc: loc}

	if p.peekKind() == lexer.NAME {
		op.Name = p.ident(p.advance())
	}

	if p.peekKind() == lexer.LPAREN {
		op.Vars = p.parseVariableDefinitions()
	}

	op.Directives = p.parseDirectives()
	op.Selections = p.parseSelectionSet()
	return op
}

func (p *parser) parseVariableDefinitions() []*ast.VariableDefinition {
	var vars []*ast.VariableDefinition
	p.expect(lexer.LPAREN)
	for p.peekKind() != lexer.RPAREN {
		loc := p.peek().Loc
		p.expect(lexer.DOLLAR)
		name := p.ident(p.expect(lexer.NAME))
		p.expect(lexer.COLON)
		typ := p.parseTypeRef()
		var def ast.Value
		if p.peekKind() == lexer.EQUALS {
			p.advance()
			def = p.parseValue(true)
		}
		directives := p.parseDirectives()
		vars = append(vars, &ast.VariableDefinition{
			Var:        name,
			Type:       typ,
			Default:    def,
			Directives: directives,
			Loc:        loc,
		})
	}
	p.expect(lexer.RPAREN)
	return vars
}

func (p *parser) parseTypeRef() ast.TypeRef {
	var t ast.TypeRef
	if p.peekKind() == lexer.LBRACKET {
		loc := p.advance().Loc
		inner := p.parseTypeRef()
		p.expect(lexer.RBRACKET)
		t = &ast.ListTypeRef{OfType: inner, Loc: loc}
	} else {
		name := p.expect(lexer.NAME)
		t = &ast.NamedTypeRef{Ident: p.ident(name)}
	}
	if p.peekKind() == lexer.BANG {
		loc := p.advance().Loc
		return &ast.NonNullTypeRef{OfType: t, Loc: loc}
	}
	return t
}

func (p *parser) parseFragmentDefinition() *ast.FragmentDefinition {
	loc := p.advance().Loc // consume "fragment"
	name := p.ident(p.expect(lexer.NAME))
	p.expectName("on")
	onName := p.ident(p.expect(lexer.NAME))
	directives := p.parseDirectives()
	selections := p.parseSelectionSet()
	return &ast.FragmentDefinition{
		Name:       name,
		On:         &ast.NamedTypeRef{Ident: onName},
		Directives: directives,
		Selections: selections,
		Loc:        loc,
	}
}

func (p *parser) parseSelectionSet() []ast.Selection {
	var sels []ast.Selection
	p.expect(lexer.LBRACE)
	for p.peekKind() != lexer.RBRACE {
		sels = append(sels, p.parseSelection())
	}
	p.expect(lexer.RBRACE)
	return sels
}

func (p *parser) parseSelection() ast.Selection {
	if p.peekKind() == lexer.SPREAD {
		return p.parseSpread()
	}
	return p.parseField()
}

func (p *parser) parseField() *ast.Field {
	f := &ast.Field{}
	first := p.ident(p.expect(lexer.NAME))
	f.Alias = first
	f.Name = first
	f.Loc = first.Loc
	if p.peekKind() == lexer.COLON {
		p.advance()
		f.Name = p.ident(p.expect(lexer.NAME))
	}
	if p.peekKind() == lexer.LPAREN {
		f.Arguments = p.parseArguments()
	}
	f.Directives = p.parseDirectives()
	if p.peekKind() == lexer.LBRACE {
		f.SelectionSet = p.parseSelectionSet()
	}
	return f
}

func (p *parser) parseSpread() ast.Selection {
	loc := p.advance().Loc // consume "..."

	if p.peekKind() == lexer.NAME && p.peek().Lexeme != "on" {
		name := p.ident(p.advance())
		directives := p.parseDirectives()
		return &ast.FragmentSpread{Name: name, Directives: directives, Loc: loc}
	}

	frag := &ast.InlineFragment{Loc: loc}
	if p.peekKind() == lexer.NAME && p.peek().Lexeme == "on" {
		p.advance()
		name := p.ident(p.expect(lexer.NAME))
		frag.On = &ast.NamedTypeRef{Ident: name}
	}
	frag.Directives = p.parseDirectives()
	frag.Selections = p.parseSelectionSet()
	return frag
}

func (p *parser) parseArguments() ast.ArgumentList {
	var args ast.ArgumentList
	p.expect(lexer.LPAREN)
	for p.peekKind() != lexer.RPAREN {
		name := p.ident(p.expect(lexer.NAME))
		p.expect(lexer.COLON)
		value := p.parseValue(false)
		args = append(args, &ast.Argument{Name: name, Value: value})
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *parser) parseDirectives() ast.DirectiveList {
	var directives ast.DirectiveList
	for p.peekKind() == lexer.AT {
		p.advance()
		name := p.ident(p.expect(lexer.NAME))
		var args ast.ArgumentList
		if p.peekKind() == lexer.LPAREN {
			args = p.parseArguments()
		}
		directives = append(directives, &ast.Directive{Name: name, Arguments: args})
	}
	return directives
}

// parseValue implements the literal value grammar of spec §4.3. When
// constOnly is true (variable/field defaults, input object field
// literals embedded in them) a Variable is rejected.
func (p *parser) parseValue(constOnly bool) ast.Value {
	t := p.peek()
	loc := t.Loc

	switch t.Kind {
	case lexer.DOLLAR:
		if constOnly {
			p.syntaxError("variable not allowed in this context")
		}
		p.advance()
		name := p.expect(lexer.NAME)
		return &ast.Variable{Name: name.Lexeme, Loc: loc}

	case lexer.INT:
		p.advance()
		n, err := parseInt(t.Lexeme)
		if err != nil {
			p.syntaxError("invalid integer literal %q", t.Lexeme)
		}
		return &ast.IntValue{Value: n, Loc: loc}

	case lexer.FLOAT:
		p.advance()
		f, err := parseFloat(t.Lexeme)
		if err != nil {
			p.syntaxError("invalid float literal %q", t.Lexeme)
		}
		return &ast.FloatValue{Value: f, Loc: loc}

	case lexer.STRING:
		p.advance()
		return &ast.StringValue{Value: t.Lexeme, Loc: loc}

	case lexer.BOOLEAN:
		p.advance()
		return &ast.BooleanValue{Value: t.BoolValue, Loc: loc}

	case lexer.NULL:
		p.advance()
		return &ast.NullValue{Loc: loc}

	case lexer.NAME:
		p.advance()
		return &ast.EnumValue{Value: t.Lexeme, Loc: loc}

	case lexer.LBRACKET:
		p.advance()
		var values []ast.Value
		for p.peekKind() != lexer.RBRACKET {
			values = append(values, p.parseValue(constOnly))
		}
		p.expect(lexer.RBRACKET)
		return &ast.ListValue{Values: values, Loc: loc}

	case lexer.LBRACE:
		p.advance()
		var fields []*ast.ObjectField
		for p.peekKind() != lexer.RBRACE {
			name := p.ident(p.expect(lexer.NAME))
			p.expect(lexer.COLON)
			value := p.parseValue(constOnly)
			fields = append(fields, &ast.ObjectField{Name: name, Value: value})
		}
		p.expect(lexer.RBRACE)
		return &ast.ObjectValue{Fields: fields, Loc: loc}

	default:
		p.syntaxError("unexpected %q, expecting a value", t.Lexeme)
		panic("unreachable")
	}
}
