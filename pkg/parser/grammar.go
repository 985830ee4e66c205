package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/pgparse/pkg/grammar"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// ErrUnknownRule is returned by Rule for a name that is not a production.
var ErrUnknownRule = errors.New("unknown grammar rule")

func term(k token.Kind) *grammar.TerminalRule { return grammar.Terminal(k) }

func seq(rules ...grammar.Rule) *grammar.SequenceRule { return grammar.Sequence(rules...) }

func alt(rules ...grammar.Rule) *grammar.AlternationRule { return grammar.Alternation(rules...) }

// Productions of the statement grammar. Each one can be used on its own as
// the start rule of a parse.
var (
	Name = grammar.Define("name", alt(term(token.IDENT), term(token.QIDENT)))

	NameList = grammar.Define("name_list", seq(
		Name,
		grammar.ZeroOrMore(seq(term(token.COMMA), Name)),
	))

	DropTable = grammar.Define("drop_table", seq(
		term(token.DROP), term(token.TABLE), term(token.IDENT),
	))

	DropRole = grammar.Define("drop_role", seq(
		term(token.DROP), term(token.ROLE),
		grammar.ZeroOrOne(seq(term(token.IF), term(token.EXISTS))),
		NameList,
	))

	RoleOption = grammar.Define("role_option", alt(
		seq(grammar.ZeroOrOne(term(token.ENCRYPTED)), term(token.PASSWORD), alt(term(token.SCONST), term(token.NULL))),
		seq(term(token.CONNECTION), term(token.LIMIT), SignedNumber),
		seq(term(token.VALID), term(token.UNTIL), term(token.SCONST)),
		seq(term(token.IN), term(token.ROLE), NameList),
		seq(term(token.ADMIN), NameList),
		term(token.INHERIT),
		term(token.IDENT), // SUPERUSER, LOGIN, NOCREATEDB, ...
	))

	CreateRole = grammar.Define("create_role", seq(
		term(token.CREATE), term(token.ROLE), Name,
		grammar.ZeroOrOne(term(token.WITH)),
		grammar.ZeroOrMore(RoleOption),
	))

	SignedNumber = grammar.Define("signed_number", seq(
		grammar.ZeroOrOne(alt(term(token.PLUS), term(token.MINUS))),
		alt(term(token.ICONST), term(token.FCONST)),
	))

	SetValue = grammar.Define("set_value", alt(
		SignedNumber,
		term(token.SCONST),
		term(token.TRUE), term(token.FALSE),
		term(token.ON), term(token.OFF),
		term(token.DEFAULT),
		term(token.IDENT),
	))

	SetVariable = grammar.Define("set_variable", seq(
		term(token.SET),
		grammar.ZeroOrOne(term(token.LOCAL)),
		Name,
		alt(term(token.TO), term(token.EQ)),
		SetValue,
		grammar.ZeroOrMore(seq(term(token.COMMA), SetValue)),
	))

	Statement = grammar.Define("statement", seq(
		alt(DropTable, DropRole, CreateRole, SetVariable),
		term(token.SEMICOLON),
	))

	Program = grammar.Define("program", grammar.ZeroOrMore(Statement))
)

// productions lists every production from the top down.
var productions = []*grammar.Production{
	Program,
	Statement,
	DropTable,
	DropRole,
	CreateRole,
	RoleOption,
	SetVariable,
	SetValue,
	SignedNumber,
	NameList,
	Name,
}

// Productions returns every named production, starting with program.
func Productions() []*grammar.Production {
	out := make([]*grammar.Production, len(productions))
	copy(out, productions)
	return out
}

// Lookup returns the production called name.
func Lookup(name string) (*grammar.Production, bool) {
	for _, p := range productions {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Rule is like Lookup but reports a missing production as an error
// wrapping ErrUnknownRule.
func Rule(name string) (*grammar.Production, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return p, nil
}
