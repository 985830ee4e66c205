package grammar

// Production is a named rule. It matches exactly what its body matches and
// returns the body's node unchanged; the name only shows up in descriptions.
type Production struct {
	name string
	body Rule
}

// Define names body.
func Define(name string, body Rule) *Production {
	return &Production{name: name, body: body}
}

// Name returns the production name.
func (p *Production) Name() string { return p.name }

// Body returns the rule the production stands for.
func (p *Production) Body() Rule { return p.body }

func (p *Production) Parse(c *Cursor) (Node, bool) {
	return p.body.Parse(c)
}

// Describe returns the production name, so enclosing rules refer to it by
// name instead of expanding it.
func (p *Production) Describe() string { return p.name }

// Definition renders the production as "name ::= body".
func (p *Production) Definition() string {
	return p.name + " ::= " + p.body.Describe()
}
