package ibis

// SyntaxError occurs when a compact string form can't be parsed.
type SyntaxError struct {
	What  string
	Input string
}

func (e *SyntaxError) Error() string {
	return `could not parse ` + e.What + `: "` + e.Input + `"`
}

// TypeError occurs when a semantic object refers to a predicate,
// sort, or individual that the Domain doesn't know, or when the
// pieces don't fit together.
type TypeError struct {
	Kind   string
	Name   string
	Detail string
}

func (e *TypeError) Error() string {
	s := `unknown ` + e.Kind + ` "` + e.Name + `"`
	if e.Detail != "" {
		s = e.Kind + ` "` + e.Name + `": ` + e.Detail
	}
	return s
}

// ContractViolation occurs when a collaborator (Domain, Database, or
// Grammar) does something it promised not to do.  These errors are
// fatal.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return `contract violation in ` + e.Op + `: ` + e.Detail
}
