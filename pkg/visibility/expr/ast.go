package expr

import "github.com/goliatone/go-jobform/pkg/visibility"

type node interface {
	eval(ctx visibility.Context) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

// literal is a right-hand operand. Numbers are parsed once at compile time.
type literal struct {
	kind   literalKind
	text   string
	number float64
	flag   bool
}

func (l literal) matches(value any) bool {
	switch l.kind {
	case litNull:
		return value == nil
	case litBool:
		got, _ := coerceBool(value)
		return got == l.flag
	case litNumber:
		got, ok := coerceNumber(value)
		return ok && got == l.number
	default:
		return coerceString(value) == l.text
	}
}

type compareNode struct {
	identifier string
	negate     bool
	operand    literal
}

func (n compareNode) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)
	return n.operand.matches(value) != n.negate, nil
}

// inNode matches when the identifier equals any member of a literal list.
type inNode struct {
	identifier string
	members    []literal
}

func (n inNode) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)
	for _, member := range n.members {
		if member.matches(value) {
			return true, nil
		}
	}
	return false, nil
}

type truthyNode struct{ identifier string }

func (n truthyNode) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

