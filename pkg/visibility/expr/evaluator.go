package expr

import (
	"strings"
	"sync"

	"github.com/goliatone/go-jobform/pkg/visibility"
)

// Evaluator is a small, dependency-free visibility evaluator.
//
// Supported forms:
//   - truthiness: `enabled`, `!enabled`
//   - comparisons: `position == "Designer"`, `count != 3`, `note == null`
//   - membership: `position in ("Developer", "Designer")`
//   - composition with `&&`, `||` and parentheses
//
// Identifiers resolve against visibility.Context.Values (dot paths allowed)
// and visibility.Context.Extras via the `extras.` prefix. Compiled rules are
// cached, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	cache sync.Map // rule -> node
}

func New() *Evaluator { return &Evaluator{} }

// Compile parses rule without evaluating it. Use it to reject malformed
// rules when a form is loaded instead of on first keystroke.
func (e *Evaluator) Compile(rule string) error {
	_, err := e.compile(rule)
	return err
}

func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	root, err := e.compile(rule)
	if err != nil {
		return false, err
	}
	if root == nil {
		return true, nil
	}
	return root.eval(ctx)
}

func (e *Evaluator) compile(rule string) (node, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	if cached, ok := e.cache.Load(trimmed); ok {
		return cached.(node), nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	root, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	e.cache.Store(trimmed, root)
	return root, nil
}

var _ visibility.Evaluator = (*Evaluator)(nil)
