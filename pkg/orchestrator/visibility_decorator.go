package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/visibility"
)

func applyVisibility(form *model.FormModel, evaluator visibility.Evaluator, ctx visibility.Context) error {
	if form == nil || evaluator == nil {
		return nil
	}

	filtered, err := visibility.Filter(*form, evaluator, ctx)
	if err != nil {
		return fmt.Errorf("orchestrator: apply visibility: %w", err)
	}
	*form = filtered
	return nil
}

func visibilityContext(options render.RenderOptions) visibility.Context {
	values := options.Values
	if values == nil {
		values = map[string]any{}
	}
	return visibility.Context{Values: values}
}
