package browser

import (
	"context"
	"fmt"

	"github.com/openreach/formpilot/internal/engine/page"
)

// element implements page.Field as a registry index into the frame's latest
// snapshot.
type element struct {
	frame *frame
	index int
	meta  page.FieldMeta
}

func (e *element) Meta() page.FieldMeta { return e.meta }

// SetValue writes the value natively and fires input/change so framework
// bindings pick it up.
func (e *element) SetValue(ctx context.Context, value string) error {
	return e.do(ctx, setValueScript(e.frame.root, e.index, value), "set value")
}

// SelectValue picks a select option by value.
func (e *element) SelectValue(ctx context.Context, value string) error {
	return e.do(ctx, selectValueScript(e.frame.root, e.index, value), "select option")
}

// Check toggles a checkbox or radio on via a real click.
func (e *element) Check(ctx context.Context) error {
	return e.do(ctx, checkScript(e.frame.root, e.index), "check")
}

func (e *element) do(ctx context.Context, script, action string) error {
	var ok bool
	if err := e.frame.s.eval(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to %s on element %d (%s): node gone or rejected value",
			action, e.index, e.meta.Name)
	}
	return nil
}
