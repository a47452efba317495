package main

import (
	"context"

	"github.com/revelaction/qconcept/query"
	"github.com/revelaction/qconcept/render"
)

func askCommand(ctx context.Context, rt *Runtime, opts AskOptions, ui UI) error {
	r := render.NewTextRenderer(ui.Out)
	r.HasColor = !opts.NoColor

	h := query.NewHandler(rt.Extractor, r)
	h.Out = ui.Out
	return h.Run(ctx, opts.Policy)
}
