package main

import (
	"context"
	"fmt"

	"github.com/revelaction/qconcept/render"
)

func classifyCommand(ctx context.Context, rt *Runtime, opts ClassifyOptions, ui UI) error {
	r, err := render.New(opts.Format, ui.Out, !opts.NoColor)
	if err != nil {
		return err
	}

	x, err := rt.Extractor(opts.Policy)
	if err != nil {
		return err
	}

	for _, q := range opts.Questions {
		res, err := x.Classify(ctx, q)
		if err != nil {
			return fmt.Errorf("question %q: %w", q, err)
		}

		if err := r.Result(q, res); err != nil {
			return err
		}
	}

	return nil
}
