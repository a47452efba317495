package main

import (
	"context"
	"fmt"

	"github.com/revelaction/qconcept/file"
	"github.com/revelaction/qconcept/render"
	"github.com/revelaction/qconcept/stat"
)

func statCommand(ctx context.Context, rt *Runtime, opts StatOptions, ui UI) error {
	questions, err := file.ReadQuestions(opts.Questions)
	if err != nil {
		return err
	}

	r, err := render.New(opts.Format, ui.Out, false)
	if err != nil {
		return err
	}

	ann, err := rt.Annotator()
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	for i, text := range questions {
		if text == "" {
			continue
		}

		q, err := ann.Annotate(ctx, text)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		hdl.Aggregate(q)
	}

	return r.Stats(hdl.Get())
}
