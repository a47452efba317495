package main

import (
	"context"
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/qconcept/eval"
	"github.com/revelaction/qconcept/extract"
	"github.com/revelaction/qconcept/file"
	"github.com/revelaction/qconcept/render"
)

func evalCommand(ctx context.Context, rt *Runtime, opts EvalOptions, ui UI) error {
	questions, err := file.ReadQuestions(opts.Questions)
	if err != nil {
		return err
	}

	concepts, err := file.ReadConcepts(opts.Concepts)
	if err != nil {
		return err
	}

	r, err := render.New(opts.Format, ui.Out, !opts.NoColor)
	if err != nil {
		return err
	}

	workers := opts.Workers
	if workers == 0 {
		workers = rt.cfg.Workers
	}

	for _, p := range opts.Policies {
		rep, err := evalPolicy(ctx, rt, p, questions, concepts, workers, opts.NoProgress, ui)
		if err != nil {
			return fmt.Errorf("policy %s: %w", p.Label(), err)
		}

		if err := r.Report(rep); err != nil {
			return err
		}
	}

	return nil
}

// evalPolicy runs a fresh evaluator over the corpus.
func evalPolicy(ctx context.Context, rt *Runtime, p extract.Policy, questions []string, concepts [][]string, workers int, noProgress bool, ui UI) (eval.Report, error) {
	opts := []eval.Option{eval.WithLogger(rt.logger.With("policy", p.Label()))}

	if !noProgress && len(questions) > 0 {
		progress := uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()
		defer progress.Stop()

		bar := progress.AddBar(len(questions))
		bar.AppendCompleted()
		bar.PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-8s", p.Label())
		})

		opts = append(opts, eval.WithProgress(func(done, total int) {
			_ = bar.Set(done)
		}))
	}

	ev, err := eval.New(questions, concepts, opts...)
	if err != nil {
		return eval.Report{}, err
	}

	if workers > 1 {
		err = ev.EvalParallel(ctx, workers, func() (extract.Extractor, error) {
			return rt.Extractor(p)
		})
	} else {
		var x extract.Extractor
		if x, err = rt.Extractor(p); err == nil {
			err = ev.Eval(ctx, x)
		}
	}
	if err != nil {
		return eval.Report{}, err
	}

	rep := ev.Report(p.Label())
	rt.logger.Info("evaluation done", "policy", rep.Policy, "run_id", rep.RunID.String(), "questions", rep.Questions, "skipped", rep.Skipped)
	return rep, nil
}
