package main

import (
	"context"
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage/filesystem"
	"github.com/revelaction/qconcept/storage/sqlite/zombiezen"
)

const importBatch = 1000

func importCommand(ctx context.Context, opts ImportOptions, ui UI) error {
	src, err := filesystem.NewSenseStore(opts.From)
	if err != nil {
		return err
	}
	defer src.Close()

	total, err := src.Count(ctx, sense.Noun)
	if err != nil {
		return err
	}

	pool, err := zombiezen.NewPool(opts.To)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreateSenseTables(ctx, pool); err != nil {
		return err
	}

	dst := zombiezen.NewSenseStore(pool)

	fmt.Fprintf(ui.Out, "Reading senses from %s...\n", opts.From)

	var bar *uiprogress.Bar
	if !opts.NoProgress && total > 0 {
		progress := uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(total)
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	count := 0
	batch := make([]sense.Entry, 0, importBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := dst.WriteBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to write senses after %d: %w", count, err)
		}
		count += len(batch)
		batch = batch[:0]
		if bar != nil {
			_ = bar.Set(count)
		}
		return nil
	}

	err = src.Walk(ctx, sense.Noun, func(e sense.Entry) error {
		batch = append(batch, e)
		if len(batch) < importBatch {
			return nil
		}
		return flush()
	})
	if err != nil {
		return err
	}

	if err := flush(); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d senses from %s to %s\n", count, opts.From, opts.To)
	return nil
}
