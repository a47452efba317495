package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/qconcept/annotate"
	"github.com/revelaction/qconcept/annotate/transformer"
	"github.com/revelaction/qconcept/config"
	"github.com/revelaction/qconcept/extract"
	"github.com/revelaction/qconcept/logging"
	"github.com/revelaction/qconcept/storage"
	"github.com/revelaction/qconcept/storage/cache"
	"github.com/revelaction/qconcept/storage/filesystem"
	"github.com/revelaction/qconcept/storage/sqlite/zombiezen"
)

// Runtime owns the capabilities of one command run. The ontology is opened
// on first use; the lexicon annotator is shared, transformer annotators are
// built per caller.
type Runtime struct {
	cfg    config.Config
	logger *slog.Logger

	mu      sync.Mutex
	senses  storage.SenseReader
	lexicon *annotate.Lexicon
	closers []io.Closer
}

func NewRuntime(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{cfg: cfg, logger: logger}
}

// withRuntime loads the configuration, runs fn and releases the runtime.
func withRuntime(c *cli.Context, ui UI, fn func(*Runtime) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	rt := NewRuntime(cfg, logging.New(ui.Err, level))
	err = fn(rt)
	return errors.Join(err, rt.Close())
}

func (rt *Runtime) Close() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// Senses returns the cached ontology reader.
func (rt *Runtime) Senses() (storage.SenseReader, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.senses != nil {
		return rt.senses, nil
	}

	r, closer, err := NewSenseReader(rt.cfg.Ontology)
	if err != nil {
		return nil, err
	}

	rt.closers = append(rt.closers, closer)
	rt.senses = cache.NewReader(r, time.Duration(rt.cfg.CacheTTL))
	rt.logger.Debug("ontology opened", "path", rt.cfg.Ontology)
	return rt.senses, nil
}

// NewSenseReader opens a WordNet dictionary directory or a SQLite file.
func NewSenseReader(path string) (storage.SenseReader, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ontology not found: %s", path)
	}

	if info.IsDir() {
		s, err := filesystem.NewSenseStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}

	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, nil, err
	}
	return zombiezen.NewSenseStore(pool), pool, nil
}

// Annotator returns the shared lexicon annotator, or a new transformer
// annotator over it.
func (rt *Runtime) Annotator() (annotate.Annotator, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.lexicon == nil {
		lex := annotate.NewLexicon()
		if rt.cfg.Gazetteer != "" {
			if err := lex.Recognizer.LoadFile(rt.cfg.Gazetteer); err != nil {
				return nil, err
			}
		}
		rt.lexicon = lex
	}

	if rt.cfg.Annotator != config.AnnotatorTransformer {
		return rt.lexicon, nil
	}

	a, err := transformer.New(transformer.Config{
		NERModel: rt.cfg.NERModel,
		POSModel: rt.cfg.POSModel,
		ModelDir: rt.cfg.ModelDir,
		OnnxFile: rt.cfg.OnnxFile,
	}, rt.lexicon)
	if err != nil {
		return nil, err
	}

	rt.closers = append(rt.closers, a)
	return a, nil
}

// Extractor builds the extractor of policy p. The ontology is only opened
// for policies that need it.
func (rt *Runtime) Extractor(p extract.Policy) (extract.Extractor, error) {
	ann, err := rt.Annotator()
	if err != nil {
		return nil, err
	}

	var senses storage.SenseReader
	if p != extract.PolicyNE {
		if senses, err = rt.Senses(); err != nil {
			return nil, err
		}
	}

	return extract.New(p, ann, senses, extract.WithLogger(rt.logger.With("policy", p.Label())))
}
