// Package transformer annotates questions with ONNX token classification
// models run by hugot: a NER model and, optionally, a POS model.
package transformer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/revelaction/qconcept/annotate"
	sent "github.com/revelaction/qconcept/sentence"
)

type Config struct {
	// NERModel is a local model directory or a Hugging Face model name
	NERModel string

	// POSModel is optional. Without it tokens keep the tags of the
	// fallback annotator.
	POSModel string

	// ModelDir receives downloaded models
	ModelDir string

	// OnnxFile is the model file inside a downloaded repository
	OnnxFile string
}

// Annotator runs the models over the words of a fallback annotator and
// overrides its tags. Not safe for concurrent use.
type Annotator struct {
	session  *hugot.Session
	ner      *pipelines.TokenClassificationPipeline
	pos      *pipelines.TokenClassificationPipeline
	fallback annotate.Annotator
}

var _ annotate.Annotator = (*Annotator)(nil)

// Label is a model prediction over the byte range [Start, End) of the text.
type Label struct {
	Label string
	Start int
	End   int
}

func New(cfg Config, fallback annotate.Annotator) (*Annotator, error) {
	if cfg.NERModel == "" {
		return nil, fmt.Errorf("no NER model configured")
	}

	nerPath, err := PrepareModel(cfg.NERModel, cfg.ModelDir, cfg.OnnxFile)
	if err != nil {
		return nil, err
	}

	posPath := ""
	if cfg.POSModel != "" {
		posPath, err = PrepareModel(cfg.POSModel, cfg.ModelDir, cfg.OnnxFile)
		if err != nil {
			return nil, err
		}
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	a := &Annotator{session: session, fallback: fallback}

	a.ner, err = newPipeline(session, nerPath, "ner-pipeline", pipelines.WithIgnoreLabels([]string{"O"}))
	if err != nil {
		return nil, destroy(session, fmt.Errorf("failed to create NER pipeline: %w", err))
	}

	if posPath != "" {
		a.pos, err = newPipeline(session, posPath, "pos-pipeline")
		if err != nil {
			return nil, destroy(session, fmt.Errorf("failed to create POS pipeline: %w", err))
		}
	}

	return a, nil
}

func newPipeline(session *hugot.Session, path, name string, opts ...hugot.TokenClassificationOption) (*pipelines.TokenClassificationPipeline, error) {
	config := hugot.TokenClassificationConfig{
		ModelPath: path,
		Name:      name,
		Options:   append([]hugot.TokenClassificationOption{pipelines.WithSimpleAggregation()}, opts...),
	}
	return hugot.NewPipeline(session, config)
}

func destroy(session *hugot.Session, err error) error {
	if destroyErr := session.Destroy(); destroyErr != nil {
		return fmt.Errorf("%w (cleanup error: %v)", err, destroyErr)
	}
	return err
}

func (a *Annotator) Close() error {
	return a.session.Destroy()
}

func (a *Annotator) Annotate(ctx context.Context, text string) (sent.Question, error) {
	q, err := a.fallback.Annotate(ctx, text)
	if err != nil {
		return sent.Question{}, err
	}

	if err := ctx.Err(); err != nil {
		return sent.Question{}, err
	}

	entities, err := run(a.ner, text)
	if err != nil {
		return sent.Question{}, fmt.Errorf("failed to run NER: %w", err)
	}

	var tags []Label
	if a.pos != nil {
		tags, err = run(a.pos, text)
		if err != nil {
			return sent.Question{}, fmt.Errorf("failed to run POS: %w", err)
		}
	}

	for si := range q.Sentences {
		tokens := q.Sentences[si].Tokens
		Align(tokens, entities, func(t *sent.Token, label string) {
			if tag, ok := EntityTag(label); ok {
				t.Ner = string(tag)
			}
		})
		Align(tokens, tags, func(t *sent.Token, label string) {
			t.Pos = normalizeLabel(label)
		})
	}

	return q, nil
}

func run(p *pipelines.TokenClassificationPipeline, text string) ([]Label, error) {
	result, err := p.RunPipeline([]string{text})
	if err != nil {
		return nil, err
	}

	if len(result.Entities) == 0 {
		return nil, nil
	}

	labels := make([]Label, 0, len(result.Entities[0]))
	for _, e := range result.Entities[0] {
		labels = append(labels, Label{
			Label: e.Entity,
			Start: int(e.Start),
			End:   int(e.End),
		})
	}
	return labels, nil
}

// Align calls set for every token whose byte range overlaps a label.
func Align(tokens []sent.Token, labels []Label, set func(*sent.Token, string)) {
	for i := range tokens {
		start := tokens[i].Idx
		end := start + len(tokens[i].Text)
		for _, l := range labels {
			if l.Start < end && start < l.End {
				set(&tokens[i], l.Label)
				break
			}
		}
	}
}

// EntityTag maps a model label (CoNLL or OntoNotes, with or without BIO
// prefix) to an entity tag. Unmapped labels such as MISC are not ok.
func EntityTag(label string) (sent.EntityTag, bool) {
	switch strings.ToUpper(normalizeLabel(label)) {
	case "PER", "PERSON":
		return sent.Person, true
	case "LOC", "LOCATION", "GPE", "FAC":
		return sent.Location, true
	case "ORG", "ORGANIZATION":
		return sent.Organization, true
	case "DATE":
		return sent.Date, true
	case "TIME":
		return sent.Time, true
	case "PERCENT":
		return sent.Percent, true
	case "CARDINAL", "QUANTITY", "NUMBER":
		return sent.Number, true
	}
	return sent.Outside, false
}

// normalizeLabel removes B- and I- prefixes from labels
func normalizeLabel(label string) string {
	if strings.HasPrefix(label, "B-") || strings.HasPrefix(label, "I-") {
		return label[2:]
	}
	return label
}

// PrepareModel returns the path of a model. An existing directory is used
// as is, anything else is downloaded into modelDir unless already there.
func PrepareModel(model, modelDir, onnxFile string) (string, error) {
	if info, err := os.Stat(model); err == nil && info.IsDir() {
		return model, nil
	}

	if modelDir == "" {
		modelDir = "./models"
	}
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(model, "/", "_"))

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	downloadOptions := hugot.NewDownloadOptions()
	if onnxFile != "" {
		downloadOptions.OnnxFilePath = onnxFile
	}
	downloadedPath, err := hugot.DownloadModel(model, modelDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}

	return downloadedPath, nil
}
