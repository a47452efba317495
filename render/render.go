package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revelaction/qconcept/eval"
	"github.com/revelaction/qconcept/extract"
	sent "github.com/revelaction/qconcept/sentence"
	"github.com/revelaction/qconcept/stat"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

func SupportedFormats() []string {
	return []string{FormatText, FormatJSON}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("70"))
	conceptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("70"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("145"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
)

// Renderer writes evaluation reports, classifications and corpus statistics.
type Renderer interface {
	Report(r eval.Report) error
	Result(question string, r extract.Result) error
	Stats(s stat.Stats) error
}

// New returns the renderer of format writing to w.
func New(format string, w io.Writer, hasColor bool) (Renderer, error) {
	switch format {
	case "", FormatText:
		r := NewTextRenderer(w)
		r.HasColor = hasColor
		return r, nil
	case FormatJSON:
		return NewJSONRenderer(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, supported: %s", format, strings.Join(SupportedFormats(), ", "))
}

type TextRenderer struct {
	W io.Writer

	HasColor bool
}

var _ Renderer = (*TextRenderer)(nil)

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

// Report prints the metrics block of one policy:
//
//	Results for NER:
//	Accuracy = 0.7500
//	Precision = 1.0000
//	Recall = 0.5000
//	F-Measure = 0.6667
//
// Undefined metrics print as NaN.
func (r *TextRenderer) Report(rep eval.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.style(headerStyle, "Results for "+rep.Policy+":"))
	fmt.Fprintf(&b, "Accuracy = %.4f\n", float64(rep.Accuracy))
	fmt.Fprintf(&b, "Precision = %.4f\n", float64(rep.Precision))
	fmt.Fprintf(&b, "Recall = %.4f\n", float64(rep.Recall))
	fmt.Fprintf(&b, "F-Measure = %.4f\n", float64(rep.FMeasure))

	if rep.Skipped > 0 {
		fmt.Fprintf(&b, "%s\n", r.style(warnStyle, fmt.Sprintf("Skipped %d of %d questions", rep.Skipped, rep.Questions)))
	}

	_, err := io.WriteString(r.W, b.String())
	return err
}

// Result prints the question followed by its concepts and not-concepts.
func (r *TextRenderer) Result(question string, res extract.Result) error {
	concepts := make([]string, len(res.Concepts))
	for i, c := range res.Concepts {
		concepts[i] = r.style(conceptStyle, c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", question)
	fmt.Fprintf(&b, "  concepts:     %s\n", strings.Join(concepts, ", "))
	fmt.Fprintf(&b, "  not concepts: %s\n", r.style(mutedStyle, strings.Join(res.NotConcepts, ", ")))

	_, err := io.WriteString(r.W, b.String())
	return err
}

func (r *TextRenderer) Stats(s stat.Stats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Num questions %d, num sentences %d, num tokens %d\n", s.NumQuestions, s.NumSentences, s.NumTokens)
	fmt.Fprintf(&b, "Num tokens per question %.2f\n", s.TokensPerQuestionMean)
	fmt.Fprintf(&b, "Num entity tokens %d, num scorable tokens %d\n", s.NumEntityTokens, s.NumScorableTokens)

	tags := make([]sent.EntityTag, 0, len(s.EntityDis))
	for tag := range s.EntityDis {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	for _, tag := range tags {
		fmt.Fprintf(&b, "  %-13s %d\n", tag, s.EntityDis[tag])
	}

	_, err := io.WriteString(r.W, b.String())
	return err
}

func (r *TextRenderer) style(s lipgloss.Style, text string) string {
	if !r.HasColor {
		return text
	}
	return s.Render(text)
}
