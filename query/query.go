package query

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/qconcept/extract"
	"github.com/revelaction/qconcept/render"
)

const (
	completionThreshold = 2

	quit = "quit"
)

// InputFunc reads one line. prompt.Input is the default.
type InputFunc func(prefix string, completer prompt.Completer, opts ...prompt.Option) string

type Handler struct {
	Policies []extract.Policy

	// Build returns the extractor of a policy
	Build func(extract.Policy) (extract.Extractor, error)

	Renderer render.Renderer
	Out      io.Writer
	Input    InputFunc
}

func NewHandler(build func(extract.Policy) (extract.Extractor, error), r render.Renderer) *Handler {
	return &Handler{
		Policies: extract.Policies(),
		Build:    build,
		Renderer: r,
		Out:      os.Stdout,
		Input:    prompt.Input,
	}
}

// Run asks for a policy when p is empty, then classifies questions until
// an empty line or quit.
func (h *Handler) Run(ctx context.Context, p extract.Policy) error {
	if p == "" {
		var ok bool
		p, ok = h.choosePolicy()
		if !ok {
			return nil
		}
	}

	x, err := h.Build(p)
	if err != nil {
		return err
	}

	fmt.Fprintf(h.Out, "🔑 Ctrl+P: next policy, 🔧 %s\n", quit)

	current := p
	history := []string{}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		in := h.Input(fmt.Sprintf("%8s ❓ ", current.Label()), h.questionCompleter(&history),
			prompt.OptionTitle("qconcept ask"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(8),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlP,
				Fn: func(buf *prompt.Buffer) {
					p = h.nextPolicy(p)
					fmt.Fprintln(h.Out, "Policy set to: "+p.Label())
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "" || in == quit {
			return nil
		}

		if p != current {
			nx, err := h.Build(p)
			if err != nil {
				fmt.Fprintf(h.Out, "Error: %v\n", err)
				p = current
			} else {
				x, current = nx, p
			}
		}

		history = append(history, in)

		res, err := x.Classify(ctx, in)
		if err != nil {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
			continue
		}

		if err := h.Renderer.Result(in, res); err != nil {
			return err
		}
	}
}

func (h *Handler) choosePolicy() (extract.Policy, bool) {
	for {
		in := strings.TrimSpace(h.Input("  policy ▶ ", h.policyCompleter,
			prompt.OptionTitle("qconcept ask"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
		))

		if in == "" || in == quit {
			return "", false
		}

		p, err := extract.ParsePolicy(in)
		if err != nil {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
			continue
		}

		if !h.registered(p) {
			fmt.Fprintf(h.Out, "Error: policy %s not available\n", p)
			continue
		}

		return p, true
	}
}

func (h *Handler) registered(p extract.Policy) bool {
	for _, r := range h.Policies {
		if r == p {
			return true
		}
	}
	return false
}

// nextPolicy follows the Policies order, wrapping around.
func (h *Handler) nextPolicy(p extract.Policy) extract.Policy {
	for i, r := range h.Policies {
		if r == p {
			return h.Policies[(i+1)%len(h.Policies)]
		}
	}
	return p
}

func (h *Handler) policyCompleter(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	word := strings.ToLower(in.TextBeforeCursor())
	for _, p := range h.Policies {
		if strings.HasPrefix(string(p), word) || strings.HasPrefix(strings.ToLower(p.Label()), word) {
			s = append(s, prompt.Suggest{Text: string(p), Description: p.Description()})
		}
	}
	return s
}

// questionCompleter suggests earlier questions.
func (h *Handler) questionCompleter(history *[]string) prompt.Completer {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()
		if len(befCursor) < completionThreshold {
			return s
		}

		seen := map[string]bool{}
		for i := len(*history) - 1; i >= 0; i-- {
			q := (*history)[i]
			if seen[q] || !strings.HasPrefix(q, befCursor) {
				continue
			}
			seen[q] = true
			s = append(s, prompt.Suggest{Text: q})
		}
		return s
	}
}
