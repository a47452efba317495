package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/qconcept/config"
	"github.com/revelaction/qconcept/extract"
	"github.com/revelaction/qconcept/file"
	"github.com/revelaction/qconcept/render"
)

// Set at build time with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "qconcept: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "qconcept",
		Usage:                "extract concepts from natural language questions",
		Version:              BuildTag,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags:                globalFlags(),
		Commands: []*cli.Command{
			evalCmd(ui),
			askCmd(ui),
			classifyCmd(ui),
			statCmd(ui),
			importCmd(ui),
			versionCmd(ui),
			bashCmd(ui),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "JSON configuration file",
			Value:   config.DefaultFile,
			EnvVars: []string{config.EnvPrefix + "CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{config.EnvPrefix + "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "ontology",
			Aliases: []string{"o"},
			Usage:   "WordNet dictionary directory or SQLite file",
			EnvVars: []string{config.EnvPrefix + "ONTOLOGY"},
		},
		&cli.StringFlag{
			Name:    "annotator",
			Usage:   config.AnnotatorLexicon + " or " + config.AnnotatorTransformer,
			EnvVars: []string{config.EnvPrefix + "ANNOTATOR"},
		},
		&cli.StringFlag{
			Name:    "gazetteer",
			Usage:   "file of TAG<tab>phrase named entity lines",
			EnvVars: []string{config.EnvPrefix + "GAZETTEER"},
		},
		&cli.StringFlag{
			Name:    "ner-model",
			Usage:   "NER model directory or Hugging Face name",
			EnvVars: []string{config.EnvPrefix + "NER_MODEL"},
		},
		&cli.StringFlag{
			Name:    "pos-model",
			Usage:   "POS model directory or Hugging Face name",
			EnvVars: []string{config.EnvPrefix + "POS_MODEL"},
		},
	}
}

func policyFlag(multi bool) cli.Flag {
	usage := "policy: ner, wordnet or hybrid"
	if multi {
		return &cli.StringSliceFlag{Name: "policy", Aliases: []string{"p"}, Usage: usage + ", repeatable (default all)"}
	}
	return &cli.StringFlag{Name: "policy", Aliases: []string{"p"}, Usage: usage}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.FormatText, Usage: "text or json"}
}

func noColorFlag() cli.Flag {
	return &cli.BoolFlag{Name: "no-color", Usage: "disable colored output"}
}

func evalCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "eval",
		Usage: "evaluate policies against ground-truth concepts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "questions", Aliases: []string{"q"}, Value: file.QuestionsFile, Usage: "one question per line"},
			&cli.StringFlag{Name: "concepts", Aliases: []string{"c"}, Value: file.ConceptsFile, Usage: "comma separated concepts per line"},
			policyFlag(true),
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "parallel workers (default from config)"},
			&cli.BoolFlag{Name: "no-progress", Usage: "disable the progress bar"},
			formatFlag(),
			noColorFlag(),
		},
		Action: func(c *cli.Context) error {
			opts, err := parseEvalArgs(c)
			if err != nil {
				return err
			}
			return withRuntime(c, ui, func(rt *Runtime) error {
				return evalCommand(c.Context, rt, opts, ui)
			})
		},
	}
}

func askCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ask",
		Usage: "classify questions interactively",
		Flags: []cli.Flag{policyFlag(false), noColorFlag()},
		Action: func(c *cli.Context) error {
			opts, err := parseAskArgs(c)
			if err != nil {
				return err
			}
			return withRuntime(c, ui, func(rt *Runtime) error {
				return askCommand(c.Context, rt, opts, ui)
			})
		},
	}
}

func classifyCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "show the concepts of questions",
		ArgsUsage: "QUESTION...",
		Flags:     []cli.Flag{policyFlag(false), formatFlag(), noColorFlag()},
		Action: func(c *cli.Context) error {
			opts, err := parseClassifyArgs(c)
			if err != nil {
				return err
			}
			return withRuntime(c, ui, func(rt *Runtime) error {
				return classifyCommand(c.Context, rt, opts, ui)
			})
		},
	}
}

func statCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "show statistics of a question corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "questions", Aliases: []string{"q"}, Value: file.QuestionsFile, Usage: "one question per line"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			opts := StatOptions{Questions: c.String("questions"), Format: c.String("format")}
			return withRuntime(c, ui, func(rt *Runtime) error {
				return statCommand(c.Context, rt, opts, ui)
			})
		},
	}
}

func importCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load a WordNet dictionary into a SQLite ontology",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "WordNet dictionary directory"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "SQLite database file"},
			&cli.BoolFlag{Name: "no-progress", Usage: "disable the progress bar"},
		},
		Action: func(c *cli.Context) error {
			opts := ImportOptions{From: c.String("from"), To: c.String("to"), NoProgress: c.Bool("no-progress")}
			return importCommand(c.Context, opts, ui)
		},
	}
}

func versionCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(c *cli.Context) error {
			return versionCommand(ui)
		},
	}
}

func bashCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			return bashCommand(ui)
		},
	}
}

// parsePolicies returns all policies when names is empty.
func parsePolicies(names []string) ([]extract.Policy, error) {
	if len(names) == 0 {
		return extract.Policies(), nil
	}

	policies := make([]extract.Policy, 0, len(names))
	for _, n := range names {
		p, err := extract.ParsePolicy(n)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
