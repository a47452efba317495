package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/qconcept/config"
	"github.com/revelaction/qconcept/extract"
)

// Option structs for subcommands that have flags
type EvalOptions struct {
	Questions  string
	Concepts   string
	Policies   []extract.Policy
	Workers    int // 0 = from config
	NoProgress bool
	Format     string
	NoColor    bool
}

type AskOptions struct {
	Policy  extract.Policy // empty = prompt
	NoColor bool
}

type ClassifyOptions struct {
	Policy    extract.Policy
	Questions []string
	Format    string
	NoColor   bool
}

type StatOptions struct {
	Questions string
	Format    string
}

type ImportOptions struct {
	From       string
	To         string
	NoProgress bool
}

func parseEvalArgs(c *cli.Context) (EvalOptions, error) {
	policies, err := parsePolicies(c.StringSlice("policy"))
	if err != nil {
		return EvalOptions{}, err
	}

	workers := c.Int("workers")
	if workers < 0 {
		return EvalOptions{}, fmt.Errorf("invalid number of workers %d", workers)
	}

	return EvalOptions{
		Questions:  c.String("questions"),
		Concepts:   c.String("concepts"),
		Policies:   policies,
		Workers:    workers,
		NoProgress: c.Bool("no-progress"),
		Format:     c.String("format"),
		NoColor:    c.Bool("no-color"),
	}, nil
}

func parseAskArgs(c *cli.Context) (AskOptions, error) {
	opts := AskOptions{NoColor: c.Bool("no-color")}
	if name := c.String("policy"); name != "" {
		p, err := extract.ParsePolicy(name)
		if err != nil {
			return AskOptions{}, err
		}
		opts.Policy = p
	}
	return opts, nil
}

func parseClassifyArgs(c *cli.Context) (ClassifyOptions, error) {
	if c.NArg() == 0 {
		return ClassifyOptions{}, errors.New("classify requires at least one question")
	}

	p := extract.PolicyHybrid
	if name := c.String("policy"); name != "" {
		var err error
		if p, err = extract.ParsePolicy(name); err != nil {
			return ClassifyOptions{}, err
		}
	}

	return ClassifyOptions{
		Policy:    p,
		Questions: c.Args().Slice(),
		Format:    c.String("format"),
		NoColor:   c.Bool("no-color"),
	}, nil
}

// loadConfig reads the configuration and applies the global flags over it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"), c.IsSet("config"), config.DefaultEnvFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := map[string]*string{
		"log-level": &cfg.LogLevel,
		"ontology":  &cfg.Ontology,
		"annotator": &cfg.Annotator,
		"gazetteer": &cfg.Gazetteer,
		"ner-model": &cfg.NERModel,
		"pos-model": &cfg.POSModel,
	}
	for name, field := range flags {
		if c.IsSet(name) {
			*field = c.String(name)
		}
	}

	return cfg.ApplyDefaults(), nil
}
