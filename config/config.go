// Package config loads the qconcept configuration from a JSON file, a .env
// file and QCONCEPT_* environment variables, in that order of precedence
// from lowest to highest.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AnnotatorLexicon     = "lexicon"
	AnnotatorTransformer = "transformer"

	EnvPrefix = "QCONCEPT_"

	DefaultFile    = "qconcept.json"
	DefaultEnvFile = ".env"
)

type Config struct {
	// Ontology is a WordNet dictionary directory or a SQLite database file
	Ontology string `json:"ontology"`

	// Annotator is "lexicon" or "transformer"
	Annotator string `json:"annotator"`

	// Gazetteer is an optional file of "TAG<tab>phrase" entity lines
	Gazetteer string `json:"gazetteer"`

	NERModel string `json:"ner_model"`
	POSModel string `json:"pos_model"`
	ModelDir string `json:"model_dir"`
	OnnxFile string `json:"onnx_file"`

	LogLevel string `json:"log_level"`
	Workers  int    `json:"workers"`

	// CacheTTL bounds how long ontology lookups stay memoized, 0 is forever
	CacheTTL Duration `json:"cache_ttl"`
}

// Duration reads "90s" style strings or seconds from JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case float64:
		*d = Duration(time.Duration(x * float64(time.Second)))
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(p)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

func Default() Config {
	return Config{
		Ontology:  "./dict",
		Annotator: AnnotatorLexicon,
		ModelDir:  "./models",
		OnnxFile:  "model.onnx",
		LogLevel:  "info",
		Workers:   1,
		CacheTTL:  0,
	}
}

// Load builds the configuration. A missing file at path is an error only
// when required is set; a missing env file is ignored.
func Load(path string, required bool, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}

	return cfg.ApplyDefaults(), nil
}

// ApplyEnv overrides fields with QCONCEPT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ONTOLOGY":  &c.Ontology,
		"ANNOTATOR": &c.Annotator,
		"GAZETTEER": &c.Gazetteer,
		"NER_MODEL": &c.NERModel,
		"POS_MODEL": &c.POSModel,
		"MODEL_DIR": &c.ModelDir,
		"ONNX_FILE": &c.OnnxFile,
		"LOG_LEVEL": &c.LogLevel,
	}
	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := lookup(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		c.Workers = n
	}

	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", EnvPrefix, err)
		}
		c.CacheTTL = Duration(d)
	}

	return nil
}

// ApplyDefaults returns c with out of range values replaced.
func (c Config) ApplyDefaults() Config {
	d := Default()

	c.Ontology = strings.TrimSpace(c.Ontology)
	if c.Ontology == "" {
		c.Ontology = d.Ontology
	}

	c.Annotator = strings.ToLower(strings.TrimSpace(c.Annotator))
	switch c.Annotator {
	case AnnotatorLexicon, AnnotatorTransformer:
	default:
		c.Annotator = d.Annotator
	}

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if c.OnnxFile == "" {
		c.OnnxFile = d.OnnxFile
	}

	c.Gazetteer = strings.TrimSpace(c.Gazetteer)
	return c
}
