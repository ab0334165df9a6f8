// Package config loads an optional YAML hyperparameter file. Values set on
// the command line win over file values, so every field is a pointer and
// only set fields are applied.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neurlang/elembed/training"
)

// File mirrors training.HyperParameters field for field.
type File struct {
	EmbeddingSize *int     `yaml:"embedding_size"`
	BatchSize     *int     `yaml:"batch_size"`
	Epochs        *int     `yaml:"epochs"`
	LearningRate  *float32 `yaml:"learning_rate"`
	Margin        *float32 `yaml:"margin"`
	Threads       *int     `yaml:"threads"`
	Seed          *bool    `yaml:"seed"`
	EveryN        *int     `yaml:"checkpoint_every"`
}

// Load reads and strictly decodes the YAML file at path; unknown keys are
// errors.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var c File
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &c, nil
}

// Apply copies every set field onto h.
func (c *File) Apply(h *training.HyperParameters) {
	if c.EmbeddingSize != nil {
		h.Dim = *c.EmbeddingSize
	}
	if c.BatchSize != nil {
		h.BatchSize = *c.BatchSize
	}
	if c.Epochs != nil {
		h.Epochs = *c.Epochs
	}
	if c.LearningRate != nil {
		h.LearningRate = *c.LearningRate
	}
	if c.Margin != nil {
		h.Margin = *c.Margin
	}
	if c.Threads != nil {
		h.Threads = *c.Threads
	}
	if c.Seed != nil {
		h.Seed = *c.Seed
	}
	if c.EveryN != nil {
		h.EveryN = *c.EveryN
	}
}
