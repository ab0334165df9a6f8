package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/elembed/training"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := write(t, `
embedding_size: 50
batch_size: 128
epochs: 32
learning_rate: 0.005
seed: true
`)
	c, err := Load(path)
	require.NoError(t, err)

	var h training.HyperParameters
	h.Threads = 3 // not in the file, must survive
	c.Apply(&h)
	assert.Equal(t, 50, h.Dim)
	assert.Equal(t, 128, h.BatchSize)
	assert.Equal(t, 32, h.Epochs)
	assert.Equal(t, float32(0.005), h.LearningRate)
	assert.True(t, h.Seed)
	assert.Equal(t, 3, h.Threads)
	assert.Zero(t, h.Margin, "unset fields stay untouched")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := write(t, "batch_sizes: 128\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
