// Package training drives the epoch/step gradient descent loop over the
// geometric loss model.
package training

import (
	"log"
	"os"
	"runtime"
)

// Defaults matching the reference trainer.
const (
	DefaultBatchSize    = 256
	DefaultEpochs       = 1024
	DefaultDim          = 100
	DefaultLearningRate = 0.01
	DefaultMargin       = 0.1
	DefaultEveryN       = 10
)

// HyperParameters configures one training run.
type HyperParameters struct {
	Dim          int     // embedding dimensionality (class vectors carry one extra radius coordinate)
	BatchSize    int     // rows drawn per axiom group per step
	Epochs       int     // total epochs
	LearningRate float32 // fixed gradient descent step size
	Margin       float32 // disjointness separation margin
	Threads      int     // worker bound for per-row batch math, 0 means NumCPU
	Seed         bool    // seed prng using true rng
	EveryN       int     // checkpoint period in epochs; the final epoch always checkpoints

	l *log.Logger
}

// SetLogger appends epoch summaries to the named file.
func (h *HyperParameters) SetLogger(filename string) {
	outfile, _ := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	h.l = log.New(outfile, "", log.LstdFlags)
}

func (h *HyperParameters) defaults() {
	if h.Dim <= 0 {
		h.Dim = DefaultDim
	}
	if h.BatchSize <= 0 {
		h.BatchSize = DefaultBatchSize
	}
	if h.Epochs <= 0 {
		h.Epochs = DefaultEpochs
	}
	if h.LearningRate <= 0 {
		h.LearningRate = DefaultLearningRate
	}
	if h.Margin <= 0 {
		h.Margin = DefaultMargin
	}
	if h.Threads <= 0 {
		h.Threads = runtime.NumCPU()
	}
	if h.EveryN <= 0 {
		h.EveryN = DefaultEveryN
	}
}

func (h *HyperParameters) logf(format string, args ...interface{}) {
	if h.l != nil {
		h.l.Printf(format, args...)
	}
}
