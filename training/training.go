package training

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/neurlang/elembed/ball"
	"github.com/neurlang/elembed/export"
	"github.com/neurlang/elembed/ontology"
)

// Training runs the full gradient descent loop over the parsed axioms and
// returns the trained model. The embedding tables are exported through sink
// every EveryN-th epoch and after the final epoch; a failed export aborts
// the run. Passing a nil sink disables checkpointing.
func (h *HyperParameters) Training(ax *ontology.Axioms, sink export.Sink) (*ball.Model, error) {
	h.defaults()

	if h.Seed {
		var b [8]byte
		_, err := crypto_rand.Read(b[:])
		if err == nil {
			rand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
		}
	}

	model := ball.New(len(ax.ClassNames), len(ax.RelationNames), h.Dim)
	gen := ontology.NewGenerator(ax, h.BatchSize)
	steps := gen.Steps()
	if steps == 0 {
		return nil, fmt.Errorf("training: no axioms to train on")
	}

	losses := make([]float64, 0, steps)
	for epoch := 0; epoch < h.Epochs; epoch++ {
		losses = losses[:0]
		for {
			batch, ok := gen.Next()
			if !ok {
				break
			}
			loss, grads := model.Step(batch, h.Margin, h.Threads)
			model.Apply(grads, h.LearningRate)
			losses = append(losses, loss)
			fmt.Printf("Batch loss %v\r", loss)
		}
		mean := stat.Mean(losses, nil)
		fmt.Printf("Epoch %d: %v\n", epoch, mean)
		h.logf("epoch %d mean loss %v", epoch, mean)

		if sink != nil && (epoch%h.EveryN == 0 || epoch == h.Epochs-1) {
			h.logf("saving embeddings at epoch %d", epoch)
			err := sink.Put(model.ExportCls(), model.ExportRel(), ax.ClassNames, ax.RelationNames)
			if err != nil {
				return nil, fmt.Errorf("training: checkpoint at epoch %d: %w", epoch, err)
			}
		}
	}
	return model, nil
}
