package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/neurlang/elembed/config"
	"github.com/neurlang/elembed/export"
	"github.com/neurlang/elembed/ontology"
	"github.com/neurlang/elembed/training"
)

func main() {
	dataFile := flag.String("data-file", "go-normalized.txt", "normalized ontology file (one SubClassOf axiom per line)")
	outClasses := flag.String("out-classes-file", "data/cls_embeddings.tsv", "class embeddings output file")
	outRelations := flag.String("out-relations-file", "data/rel_embeddings.tsv", "relation embeddings output file")
	batchSize := flag.Int("batch-size", training.DefaultBatchSize, "batch size")
	epochs := flag.Int("epochs", training.DefaultEpochs, "training epochs")
	device := flag.String("device", "cpu", "compute device, cpu or cpu:<threads>")
	embeddingSize := flag.Int("embedding-size", training.DefaultDim, "embedding size")
	configFile := flag.String("config", "", "optional YAML hyperparameter file")
	sqlitePath := flag.String("sqlite", "", "optional sqlite database to mirror checkpoints into")
	logFile := flag.String("log-file", "", "optional training log file")
	flag.Parse()

	threads, err := parseDevice(*device)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var h training.HyperParameters
	if *configFile != "" {
		c, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		c.Apply(&h)
	}
	// flags given explicitly win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "batch-size":
			h.BatchSize = *batchSize
		case "epochs":
			h.Epochs = *epochs
		case "embedding-size":
			h.Dim = *embeddingSize
		}
	})
	if threads > 0 {
		h.Threads = threads
	}
	if *logFile != "" {
		h.SetLogger(*logFile)
	}

	if err := run(&h, *dataFile, *outClasses, *outRelations, *sqlitePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(h *training.HyperParameters, dataFile, outClasses, outRelations, sqlitePath string) error {
	ax, err := ontology.ParseFile(dataFile)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d classes, %d relations (nf1=%d nf2=%d nf3=%d nf4=%d disjoint=%d)\n",
		len(ax.ClassNames), len(ax.RelationNames),
		len(ax.NF1), len(ax.NF2), len(ax.NF3), len(ax.NF4), len(ax.Disjoint))

	sinks := export.Multi{&export.TSV{ClsPath: outClasses, RelPath: outRelations}}
	if sqlitePath != "" {
		db, err := export.OpenSQLite(sqlitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		sinks = append(sinks, db)
	}

	_, err = h.Training(ax, sinks)
	return err
}

// parseDevice accepts cpu or cpu:<threads> and returns the worker bound
// (zero meaning all CPUs). GPU identifiers are rejected: there is no CUDA
// backend in this trainer.
func parseDevice(device string) (int, error) {
	name, arg, _ := strings.Cut(device, ":")
	if name != "cpu" {
		return 0, fmt.Errorf("unsupported device %q: only cpu or cpu:<threads> is available", device)
	}
	if arg == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad thread count in device %q", device)
	}
	return n, nil
}
