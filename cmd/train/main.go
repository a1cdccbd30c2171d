package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/diabetect-backend/internal/dataset"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/ml"
)

// Offline batch trainer: fits the four pipelines, evaluates them on the
// held-out split, selects the best and persists all artifacts. Any failure
// halts before artifacts are touched, so a previously deployed model is
// never corrupted by a bad run.
func main() {
	dataPath := flag.String("data", "data/diabetes.csv", "path to the training dataset CSV")
	outDir := flag.String("out", "model", "directory for persisted model artifacts")
	seed := flag.Int64("seed", 42, "random seed for the train/test split and ensemble")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Loading dataset", "path", *dataPath)
	records, err := dataset.LoadFile(*dataPath)
	if err != nil {
		log.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	log.Info("Dataset loaded", "rows", len(records))

	trainer := ml.NewTrainer(log, *seed)
	result, err := trainer.Train(records)
	if err != nil {
		log.Error("Training failed", "error", err)
		os.Exit(1)
	}

	if err := ml.SaveArtifacts(*outDir, result.Pipelines, result.Registry); err != nil {
		log.Error("Failed to persist artifacts", "error", err)
		os.Exit(1)
	}

	best := result.Registry.BestModelName
	log.Info("Training complete",
		"best_model", result.Registry.ModelNames[best],
		"accuracy", result.Registry.Models[best].Accuracy,
		"out_dir", *outDir,
	)
}
