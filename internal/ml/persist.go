package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// BestModelFile is the separately persisted copy of the selected
	// pipeline, kept for fast load at service startup.
	BestModelFile = "best_model.json"
	// RegistryFile is the metadata document.
	RegistryFile = "meta.json"
)

// PipelineFile returns the artifact filename for a model key.
func PipelineFile(key string) string {
	return key + ".json"
}

// SaveArtifacts persists every fitted pipeline, the selected pipeline under
// its own name, and the registry. Each file is written to a temp path and
// renamed into place, so a concurrently running service never observes a
// partially written artifact.
func SaveArtifacts(dir string, pipelines map[string]*Pipeline, reg *Registry) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	for key, p := range pipelines {
		if err := writeJSONAtomic(filepath.Join(dir, PipelineFile(key)), p); err != nil {
			return fmt.Errorf("save %s pipeline: %w", key, err)
		}
	}
	best, ok := pipelines[reg.BestModelName]
	if !ok {
		return fmt.Errorf("no fitted pipeline for selected model %q", reg.BestModelName)
	}
	if err := writeJSONAtomic(filepath.Join(dir, BestModelFile), best); err != nil {
		return fmt.Errorf("save best pipeline: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(dir, RegistryFile), reg); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// LoadRegistry reads and validates the metadata document.
func LoadRegistry(dir string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Join(dir, RegistryFile))
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// LoadPipeline reads one persisted pipeline by filename.
func LoadPipeline(dir, file string) (*Pipeline, error) {
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	return &p, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
