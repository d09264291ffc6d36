// Package storage provides a file-based archive of generated plans, used
// by the CLI to export plans as standalone JSON documents.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ayurdiet/internal/planner"
)

// PlanArchive writes generated plans to a directory, one file per plan.
type PlanArchive struct {
	basePath string
}

// NewPlanArchive creates a new PlanArchive and ensures the base directory
// exists.
func NewPlanArchive(basePath string) (*PlanArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &PlanArchive{basePath: basePath}, nil
}

// path builds the archive filename for a plan: <created>_<id>.json with
// the timestamp made filename-safe.
func (a *PlanArchive) path(plan *planner.Plan) string {
	ts := strings.ReplaceAll(plan.CreatedAt.UTC().Format("2006-01-02T15-04-05"), ":", "-")
	filename := fmt.Sprintf("%s_%s.json", ts, plan.ID)
	return filepath.Join(a.basePath, filename)
}

// Save writes a plan to the archive.
func (a *PlanArchive) Save(plan *planner.Plan) (string, error) {
	if plan.ID == "" {
		return "", fmt.Errorf("cannot archive a plan without an ID")
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}

	filePath := a.path(plan)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan file: %w", err)
	}
	return filePath, nil
}

// Load reads a plan back from an archive file.
func (a *PlanArchive) Load(filename string) (*planner.Plan, error) {
	data, err := os.ReadFile(filepath.Join(a.basePath, filepath.Base(filename)))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan planner.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// List returns the archived plan filenames, newest first.
func (a *PlanArchive) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.basePath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Remove deletes an archived plan file.
func (a *PlanArchive) Remove(filename string) error {
	if err := os.Remove(filepath.Join(a.basePath, filepath.Base(filename))); err != nil {
		return fmt.Errorf("failed to remove plan file: %w", err)
	}
	return nil
}
