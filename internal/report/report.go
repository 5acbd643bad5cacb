// Package report writes machine readable simulation results.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/simulator"
)

// Report is the JSON document written by simulate --out
type Report struct {
	Strategy  string       `json:"strategy"`
	Sessions  int          `json:"sessions"`
	MaxRolls  int          `json:"maxRolls"`
	Bankroll  int          `json:"bankroll"`
	Seed      int64        `json:"seed"`
	Table     craps.Config `json:"table"`
	ElapsedMs int64        `json:"elapsedMs"`

	MeanNet   float64    `json:"meanNet"`
	MedianNet float64    `json:"medianNet"`
	StdDev    float64    `json:"stdDev"`
	CI95      [2]float64 `json:"ci95"`
	P5        float64    `json:"p5"`
	P95       float64    `json:"p95"`
	BestNet   int        `json:"bestNet"`
	WorstNet  int        `json:"worstNet"`
	WinRate   float64    `json:"winRate"`
	BustRate  float64    `json:"bustRate"`
	MeanRolls float64    `json:"meanRolls"`
	Wagered   int        `json:"wagered"`
	HouseEdge float64    `json:"houseEdge"`
}

// New summarises res for the run described by cfg
func New(cfg simulator.Config, res *simulator.Result) Report {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()
	return Report{
		Strategy:  res.Strategy,
		Sessions:  stats.Sessions,
		MaxRolls:  cfg.MaxRolls,
		Bankroll:  cfg.Bankroll,
		Seed:      cfg.Seed,
		Table:     cfg.Table,
		ElapsedMs: res.Elapsed.Milliseconds(),
		MeanNet:   stats.Mean(),
		MedianNet: stats.Median(),
		StdDev:    stats.StdDev(),
		CI95:      [2]float64{low, high},
		P5:        stats.Percentile(0.05),
		P95:       stats.Percentile(0.95),
		BestNet:   stats.BestNet,
		WorstNet:  stats.WorstNet,
		WinRate:   stats.WinRate(),
		BustRate:  stats.BustRate(),
		MeanRolls: stats.MeanRolls(),
		Wagered:   stats.TotalWagered,
		HouseEdge: stats.HouseEdge(),
	}
}

// Elapsed returns the recorded run time
func (r Report) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMs) * time.Millisecond
}

// Write stores r as indented JSON at filename. Readers see either the old
// file or the complete new one.
func Write(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return writeFileAtomic(filename, append(data, '\n'), 0o644)
}

// Read loads a report written by Write
func Read(filename string) (Report, error) {
	var r Report
	data, err := os.ReadFile(filename)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to decode report %s: %w", filename, err)
	}
	return r, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// into place. Rename is only atomic within one filesystem.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
