// Package report records run statistics of an LBM simulation and renders them
// as PNG plots.
package report

import (
	"fmt"
	"os"
	"sync"

	"lbm2d/internal/sims/lbm"
)

// Sample is one recorded step of a run.
type Sample struct {
	Step      int
	Mass      float64
	MeanSpeed float64
	MaxSpeed  float64
	MinRho    float64
	MaxRho    float64
}

// Recorder samples a simulator every few steps. Observe matches the observer
// signature of lbm.Simulator.Run.
type Recorder struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	every     int
	samples   []Sample
}

// NewRecorder creates a recorder that keeps one sample every `every` steps.
func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

// Start prepares outputDir and enables sampling, dropping earlier samples.
func (r *Recorder) Start(outputDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	r.outputDir = outputDir
	r.enabled = true
	r.samples = r.samples[:0]
	return nil
}

// Stop disables sampling. GeneratePlots still works afterwards.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// Observe records the simulator's current summary when sampling is enabled
// and the step index is a multiple of the sampling interval.
func (r *Recorder) Observe(s *lbm.Simulator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled || s == nil || s.StepIndex()%r.every != 0 {
		return
	}
	sum := s.Summarize()
	r.samples = append(r.samples, Sample{
		Step:      sum.Step,
		Mass:      sum.Mass,
		MeanSpeed: sum.MeanSpeed,
		MaxSpeed:  sum.MaxSpeed,
		MinRho:    sum.MinRho,
		MaxRho:    sum.MaxRho,
	})
}

// Samples returns a copy of the recorded samples.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// MassDrift returns the relative change of total mass between the first and
// last sample, or 0 with fewer than two samples.
func (r *Recorder) MassDrift() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) < 2 || r.samples[0].Mass == 0 {
		return 0
	}
	first, last := r.samples[0].Mass, r.samples[len(r.samples)-1].Mass
	return (last - first) / first
}
