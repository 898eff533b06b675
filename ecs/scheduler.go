package ecs

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *systemStatsInternal) snapshot(name string) SystemStats {
	avgDuration := time.Duration(0)
	minDuration := time.Duration(0)
	if s.executionCount > 0 {
		avgDuration = s.totalDuration / time.Duration(s.executionCount)
		minDuration = s.minDuration
	}
	return SystemStats{
		Name:           name,
		ExecutionCount: s.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avgDuration,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// Clock returns the current time. It drives the delta time of Tick.
type Clock func() time.Time

// Scheduler runs frames against a World: a dispatch phase calling every
// Updater in registration order, followed by the destroy phase.
type Scheduler struct {
	world   *World
	clock   Clock
	last    time.Time
	started bool
	frame   uint64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the wall clock used by Tick.
func WithClock(clock Clock) SchedulerOption {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world: world,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World returns the world driven by the scheduler.
func (s *Scheduler) World() *World {
	return s.world
}

// Frame returns the number of frames run so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Tick runs one frame with the time elapsed since the previous Tick as its
// delta. The first Tick has a zero delta.
func (s *Scheduler) Tick() {
	now := s.clock()
	var dt time.Duration
	if s.started {
		dt = now.Sub(s.last)
	}
	s.last = now
	s.started = true
	s.Step(dt)
}

// Step runs one frame with the given delta time. Systems registered while the
// frame is dispatching first run on the next frame.
func (s *Scheduler) Step(dt time.Duration) {
	s.frame++
	frame := newUpdateFrame(dt, s.frame, s.world)

	for _, entry := range slices.Clone(s.world.systems) {
		if entry.removed || entry.updater == nil {
			continue
		}

		start := time.Now()
		entry.updater.Update(frame, entry.entities)
		entry.stats.record(time.Since(start))
	}

	s.world.flushDestroyQueue()
	frame.runDeferred()
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.world.logger.Debug("scheduler running", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.world.logger.Debug("scheduler stopped", zap.Uint64("frames", s.frame))
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.world.systems),
		Frames:      s.frame,
		Systems:     make([]SystemStats, len(s.world.systems)),
	}

	var totalExecs int64
	for i, entry := range s.world.systems {
		stats.Systems[i] = entry.stats.snapshot(entry.name)
		totalExecs += entry.stats.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
