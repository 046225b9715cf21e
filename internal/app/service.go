// Package app wires the two joystick sessions to the shared throttle
// and log store, and exposes the live vectors, the ordered log, and
// JSON export to the presentation layer.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AGmitmanipal/AI-PET/internal/adapters/feed"
	"github.com/AGmitmanipal/AI-PET/internal/adapters/logstore"
	"github.com/AGmitmanipal/AI-PET/internal/domain/geom"
	"github.com/AGmitmanipal/AI-PET/internal/domain/model"
	"github.com/AGmitmanipal/AI-PET/internal/domain/session"
	"github.com/AGmitmanipal/AI-PET/internal/domain/throttle"
	"github.com/AGmitmanipal/AI-PET/pkg/logger"
	"github.com/AGmitmanipal/AI-PET/pkg/metrics"
)

// DefaultExportName is the artifact name for a downloaded log export.
const DefaultExportName = "ai-pet-leash-logs.json"

// Service is the controller: it owns one session per joystick, the
// shared leading-edge throttle, and the bounded log store. All state
// transitions are serialized under one mutex, so events are processed
// as non-overlapping handlers in arrival order.
type Service struct {
	mu sync.Mutex

	// Core components
	sessions [model.SourceCount]*session.Session
	limiter  throttle.Limiter
	store    logstore.Store

	// Configuration
	window      time.Duration
	logCapacity int
	clock       func() time.Time
	exportName  string

	// State
	runID   string
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThrottleWindow sets the per-source suppression window.
func WithThrottleWindow(w time.Duration) Option {
	return func(s *Service) {
		if w > 0 {
			s.window = w
		}
	}
}

// WithLogCapacity bounds the event log.
func WithLogCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.logCapacity = capacity
		}
	}
}

// WithClock injects the time source shared by the throttle and the
// log store. Tests step a fake clock through throttle windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithExportName overrides the export artifact name.
func WithExportName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.exportName = name
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		window:      throttle.DefaultWindow,
		logCapacity: logstore.DefaultCapacity,
		clock:       time.Now,
		exportName:  DefaultExportName,
		runID:       uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the sessions, throttle, and log store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = logstore.NewRingStore(
		logstore.WithCapacity(s.logCapacity),
		logstore.WithClock(s.clock),
	)
	s.limiter = throttle.NewLeadingEdge(
		throttle.WithWindow(s.window),
		throttle.WithClock(s.clock),
	)
	for src := model.Source(0); src.Valid(); src++ {
		s.sessions[src] = session.New(src,
			session.WithMoveHandler(s.handleMove),
			session.WithStopHandler(s.handleStop),
		)
	}

	s.started = true
	s.logger.Info(ctx, "leash controller started",
		logger.String("run_id", s.runID),
		logger.String("window", s.window.String()),
		logger.Int("log_capacity", s.logCapacity),
	)
	return nil
}

// Stop shuts the controller down, ending any active drags so the
// terminal zero events still make it into the log.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	for _, sess := range s.sessions {
		sess.End()
	}
	s.started = false
	metrics.UpdateActiveDrags(0)
	s.logger.Info(context.Background(), "leash controller stopped",
		logger.String("run_id", s.runID),
	)
}

// Handle processes one raw pointer sample. It implements feed.Handler,
// so a feed pump can drive the controller directly. Malformed samples
// (unknown source or kind, missing coordinates, unmeasured container)
// are no-ops and return false.
func (s *Service) Handle(ctx context.Context, sample feed.Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || !sample.Source.Valid() {
		metrics.RecordMalformedSample()
		return false
	}
	metrics.RecordSample(sample.Source.String(), sample.Kind.String())

	sess := s.sessions[sample.Source]
	var ok bool
	switch sample.Kind {
	case model.SampleDown:
		ok = sess.Start(sample.X, sample.Y)
	case model.SampleMove:
		ok = sess.Move(sample.X, sample.Y)
	case model.SampleUp:
		ok = sess.End()
	default:
		metrics.RecordMalformedSample()
		return false
	}
	if !ok && sample.Kind != model.SampleUp {
		// Either a stray move while idle or a sample we could not map.
		metrics.RecordMalformedSample()
	}
	metrics.UpdateActiveDrags(s.activeDragsLocked())
	return ok
}

// SetGeometry records a joystick container measurement supplied by the
// presentation layer.
func (s *Service) SetGeometry(ctx context.Context, src model.Source, g geom.Geometry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || !src.Valid() {
		return
	}
	s.sessions[src].SetGeometry(g)
	s.logger.Debug(ctx, "geometry updated",
		logger.String("source", src.String()),
		logger.Float64("radius", g.Radius),
	)
}

// handleMove runs synchronously from a session while s.mu is held.
// The live vector changes unconditionally; the log only sees the
// first event of each throttle window.
func (s *Service) handleMove(src model.Source, vec geom.Vector2) {
	if s.limiter.Admit(context.Background(), src) {
		s.store.Append(context.Background(), src, vec)
		metrics.RecordAdmitted(src.String())
		return
	}
	metrics.RecordSuppressed(src.String())
}

// handleStop runs synchronously from a session while s.mu is held.
// Stop events bypass the throttle: the open window is cancelled and,
// if the drag had moved off center, exactly one terminal zero entry
// is admitted.
func (s *Service) handleStop(src model.Source, prior geom.Vector2) {
	s.limiter.Cancel(context.Background(), src)
	if prior.IsZero() {
		return
	}
	s.store.Append(context.Background(), src, geom.Zero)
	metrics.RecordStopEvent(src.String())
}

// Vector returns the last-known control vector for src.
func (s *Service) Vector(_ context.Context, src model.Source) geom.Vector2 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || !src.Valid() {
		return geom.Zero
	}
	return s.sessions[src].Vector()
}

// Active reports whether src is currently being dragged.
func (s *Service) Active(_ context.Context, src model.Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || !src.Valid() {
		return false
	}
	return s.sessions[src].Active()
}

// Snapshot returns the ordered log, oldest first.
func (s *Service) Snapshot(ctx context.Context) []logstore.Entry {
	s.mu.Lock()
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return nil
	}
	return store.Snapshot(ctx)
}

// exportedEntry mirrors the export document schema.
type exportedEntry struct {
	ID        uint64  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Source    string  `json:"source"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Export serializes the current log snapshot to w as a JSON array,
// oldest first. Exporting an empty log is an error the caller should
// surface as a disabled action, not a failure.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	entries := s.Snapshot(ctx)
	if len(entries) == 0 {
		metrics.RecordExportError()
		return fmt.Errorf("export: %w", logstore.ErrEmpty)
	}

	out := make([]exportedEntry, len(entries))
	for i, e := range entries {
		out[i] = exportedEntry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Source:    e.Source.String(),
			X:         e.Vector.X,
			Y:         e.Vector.Y,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		metrics.RecordExportError()
		return fmt.Errorf("export: %w", err)
	}
	metrics.RecordExport()
	return nil
}

// ExportToFile writes the export artifact to path.
func (s *Service) ExportToFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		metrics.RecordExportError()
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	return s.Export(ctx, f)
}

// ExportName returns the artifact name for downloads.
func (s *Service) ExportName() string {
	return s.exportName
}

// GetStats returns controller statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"run_id":      s.runID,
		"started":     s.started,
		"window":      s.window.String(),
		"logCapacity": s.logCapacity,
	}
	if s.started {
		stats["logLength"] = s.store.Len(ctx)
		stats["activeDrags"] = s.activeDragsLocked()
	}
	return stats
}

func (s *Service) activeDragsLocked() int {
	n := 0
	for _, sess := range s.sessions {
		if sess != nil && sess.Active() {
			n++
		}
	}
	return n
}
