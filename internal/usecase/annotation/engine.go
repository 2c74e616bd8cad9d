// Package annotation analyzes feedback drafts while they are typed.
package annotation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/debounce"
	"github.com/kailas-cloud/aspectmind/internal/domain/aspect"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	"github.com/kailas-cloud/aspectmind/internal/metrics"
)

// DefaultQuiet is the typing pause after which a draft is analyzed.
const DefaultQuiet = 800 * time.Millisecond

// Analyzer is the remote live-analysis interface.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (aspect.Set, error)
}

// Annotation is the settled view of one draft.
type Annotation struct {
	Text string
	// Signals come from the latest settled analysis, computed for ForText.
	Signals   aspect.Set
	ForText   string
	Analyzing bool
	Err       error
}

// Stale reports whether the signals were computed for text other than the current draft.
func (a Annotation) Stale() bool {
	return a.Signals.Len() > 0 && a.ForText != a.Text
}

type draft struct {
	deb debounce.Debouncer

	gen     uint64 // bumped on every edit
	issued  uint64 // generation of the last request sent
	settled uint64 // generation of the last request that committed
	text    string
	signals aspect.Set
	forText string
	err     error
}

// Engine keeps one draft per product. Each draft debounces its own analysis
// and commits a response only if the draft has not been edited since the request was issued.
type Engine struct {
	api    Analyzer
	logger *zap.Logger
	quiet  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	drafts map[product.ID]*draft
}

// New creates an engine. quiet <= 0 uses DefaultQuiet. logger may be nil.
func New(api Analyzer, logger *zap.Logger, quiet time.Duration) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		api:    api,
		logger: logger,
		quiet:  quiet,
		ctx:    ctx,
		cancel: cancel,
		drafts: make(map[product.ID]*draft),
	}
}

// Edit records the new draft text for id.
// Blank text clears the annotation and cancels any pending analysis.
// Any other text schedules an analysis after the quiet window.
func (e *Engine) Edit(id product.ID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	d := e.draftLocked(id)
	d.gen++
	d.text = text

	if strings.TrimSpace(text) == "" {
		d.deb.Cancel()
		d.signals = aspect.Set{}
		d.forText = ""
		d.err = nil
		return
	}

	gen := d.gen
	d.deb.Schedule(func() { e.analyze(id, d, gen, text) }, e.quiet)
}

// Current returns the annotation for id. Unknown ids return the zero Annotation.
func (e *Engine) Current(id product.ID) Annotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.drafts[id]
	if !ok {
		return Annotation{}
	}
	return Annotation{
		Text:      d.text,
		Signals:   d.signals,
		ForText:   d.forText,
		Analyzing: d.deb.Pending() || (d.issued == d.gen && d.settled != d.gen),
		Err:       d.err,
	}
}

// Text returns the current draft text for id.
func (e *Engine) Text(id product.ID) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d, ok := e.drafts[id]; ok {
		return d.text
	}
	return ""
}

// Reset drops the draft for id. Outstanding responses for it are discarded.
func (e *Engine) Reset(id product.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d, ok := e.drafts[id]; ok {
		e.resetLocked(id, d)
	}
}

// ResetIf drops the draft for id only if its trimmed text still equals text.
// It reports whether the draft was dropped.
func (e *Engine) ResetIf(id product.ID, text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.drafts[id]
	if !ok || strings.TrimSpace(d.text) != text {
		return false
	}
	e.resetLocked(id, d)
	return true
}

func (e *Engine) resetLocked(id product.ID, d *draft) {
	d.deb.Cancel()
	d.gen++
	delete(e.drafts, id)
}

// Close cancels pending and in-flight analyses and waits for them to return.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for _, d := range e.drafts {
		d.deb.Cancel()
	}
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Engine) draftLocked(id product.ID) *draft {
	d, ok := e.drafts[id]
	if !ok {
		d = &draft{}
		e.drafts[id] = d
	}
	return d
}

func (e *Engine) analyze(id product.ID, d *draft, gen uint64, text string) {
	e.mu.Lock()
	if e.closed || d.gen != gen {
		e.mu.Unlock()
		return
	}
	d.issued = gen
	e.wg.Add(1)
	e.mu.Unlock()
	defer e.wg.Done()

	set, err := e.api.AnalyzeText(e.ctx, text)

	e.mu.Lock()
	defer e.mu.Unlock()
	if d.gen != gen || e.drafts[id] != d {
		metrics.StaleResponsesTotal.WithLabelValues("annotation").Inc()
		e.logger.Debug("stale analysis discarded", zap.String("product_id", string(id)))
		return
	}
	d.settled = gen
	if err != nil {
		d.err = fmt.Errorf("analyze draft: %w", err)
		e.logger.Warn("live analysis failed", zap.String("product_id", string(id)), zap.Error(err))
		return
	}
	d.signals = set
	d.forText = text
	d.err = nil
	e.logger.Debug("live analysis settled",
		zap.String("product_id", string(id)),
		zap.Int("aspects", set.Len()),
	)
}
