package pooltop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
)

const (
	endpointInfo    = "info"
	endpointChart   = "info_chart"
	endpointNetwork = "network"
)

// Poller fetches the pool API on a fixed period and publishes processed
// snapshots. Every firing supersedes the one before it: the older firing's
// context is cancelled and a result that arrives late is dropped.
type Poller struct {
	provider   Provider
	interval   time.Duration
	timeout    time.Duration
	label      string
	publishers []Publisher
	metrics    *Metrics
	log        *zap.SugaredLogger
	now        func() time.Time
	refresh    chan struct{}

	// mu guards gen and cancel
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// pubMu serialises publishing. published is the newest generation sent
	// out, so snapshots never go out of firing order.
	pubMu     sync.Mutex
	published uint64
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithInterval sets the refresh period
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTimeout bounds each firing. It is capped at the refresh period.
func WithTimeout(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLabel sets the chart series name
func WithLabel(label string) PollerOption {
	return func(p *Poller) {
		if label != "" {
			p.label = label
		}
	}
}

// WithPublisher adds a snapshot consumer. Publishers are called
// synchronously and must not block for long.
func WithPublisher(pub Publisher) PollerOption {
	return func(p *Poller) {
		if pub != nil {
			p.publishers = append(p.publishers, pub)
		}
	}
}

// WithMetrics records poller health and publishes snapshots to m
func WithMetrics(m *Metrics) PollerOption {
	return func(p *Poller) {
		p.metrics = m
		if m != nil {
			p.publishers = append(p.publishers, m)
		}
	}
}

func WithLogger(log *zap.SugaredLogger) PollerOption {
	return func(p *Poller) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock overrides the time source used to stamp snapshots
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPoller(provider Provider, opts ...PollerOption) *Poller {
	p := &Poller{
		provider: provider,
		interval: RefreshDuration(),
		timeout:  RequestTimeoutDuration(),
		label:    DEFAULT_CHART_LABEL,
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
		refresh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.timeout = min(p.timeout, p.interval)
	return p
}

// Run fires immediately and then on every interval until ctx is done. It
// cancels outstanding work and waits for it before returning ctx's error.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer p.stop()

	p.log.Infow("poller started", "interval", p.interval, "timeout", p.timeout)
	p.fire(ctx, p.now())
	for {
		select {
		case <-ctx.Done():
			p.log.Infow("poller stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			p.fire(ctx, p.now())
		case <-p.refresh:
			p.log.Debugw("refresh requested")
			p.fire(ctx, p.now())
		}
	}
}

// Refresh asks a running poller for an extra firing. Requests made while
// one is already pending are coalesced.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Generation returns the id of the latest firing
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

func (p *Poller) fire(parent context.Context, at time.Time) uint64 {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer cancel()
		p.poll(ctx, gen, at)
	}()
	return gen
}

func (p *Poller) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Poller) poll(ctx context.Context, gen uint64, at time.Time) {
	res, failures := p.fetch(ctx)

	p.mu.Lock()
	current := p.gen
	p.mu.Unlock()

	if gen != current {
		p.metrics.observeSuperseded()
		p.log.Debugw("dropping superseded poll", "generation", gen, "current", current)
		return
	}
	if len(failures) > 0 {
		errs := make([]error, 0, len(failures))
		for _, f := range failures {
			p.metrics.observeFailure(f.endpoint)
			errs = append(errs, f)
		}
		p.log.Warnw("poll failed, keeping previous snapshot", "generation", gen, "error", errors.Join(errs...))
		return
	}

	snap := newSnapshot(gen, at, p.label, res.info, res.series, res.network)
	p.publish(snap)
}

func (p *Poller) publish(snap Snapshot) {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()

	if snap.Generation <= p.published {
		p.metrics.observeSuperseded()
		p.log.Debugw("dropping poll older than the published snapshot",
			"generation", snap.Generation, "published", p.published)
		return
	}
	p.published = snap.Generation

	p.log.Debugw("publishing snapshot",
		"generation", snap.Generation,
		"samples", snap.Chart.Len(),
		"excluded", snap.Excluded,
	)
	for _, pub := range p.publishers {
		pub.Publish(snap)
	}
}

type fetched struct {
	info    Info
	series  Series
	network NetworkInfo
}

type endpointError struct {
	endpoint string
	err      error
}

func (e endpointError) Error() string {
	return fmt.Sprintf("%s: %v", e.endpoint, e.err)
}

func (e endpointError) Unwrap() error {
	return e.err
}

// fetch issues the three pool requests together and waits for all of them
func (p *Poller) fetch(ctx context.Context) (fetched, []endpointError) {
	var (
		out                       fetched
		infoErr, chartErr, netErr error
	)

	swg := sizedwaitgroup.New(3)
	swg.Add()
	go func() {
		defer swg.Done()
		out.info, infoErr = p.provider.GetInfo(ctx)
	}()
	swg.Add()
	go func() {
		defer swg.Done()
		out.series, chartErr = p.provider.GetInfoChart(ctx)
	}()
	swg.Add()
	go func() {
		defer swg.Done()
		out.network, netErr = p.provider.GetNetworkInfo(ctx)
	}()
	swg.Wait()

	var failures []endpointError
	if infoErr != nil {
		failures = append(failures, endpointError{endpointInfo, infoErr})
	}
	if chartErr != nil {
		failures = append(failures, endpointError{endpointChart, chartErr})
	}
	if netErr != nil {
		failures = append(failures, endpointError{endpointNetwork, netErr})
	}
	return out, failures
}
