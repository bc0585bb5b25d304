// Copyright (c) 2026 askguanyu
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package observability logs and measures proxy calls and the caches that
// produce proxies.
package observability

import (
	"sync"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _timeNow = time.Now // for tests

const (
	_contract = "contract"
	_method   = "method"
	_variant  = "variant"
	_outcome  = "outcome"
	_binding  = "binding"
)

// Outcome is what a proxy did with a failed call.
type Outcome string

const (
	// Propagated faults are returned to the caller as they are.
	Propagated Outcome = "propagated"
	// Swallowed faults are hidden from the caller behind zero results.
	Swallowed Outcome = "swallowed"
	// Translated faults are replaced by the error a fault hook returned.
	Translated Outcome = "translated"
)

// Levels are the log levels of call outcomes.
type Levels struct {
	Success    zapcore.Level
	Propagated zapcore.Level
	Swallowed  zapcore.Level
	Translated zapcore.Level
}

// DefaultLevels returns the levels used unless configured otherwise.
func DefaultLevels() Levels {
	return Levels{
		Success:    zapcore.DebugLevel,
		Propagated: zapcore.ErrorLevel,
		Swallowed:  zapcore.WarnLevel,
		Translated: zapcore.WarnLevel,
	}
}

func (l Levels) of(o Outcome) zapcore.Level {
	switch o {
	case Swallowed:
		return l.Swallowed
	case Translated:
		return l.Translated
	default:
		return l.Propagated
	}
}

// Config configures an Observer. Zero fields fall back to no-op sinks and
// DefaultLevels.
type Config struct {
	Logger *zap.Logger
	Scope  tally.Scope
	Levels *Levels
}

// Observer hands out edges, one per contract method and proxy variant, and
// counts cache activity.
type Observer struct {
	logger *zap.Logger
	scope  tally.Scope
	levels Levels

	edgesMu sync.RWMutex
	edges   map[edgeKey]*Edge

	factoriesCreated    tally.Counter
	typesGenerated      tally.Counter
	typeFailures        tally.Counter
	instanceCacheHits   tally.Counter
	instanceCacheMisses tally.Counter
}

type edgeKey struct {
	contract, method, variant string
}

// New builds an Observer.
func New(cfg Config) *Observer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scope := cfg.Scope
	if scope == nil {
		scope = tally.NoopScope
	}
	levels := DefaultLevels()
	if cfg.Levels != nil {
		levels = *cfg.Levels
	}

	return &Observer{
		logger:              logger,
		scope:               scope,
		levels:              levels,
		edges:               make(map[edgeKey]*Edge),
		factoriesCreated:    scope.Counter("factories_created"),
		typesGenerated:      scope.Counter("proxy_types_generated"),
		typeFailures:        scope.Counter("proxy_type_failures"),
		instanceCacheHits:   scope.Counter("instance_cache_hits"),
		instanceCacheMisses: scope.Counter("instance_cache_misses"),
	}
}

// NewNop returns an Observer that records nothing.
func NewNop() *Observer {
	return New(Config{})
}

// Logger returns the Observer's logger.
func (o *Observer) Logger() *zap.Logger { return o.logger }

// Scope returns the Observer's metrics scope.
func (o *Observer) Scope() tally.Scope { return o.scope }

// FactoryCreated records a channel factory added to the factory cache.
func (o *Observer) FactoryCreated(contract, binding, identity string) {
	o.factoriesCreated.Inc(1)
	o.logger.Info("Created channel factory.",
		zap.String(_contract, contract),
		zap.String(_binding, binding),
		zap.String("identity", identity))
}

// FactoryEvicted records a channel factory dropped from a bounded cache.
func (o *Observer) FactoryEvicted(identity string, err error) {
	o.logger.Info("Evicted channel factory.", zap.String("identity", identity), zap.Error(err))
}

// TypeGenerated records a proxy type added to the type cache.
func (o *Observer) TypeGenerated(contract, variant string, methods int) {
	o.typesGenerated.Inc(1)
	o.logger.Debug("Generated proxy type.",
		zap.String(_contract, contract),
		zap.String(_variant, variant),
		zap.Int("methods", methods))
}

// TypeGenerationFailed records a failed proxy type generation.
func (o *Observer) TypeGenerationFailed(contract, variant string, err error) {
	o.typeFailures.Inc(1)
	o.logger.Error("Failed to generate proxy type.",
		zap.String(_contract, contract),
		zap.String(_variant, variant),
		zap.Error(err))
}

// InstanceCacheHit records a proxy served from the instance cache.
func (o *Observer) InstanceCacheHit() { o.instanceCacheHits.Inc(1) }

// InstanceCacheMiss records a proxy built for the instance cache.
func (o *Observer) InstanceCacheMiss() { o.instanceCacheMisses.Inc(1) }

// Edge returns the edge of a contract method called through a proxy
// variant.
func (o *Observer) Edge(contract, method, variant string) *Edge {
	key := edgeKey{contract: contract, method: method, variant: variant}

	o.edgesMu.RLock()
	e := o.edges[key]
	o.edgesMu.RUnlock()
	if e != nil {
		return e
	}

	o.edgesMu.Lock()
	defer o.edgesMu.Unlock()

	if e, ok := o.edges[key]; ok {
		// Someone beat us to it.
		return e
	}
	e = newEdge(o.logger, o.scope, &o.levels, key)
	o.edges[key] = e
	return e
}

// An Edge collects stats for one contract method called through one proxy
// variant.
type Edge struct {
	logger *zap.Logger
	levels *Levels

	calls           tally.Counter
	successes       tally.Counter
	faults          map[Outcome]tally.Counter
	channelsCreated tally.Counter
	channelsAborted tally.Counter
	latency         tally.Timer
}

func newEdge(logger *zap.Logger, scope tally.Scope, levels *Levels, key edgeKey) *Edge {
	tags := map[string]string{
		_contract: key.contract,
		_method:   key.method,
		_variant:  key.variant,
	}
	scope = scope.Tagged(tags)

	faults := make(map[Outcome]tally.Counter, 3)
	for _, o := range []Outcome{Propagated, Swallowed, Translated} {
		faults[o] = scope.Tagged(map[string]string{_outcome: string(o)}).Counter("faults")
	}

	return &Edge{
		logger: logger.With(
			zap.String(_contract, key.contract),
			zap.String(_method, key.method),
			zap.String(_variant, key.variant),
		),
		levels:          levels,
		calls:           scope.Counter("calls"),
		successes:       scope.Counter("successes"),
		faults:          faults,
		channelsCreated: scope.Counter("channels_created"),
		channelsAborted: scope.Counter("channels_aborted"),
		latency:         scope.Timer("latency"),
	}
}

// Begin starts a call along the edge.
func (e *Edge) Begin() Call {
	e.calls.Inc(1)
	return Call{edge: e, started: _timeNow()}
}

// ChannelCreated records a channel created for a call. recreated is set when
// the channel replaces one that faulted.
func (e *Edge) ChannelCreated(recreated bool) {
	e.channelsCreated.Inc(1)
	if recreated {
		e.logger.Debug("Recreated channel after fault.")
		return
	}
	e.logger.Debug("Created channel.")
}

// ChannelAborted records a channel discarded after a failed call.
func (e *Edge) ChannelAborted(err error) {
	e.channelsAborted.Inc(1)
	e.logger.Debug("Aborted channel.", zap.Error(err))
}
