package transport

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
)

// FieldSaver is the persistence collaborator used to write resolved
// persistent segments back to the owning item
type FieldSaver interface {
	SaveField(ctx context.Context, itemID int64, field string, value any, silent bool) error
}

// Aggregator computes per-day transport totals for one timeline view. It
// owns the request throttle timestamp and the batch re-entrancy guard, so
// nothing leaks across views; callers Attach it when the view appears and
// Detach on teardown.
type Aggregator struct {
	router routing.Router
	saver  FieldSaver
	delay  time.Duration

	mu          sync.Mutex
	pairs       map[SegmentKey]Pair
	resolved    map[SegmentKey]*models.TransportSegment
	dayPairs    map[string][]SegmentKey
	passActive  bool
	passDone    *sync.Cond // broadcast whenever passActive clears
	detached    bool
	lastRequest time.Time
	onChange    func()

	ctx    context.Context
	cancel context.CancelFunc
}

// NewAggregator creates a detached aggregator. delay is the fixed pause
// between consecutive routing requests in a batch pass.
func NewAggregator(router routing.Router, saver FieldSaver, delay time.Duration) *Aggregator {
	a := &Aggregator{
		router:   router,
		saver:    saver,
		delay:    delay,
		pairs:    make(map[SegmentKey]Pair),
		resolved: make(map[SegmentKey]*models.TransportSegment),
		dayPairs: make(map[string][]SegmentKey),
		detached: true,
	}
	a.passDone = sync.NewCond(&a.mu)
	return a
}

// OnChange registers a callback invoked after every segment resolution, so
// the owning view can refresh its totals
func (a *Aggregator) OnChange(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// Attach activates the aggregator for a live view
func (a *Aggregator) Attach() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.detached {
		return
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.detached = false
}

// Detach stops scheduling further resolution passes. In-flight work is
// cancelled via context; resolved state is kept for a possible re-attach.
func (a *Aggregator) Detach() {
	a.mu.Lock()
	cancel := a.cancel
	a.detached = true
	a.cancel = nil
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Rebuild derives the pair set from freshly grouped day buckets. Resolved
// segments whose key survives are carried over; persistent pairs seed from
// the segment already stored in the item's metadata. Unresolved routable
// pairs are queued for the next resolution pass.
func (a *Aggregator) Rebuild(buckets []models.DayBucket) {
	pairs := BuildPairs(buckets)

	a.mu.Lock()
	oldResolved := a.resolved
	a.pairs = make(map[SegmentKey]Pair, len(pairs))
	a.resolved = make(map[SegmentKey]*models.TransportSegment, len(pairs))
	a.dayPairs = make(map[string][]SegmentKey)

	for _, p := range pairs {
		a.pairs[p.Key] = p
		a.dayPairs[p.Date] = append(a.dayPairs[p.Date], p.Key)

		if seg, ok := oldResolved[p.Key]; ok {
			a.resolved[p.Key] = seg
			continue
		}
		if p.Persistent {
			if seg, ok := models.SegmentFromMetadata(p.From.Metadata); ok {
				a.resolved[p.Key] = seg
			}
		}
	}
	a.mu.Unlock()
}

// Summaries recomputes every day total from the currently resolved segment
// set. Totals are never incremented in place, so out-of-order resolution
// cannot corrupt them.
func (a *Aggregator) Summaries() map[string]models.DaySummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summaries := make(map[string]models.DaySummary, len(a.dayPairs))
	for date, keys := range a.dayPairs {
		s := models.DaySummary{Date: date}
		for _, key := range keys {
			if seg, ok := a.resolved[key]; ok {
				s.TotalDurationMin += seg.DurationMin
				s.TotalDistanceKm += seg.DistanceKm
				s.ResolvedSegments++
			} else if p := a.pairs[key]; p.Routable() {
				s.PendingSegments++
			}
		}
		summaries[date] = s
	}
	return summaries
}

// Segment returns the resolved segment for a key, if any
func (a *Aggregator) Segment(key SegmentKey) (*models.TransportSegment, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	seg, ok := a.resolved[key]
	return seg, ok
}

// ScheduleResolve kicks off an asynchronous batch resolution pass unless
// one is already running. Pairs that appear while a pass is in flight are
// picked up by a follow-up pass; the loop ends when nothing is left.
func (a *Aggregator) ScheduleResolve() {
	a.mu.Lock()
	if a.passActive || a.detached {
		a.mu.Unlock()
		return
	}
	queue := a.unresolvedLocked()
	if len(queue) == 0 {
		a.mu.Unlock()
		return
	}
	a.passActive = true
	ctx := a.ctx
	a.mu.Unlock()

	go func() {
		a.runPass(ctx, queue)

		a.mu.Lock()
		a.passActive = false
		a.passDone.Broadcast()
		followUp := false
		seen := make(map[SegmentKey]bool, len(queue))
		for _, k := range queue {
			seen[k] = true
		}
		for _, k := range a.unresolvedLocked() {
			if !seen[k] {
				followUp = true
				break
			}
		}
		a.mu.Unlock()

		if followUp {
			a.ScheduleResolve()
		}
	}()
}

// ResolveAll runs synchronous resolution passes until no unresolved pair
// remains or the pass makes no progress. An in-flight background pass is
// waited out, not skipped, so callers see fresh totals before responding.
func (a *Aggregator) ResolveAll(ctx context.Context) {
	for {
		a.mu.Lock()
		for a.passActive {
			a.passDone.Wait()
		}
		queue := a.unresolvedLocked()
		if len(queue) == 0 {
			a.mu.Unlock()
			return
		}
		a.passActive = true
		a.mu.Unlock()

		resolved := a.runPass(ctx, queue)

		a.mu.Lock()
		a.passActive = false
		a.passDone.Broadcast()
		a.mu.Unlock()

		if resolved == 0 {
			return
		}
	}
}

// unresolvedLocked lists routable pairs without a resolved segment.
// Caller holds a.mu.
func (a *Aggregator) unresolvedLocked() []SegmentKey {
	var keys []SegmentKey
	for key, p := range a.pairs {
		if _, ok := a.resolved[key]; ok {
			continue
		}
		if !p.Routable() {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// runPass sequentially resolves the queued pairs, pacing requests by the
// configured delay. Returns the number of segments resolved.
func (a *Aggregator) runPass(ctx context.Context, queue []SegmentKey) int {
	resolved := 0
	for _, key := range queue {
		a.mu.Lock()
		p, ok := a.pairs[key]
		_, done := a.resolved[key]
		a.mu.Unlock()
		if !ok || done {
			// Pair disappeared in a rebuild mid-pass
			continue
		}

		if !a.throttle(ctx) {
			return resolved
		}

		route, err := a.router.Route(ctx, models.RouteRequest{
			FromLat: p.From.Latitude,
			FromLng: p.From.Longitude,
			ToLat:   p.To.Latitude,
			ToLng:   p.To.Longitude,
			Mode:    p.Mode,
		})
		if err != nil {
			if errors.Is(err, routing.ErrInvalidRequest) {
				// Terminal for this pair, drop it from the queue
				a.mu.Lock()
				delete(a.pairs, key)
				a.mu.Unlock()
			}
			log.Printf("[TransportAggregator] route %d->%d failed: %v", p.From.ID, p.To.ID, err)
			continue
		}

		seg := &models.TransportSegment{
			Mode:        p.Mode,
			DistanceKm:  route.DistanceKm,
			DurationMin: route.DurationMin,
			Geometry:    route.Geometry,
			ResolvedAt:  time.Now().Unix(),
		}

		a.mu.Lock()
		if _, stillThere := a.pairs[key]; stillThere {
			a.resolved[key] = seg
		}
		onChange := a.onChange
		a.mu.Unlock()
		resolved++

		if p.Persistent && a.saver != nil {
			if err := a.saver.SaveField(ctx, key.ItemID, models.MetaTransportToNext, seg, true); err != nil {
				// In-memory total still counts; persistence retries on
				// the next rebuild.
				log.Printf("[TransportAggregator] persist segment for item %d failed: %v", key.ItemID, err)
			}
		}

		if onChange != nil {
			onChange()
		}
	}
	return resolved
}

// throttle enforces the fixed inter-request delay. Returns false when the
// context was cancelled while waiting.
func (a *Aggregator) throttle(ctx context.Context) bool {
	a.mu.Lock()
	now := time.Now()
	wait := a.delay - now.Sub(a.lastRequest)
	if wait < 0 {
		wait = 0
	}
	a.lastRequest = now.Add(wait)
	a.mu.Unlock()

	if wait <= 0 {
		if ctx != nil && ctx.Err() != nil {
			return false
		}
		return true
	}

	if ctx == nil {
		time.Sleep(wait)
		return true
	}
	select {
	case <-time.After(wait):
		return true
	case <-ctx.Done():
		return false
	}
}
