// Package feed is the in-process change feed: row-level events published after
// a successful store write, fanned out to subscribers scoped by job id.
// Delivery is per-subscription ordered but carries no cross-row guarantee, and
// consumers must tolerate duplicate delivery.
package feed

import (
	"sync"

	"job-market-api/internal/entity"

	"github.com/google/uuid"
)

type EventType string

const (
	BidInserted EventType = "bid_inserted"
)

type Event struct {
	Type  EventType
	JobId uuid.UUID
	Bid   entity.Bid
}

// subscriptionBuffer bounds how far a slow consumer may lag before its oldest
// events are discarded in favor of newer ones. Publishers never block.
const subscriptionBuffer = 64

type Subscription struct {
	events chan Event
	cancel func()
	once   sync.Once
}

// Events yields the subscription's event stream. The channel is closed after
// Cancel.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

type Feed struct {
	mu     sync.Mutex
	nextId int
	subs   map[uuid.UUID]map[int]*Subscription
}

func New() *Feed {
	return &Feed{
		subs: make(map[uuid.UUID]map[int]*Subscription),
	}
}

// Subscribe registers for events on one job's rows. The caller owns the
// returned handle and must Cancel it when it stops watching the job.
func (f *Feed) Subscribe(jobId uuid.UUID) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextId
	f.nextId++

	sub := &Subscription{
		events: make(chan Event, subscriptionBuffer),
	}
	sub.cancel = func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if byId, ok := f.subs[jobId]; ok {
			delete(byId, id)
			if len(byId) == 0 {
				delete(f.subs, jobId)
			}
		}
		close(sub.events)
	}

	if f.subs[jobId] == nil {
		f.subs[jobId] = make(map[int]*Subscription)
	}
	f.subs[jobId][id] = sub

	return sub
}

// Publish fans the event out to every subscriber of its job id. A subscriber
// whose buffer is full loses its oldest event; it is expected to reconcile by
// re-fetching, the same as after any missed delivery.
func (f *Feed) Publish(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs[e.JobId] {
		for {
			select {
			case sub.events <- e:
			default:
				select {
				case <-sub.events:
				default:
				}
				continue
			}
			break
		}
	}
}
