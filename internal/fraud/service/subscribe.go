package service

import (
	"sync"
	"time"

	"github.com/fraudx/fraudx/internal/fraud"
)

type subscription struct {
	stop chan struct{}
	once sync.Once
}

// end is safe to call any number of times, from Subscribe's cancel or from
// Close, whichever comes first.
func (sub *subscription) end() {
	sub.once.Do(func() { close(sub.stop) })
}

// Subscribe starts a synthetic alert feed for one listener. Each tick, at a
// random interval within the configured feed bounds, fabricates an
// alert/transaction pair, prepends it to the dataset, and invokes the
// listener with the new alert (outside the service lock).
//
// The returned cancel is idempotent and safe to call after Close.
// Subscriptions are independent: each has its own timer.
func (s *Service) Subscribe(listener func(fraud.Alert)) (cancel func()) {
	sub := &subscription{stop: make(chan struct{})}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	go s.feed(sub.stop, listener)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.end()
	}
}

// Close cancels every active subscription. The service itself holds no
// other resources; collections simply become garbage.
func (s *Service) Close() {
	s.mu.Lock()
	subs := make([]*subscription, 0, len(s.subs))
	for id, sub := range s.subs {
		subs = append(subs, sub)
		delete(s.subs, id)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.end()
	}
}

func (s *Service) feed(stop <-chan struct{}, listener func(fraud.Alert)) {
	for {
		timer := time.NewTimer(s.feedInterval())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		s.mu.Lock()
		alert := s.gen.Alert()
		txn := s.gen.Transaction(alert)
		s.insertLocked(alert, &txn)
		s.mu.Unlock()

		listener(alert)
	}
}

func (s *Service) feedInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := s.feedMax - s.feedMin
	d := s.feedMin
	if span > 0 {
		d += time.Duration(s.rng.Int63n(int64(span)))
	}
	return d
}
