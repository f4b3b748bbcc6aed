package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"diamond-exchange/utils"
)

// Publisher delivers events to one transport
type Publisher interface {
	Name() string
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Dispatcher fans events out to every publisher on background goroutines
type Dispatcher struct {
	publishers []Publisher
	timeout    time.Duration
	wg         sync.WaitGroup

	mu        sync.RWMutex
	onFailure []func(publisher string, evt Event, err error)
}

// NewDispatcher creates a dispatcher. Each publish gets its own timeout.
func NewDispatcher(timeout time.Duration, publishers ...Publisher) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{publishers: publishers, timeout: timeout}
}

// OnFailure registers fn to observe failed deliveries
func (d *Dispatcher) OnFailure(fn func(publisher string, evt Event, err error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFailure = append(d.onFailure, fn)
}

// Notify implements Notifier. The request context's values are kept but its
// cancellation is not, so a finished request does not abort delivery.
func (d *Dispatcher) Notify(ctx context.Context, evt Event) {
	base := context.WithoutCancel(ctx)
	for _, p := range d.publishers {
		d.wg.Add(1)
		go func(p Publisher) {
			defer d.wg.Done()
			pctx, cancel := context.WithTimeout(base, d.timeout)
			defer cancel()
			if err := p.Publish(pctx, evt); err != nil {
				d.fail(p.Name(), evt, err)
			}
		}(p)
	}
}

func (d *Dispatcher) fail(publisher string, evt Event, err error) {
	utils.Warn("event delivery failed", map[string]any{
		"publisher": publisher,
		"event_id":  evt.ID,
		"type":      string(evt.Type),
		"error":     err.Error(),
	})
	d.mu.RLock()
	hooks := append([]func(string, Event, error){}, d.onFailure...)
	d.mu.RUnlock()
	for _, fn := range hooks {
		fn(publisher, evt, err)
	}
}

// Wait blocks until in-flight deliveries finish
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close waits for in-flight deliveries and closes every publisher
func (d *Dispatcher) Close() error {
	d.Wait()
	var errs []error
	for _, p := range d.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher writes events to the structured log
type LogPublisher struct{}

func (LogPublisher) Name() string { return "log" }

func (LogPublisher) Publish(_ context.Context, evt Event) error {
	utils.Info("domain event", map[string]any{
		"event_id":     evt.ID,
		"type":         string(evt.Type),
		"aggregate_id": evt.AggregateID,
		"actor_id":     evt.ActorID,
	})
	return nil
}

func (LogPublisher) Close() error { return nil }
