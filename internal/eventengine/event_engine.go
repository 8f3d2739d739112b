package eventengine

import (
	"fmt"
	"sync"

	"github.com/juniper-commerce/marketplace-backend/internal/eventengine/event"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	Logger        *zap.Logger
}

type eventEngine struct {
	*EventEngineConfig

	mu            sync.RWMutex
	events        map[event.EventName]*subscribers
	eventEngineCh chan *event.Event
}

// NewEventEngine starts the engine's listen goroutine. It runs until DoneCh
// is closed, then drains any pending events, closes every subscriber's
// addressCh and marks itself done on InternalSrvWG.
func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil || cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		panic("eventengine: DoneCh and InternalSrvWG are required")
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	e.Logger.Info("event engine is listening")

	for {
		select {
		case <-e.DoneCh:
			e.Logger.Info("event engine is shutting down, draining pending events")

			for {
				select {
				case ev := <-e.eventEngineCh:
					e.broadcast(ev)
				default:
					e.shutdownSubscriberChs()
					return
				}
			}

		case ev := <-e.eventEngineCh:
			e.broadcast(ev)
		}
	}
}

func (e *eventEngine) broadcast(ev *event.Event) {
	e.mu.RLock()
	subs, exists := e.events[ev.Name]
	e.mu.RUnlock()

	if !exists {
		e.Logger.Warn(
			"event has no registration, check the publishing service",
			zap.String("event", string(ev.Name)),
		)
		return
	}

	for i, addressCh := range subs.addressChs {
		if addressCh == nil {
			e.Logger.Warn(
				"subscriber addressCh is nil, check this event handler's initialization",
				zap.String("subscriber", string(subs.names[i])),
			)
			continue
		}

		addressCh <- ev.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to the engine.
//
// IMPORTANT: register an event before publishing or subscribing to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			continue
		}

		e.events[eventName] = &subscribers{}
	}
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.events[toEventName]
	if !ok {
		return fmt.Errorf(
			"event '%v' not found; the emitting service must call RegisterEvents before '%v' can subscribe",
			toEventName,
			newSubscriber.Name,
		)
	}

	subs.names = append(subs.names, newSubscriber.Name)
	subs.addressChs = append(subs.addressChs, newSubscriber.AddressCh)

	return nil
}

func (e *eventEngine) Publish(ev *event.Event) error {
	e.mu.RLock()
	_, exists := e.events[ev.Name]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf(
			"event '%v' not found; make sure the publishing service called RegisterEvents",
			ev.Name,
		)
	}

	e.eventEngineCh <- ev

	return nil
}

func (e *eventEngine) shutdownSubscriberChs() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// one subscriber may listen to several events over a single channel
	closed := make(map[chan<- any]struct{})

	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil {
				continue
			}
			if _, alreadyClosed := closed[addressCh]; alreadyClosed {
				continue
			}

			closed[addressCh] = struct{}{}
			close(addressCh)
		}
	}

	e.Logger.Info("event engine has shut down")
}
