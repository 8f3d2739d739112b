package inventory

import (
	"sync"

	"github.com/juniper-commerce/marketplace-backend/internal/eventengine"
	"github.com/juniper-commerce/marketplace-backend/internal/eventengine/event"
	"go.uber.org/zap"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.inventory_alerts"

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Logger        *zap.Logger
	AddressChSize uint16
}

// handlerEvents is the vendor-alerts sink: it consumes low-stock and
// order-cancelled events off the engine and surfaces them as structured logs.
// The per-record notification log itself is appended synchronously by the
// ledger; this handler only mirrors alerts for operators.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Logger == nil {
		panic("inventory: HandlerEventsConfig is missing a required field")
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.addSubscriptions()

	h.Logger.Info(
		"event handler is listening",
		zap.String("subscriber", string(subscriberName)),
	)

	// a for-select is not used here because the event engine closes the
	// addressCh on shutdown
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.LowStockEvent:
			h.lowStockEventHandler(ne)

		case *event.OrderCancelledEvent:
			h.orderCancelledEventHandler(ne)

		default:
			h.Logger.Warn(
				"received unknown event type",
				zap.Any("event", ne),
			)
		}
	}

	h.Logger.Info(
		"event handler shutting down",
		zap.String("subscriber", string(subscriberName)),
	)
}

func (h *handlerEvents) lowStockEventHandler(ev *event.LowStockEvent) {
	h.Logger.Warn(
		"low stock alert",
		zap.String("productID", ev.ProductID.String()),
		zap.String("vendorID", ev.VendorID.String()),
		zap.Int("remaining", ev.Remaining),
		zap.String("message", ev.Message),
	)
}

func (h *handlerEvents) orderCancelledEventHandler(ev *event.OrderCancelledEvent) {
	h.Logger.Info(
		"order cancelled, reserved stock released",
		zap.String("orderID", ev.OrderID.String()),
		zap.String("customerID", ev.CustomerID.String()),
	)
}

// addSubscriptions subscribes this handler's addressCh to every event it
// consumes. The emitting services register the event names in their
// constructors, so the services must be built before this handler.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [2]event.EventName{
		event.LowStockEventName,
		event.OrderCancelledEventName,
	}

	for _, eventName := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			h.Logger.Fatal(
				"error subscribing to event",
				zap.String("subscriber", string(subscriberName)),
				zap.String("event", string(eventName)),
				zap.Error(err),
			)
		}
	}
}
