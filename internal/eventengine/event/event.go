package event

type SubscriberName string
type EventName string

// Event is what publishers hand to the event engine; Payload is delivered
// as-is to every subscriber of Name.
type Event struct {
	Name    EventName
	Payload any
}

// Subscriber pairs a name, used for diagnostics, with the channel the
// subscriber is listening for events on.
type Subscriber struct {
	Name      SubscriberName
	AddressCh chan<- any
}
