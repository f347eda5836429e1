package mcrcon

// EventKind represents the kind of event a transport emits.
type EventKind int

const (
	// EventAuthenticated indicates the server accepted the shared secret.
	EventAuthenticated EventKind = iota
	// EventResponse indicates a command reply arrived.
	EventResponse
	// EventError indicates the transport or server reported an error.
	EventError
	// EventDisconnected indicates the connection closed.
	EventDisconnected

	eventKindCount
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventAuthenticated:
		return "authenticated"
	case EventResponse:
		return "response"
	case EventError:
		return "error"
	case EventDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event represents one notification from the transport.
type Event struct {
	Kind EventKind

	// For EventResponse and EventError
	Payload string
}

// EventHandler is a callback the transport invokes for each event.
type EventHandler func(event Event)

// NewAuthenticatedEvent creates an authenticated event.
func NewAuthenticatedEvent() Event {
	return Event{Kind: EventAuthenticated}
}

// NewResponseEvent creates a response event carrying a reply body.
func NewResponseEvent(body string) Event {
	return Event{Kind: EventResponse, Payload: body}
}

// NewErrorEvent creates an error event with the given message.
func NewErrorEvent(message string) Event {
	return Event{Kind: EventError, Payload: message}
}

// NewDisconnectedEvent creates a disconnected event.
func NewDisconnectedEvent() Event {
	return Event{Kind: EventDisconnected}
}
