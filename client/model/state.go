package model

// State of the session connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventKind tells which collaborator callback an Event maps to.
type EventKind int

const (
	EventStateChanged EventKind = iota + 1
	EventChatReceived
	EventPresenceChanged
	EventSendFailed
)

// Event is one item of the ordered stream the session emits
// to the rendering collaborator.
type Event struct {
	Kind   EventKind
	State  State
	Chat   ChatMessage
	Roster []string
	Err    error
}

func StateChanged(s State) Event {
	return Event{Kind: EventStateChanged, State: s}
}

func ChatReceived(msg ChatMessage) Event {
	return Event{Kind: EventChatReceived, Chat: msg}
}

func PresenceChanged(roster []string) Event {
	return Event{Kind: EventPresenceChanged, Roster: roster}
}

func SendFailed(err error) Event {
	return Event{Kind: EventSendFailed, Err: err}
}
