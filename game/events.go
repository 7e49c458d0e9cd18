package game

import "time"

// EventType names a lifecycle notification.
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventGameEnded    EventType = "game_ended"
	EventGamePaused   EventType = "game_paused"
	EventGameResumed  EventType = "game_resumed"
	EventTurnChanged  EventType = "turn_changed"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventStateChanged EventType = "state_changed"
)

// Event is the record delivered to listeners: what happened, when, and any
// event-specific payload.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   map[string]any
}

// Listener receives events synchronously, in registration order. A listener
// must not register or remove listeners for the type it is currently
// handling.
type Listener func(Event)

// ListenerID identifies a registration for removal via Off. Listeners are
// funcs and cannot be compared, so registrations are keyed.
type ListenerID int

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// On registers a listener for an event type and returns its removal key.
func (g *Game) On(t EventType, fn Listener) ListenerID {
	g.nextListener++
	id := g.nextListener
	g.listeners[t] = append(g.listeners[t], listenerEntry{id: id, fn: fn})
	return id
}

// Off removes a previously registered listener. Unknown ids are ignored.
func (g *Game) Off(t EventType, id ListenerID) {
	entries := g.listeners[t]
	for i, e := range entries {
		if e.id == id {
			g.listeners[t] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// emit builds the event record and delivers it to listeners in registration
// order. Delivery is synchronous; this is the only path by which listeners
// observe lifecycle notifications.
func (g *Game) emit(t EventType, payload map[string]any) {
	ev := Event{Type: t, Timestamp: time.Now(), Payload: payload}
	for _, e := range g.listeners[t] {
		e.fn(ev)
	}
}
