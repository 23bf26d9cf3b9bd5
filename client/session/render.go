package session

import (
	"context"

	"github.com/adwski/chatsession/client/model"
)

// Renderer is the presentation side of the session.
type Renderer interface {
	OnConnectionStateChanged(state model.State)
	OnChatReceived(msg model.ChatMessage)
	OnPresenceChanged(roster []string)
	OnSendFailed(err error)
}

// Render feeds events to r in order until ctx is done or events is closed.
func Render(ctx context.Context, events <-chan model.Event, r Renderer) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			switch evt.Kind {
			case model.EventStateChanged:
				r.OnConnectionStateChanged(evt.State)
			case model.EventChatReceived:
				r.OnChatReceived(evt.Chat)
			case model.EventPresenceChanged:
				r.OnPresenceChanged(evt.Roster)
			case model.EventSendFailed:
				r.OnSendFailed(evt.Err)
			}
		}
	}
}
