package router

//go:generate mockgen -destination=../mocks/router.go -package=mocks . RosterStore,Emitter

import (
	"context"
	"errors"
	"strings"

	"github.com/adwski/chatsession/client/codec"
	"github.com/adwski/chatsession/client/filetransfer"
	"github.com/adwski/chatsession/client/metrics"
	"github.com/adwski/chatsession/client/model"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
)

type (
	RosterStore interface {
		Replace(roster []string)
	}

	FileEncoder interface {
		Encode(ctx context.Context, src filetransfer.Source) (model.EncodedFile, error)
	}

	Emitter interface {
		Emit(evt model.Event)
	}

	Config struct {
		Logger  *zerolog.Logger
		Roster  RosterStore
		Files   FileEncoder
		Emitter Emitter
		Metrics *metrics.Metrics
	}

	// Router builds outbound envelopes from user intents and
	// dispatches inbound envelopes by type.
	Router struct {
		logger  zerolog.Logger
		roster  RosterStore
		files   FileEncoder
		emitter Emitter
		metrics *metrics.Metrics
	}
)

func NewRouter(cfg Config) *Router {
	return &Router{
		logger:  cfg.Logger.With().Str("component", "router").Logger(),
		roster:  cfg.Roster,
		files:   cfg.Files,
		emitter: cfg.Emitter,
		metrics: cfg.Metrics,
	}
}

// BuildChat returns a public_chat or private_chat envelope for text.
// Text that is blank after trimming is rejected.
func (rt *Router) BuildChat(target model.ChatTarget, text string) (model.Envelope, error) {
	if strings.TrimSpace(text) == "" {
		return model.Envelope{}, ErrEmptyMessage
	}
	if target.IsPrivate() {
		return model.PrivateChat(target.Peer(), text), nil
	}
	return model.PublicChat(text), nil
}

// BuildFile waits for src to be read and encoded, then returns a file_upload envelope.
func (rt *Router) BuildFile(ctx context.Context, src filetransfer.Source) (model.Envelope, error) {
	f, err := rt.files.Encode(ctx, src)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.FileUpload(f), nil
}

// HandleFrame decodes one inbound frame and routes it. Frames that cannot
// be decoded are dropped.
func (rt *Router) HandleFrame(data []byte) {
	env, err := codec.Decode(data)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, codec.ErrUnknownType) {
			reason = "unknown_type"
		}
		rt.metrics.DecodeError(reason)
		rt.logger.Warn().Err(err).Str("reason", reason).Msg("inbound frame dropped")
		return
	}
	rt.Route(env)
}

func (rt *Router) Route(env model.Envelope) {
	rt.metrics.EnvelopeReceived(env.Type)

	switch env.Type {
	case model.TypePublicChat:
		rt.chat(model.ChannelPublic, env)
	case model.TypePrivateChat:
		rt.chat(model.ChannelPrivate, env)
	case model.TypeClientList:
		rt.metrics.RosterSize(len(env.Clients))
		rt.roster.Replace(env.Clients)
	default:
		rt.logger.Debug().Str("type", string(env.Type)).Msg("envelope ignored")
	}
}

func (rt *Router) chat(channel string, env model.Envelope) {
	rt.logger.Trace().
		Str("channel", channel).
		Str("sender", env.Sender).
		Msg("chat received")
	rt.emitter.Emit(model.ChatReceived(model.ChatMessage{
		Channel: channel,
		Sender:  env.Sender,
		Text:    env.Message,
	}))
}
