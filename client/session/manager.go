package session

//go:generate mockgen -destination=../mocks/renderer.go -package=mocks . Renderer

import (
	"context"
	"errors"
	"sync"

	"github.com/adwski/chatsession/client/codec"
	"github.com/adwski/chatsession/client/filetransfer"
	"github.com/adwski/chatsession/client/metrics"
	"github.com/adwski/chatsession/client/model"
	"github.com/adwski/chatsession/client/presence"
	"github.com/adwski/chatsession/client/router"
	"github.com/rs/zerolog"
)

const defaultEventBuffer = 64

var (
	ErrConnect          = errors.New("unable to connect")
	ErrSend             = errors.New("unable to send envelope")
	ErrNotReady         = errors.New("session is not ready")
	ErrAlreadyConnected = errors.New("session is already active")
)

type (
	// Conn is a message-framed transport connection.
	Conn interface {
		Send(ctx context.Context, data []byte) error
		Inbound() <-chan []byte
		Done() <-chan struct{}
		Err() error
		Close() error
	}

	DialFunc func(ctx context.Context, addr string) (Conn, error)

	Config struct {
		Logger *zerolog.Logger
		Dial   DialFunc
		// MaxFileSize for uploads, zero means unlimited.
		MaxFileSize int64
		EventBuffer int
		Metrics     *metrics.Metrics
	}

	// Manager owns the single session: its state machine, the transport
	// connection, the presence registry and the ordered event stream.
	Manager struct {
		logger   zerolog.Logger
		dial     DialFunc
		registry *presence.Registry
		router   *router.Router
		metrics  *metrics.Metrics
		events   chan model.Event

		mx            *sync.Mutex
		state         model.State
		current       *liveSession
		cancelConnect context.CancelFunc
	}

	// emitFunc hands router notifications to the event stream.
	emitFunc func(evt model.Event)

	liveSession struct {
		model.Session
		conn    Conn
		logger  zerolog.Logger
		stopped chan struct{}
	}
)

func (f emitFunc) Emit(evt model.Event) {
	f(evt)
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		logger:  cfg.Logger.With().Str("component", "session").Logger(),
		dial:    cfg.Dial,
		metrics: cfg.Metrics,
		mx:      &sync.Mutex{},
		state:   model.StateDisconnected,
	}
	size := cfg.EventBuffer
	if size <= 0 {
		size = defaultEventBuffer
	}
	m.events = make(chan model.Event, size)

	m.registry = presence.NewRegistry(presence.Config{
		Logger: cfg.Logger,
		OnChange: func(roster []string) {
			m.emit(model.PresenceChanged(roster))
		},
	})
	m.router = router.NewRouter(router.Config{
		Logger: cfg.Logger,
		Roster: m.registry,
		Files: filetransfer.NewEncoder(filetransfer.Config{
			Logger:  cfg.Logger,
			MaxSize: cfg.MaxFileSize,
		}),
		Emitter: emitFunc(m.emit),
		Metrics: cfg.Metrics,
	})
	return m
}

// Events is the ordered stream of notifications for the rendering side.
// It must be drained; emitting blocks when the buffer is full.
func (m *Manager) Events() <-chan model.Event {
	return m.events
}

func (m *Manager) emit(evt model.Event) {
	m.events <- evt
}

func (m *Manager) State() model.State {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.state
}

// Session returns the live session, if any.
func (m *Manager) Session() (model.Session, bool) {
	m.mx.Lock()
	defer m.mx.Unlock()
	if m.current == nil {
		return model.Session{}, false
	}
	return m.current.Session, true
}

func (m *Manager) Roster() []string {
	return m.registry.Current()
}

func (m *Manager) setState(s model.State) {
	m.mx.Lock()
	m.state = s
	m.mx.Unlock()
	m.metrics.State(s)
	m.emit(model.StateChanged(s))
}

// Connect dials addr, sends the hello handshake carrying identity and
// starts processing inbound envelopes. Failures leave the manager
// Disconnected; there is no automatic retry.
func (m *Manager) Connect(ctx context.Context, addr, identity string) error {
	m.mx.Lock()
	if m.state != model.StateDisconnected {
		m.mx.Unlock()
		return ErrAlreadyConnected
	}
	m.state = model.StateConnecting
	dialCtx, cancel := context.WithCancel(ctx)
	m.cancelConnect = cancel
	m.mx.Unlock()
	defer cancel()

	m.metrics.State(model.StateConnecting)
	m.emit(model.StateChanged(model.StateConnecting))

	sess := &liveSession{
		Session: model.NewSession(addr, identity),
		stopped: make(chan struct{}),
	}
	sess.logger = m.logger.With().
		Str("sessionID", sess.ID.String()).
		Str("server", addr).
		Logger()

	conn, err := m.dial(dialCtx, addr)
	if err != nil {
		sess.logger.Error().Err(err).Msg("connect failed")
		m.clearConnecting()
		m.setState(model.StateDisconnected)
		return errors.Join(ErrConnect, err)
	}
	sess.conn = conn

	m.mx.Lock()
	m.current = sess
	m.cancelConnect = nil
	m.mx.Unlock()
	m.setState(model.StateConnected)

	if err = m.send(dialCtx, conn, model.Hello(identity)); err != nil {
		sess.logger.Error().Err(err).Msg("handshake failed")
		_ = conn.Close()
		m.teardown(sess)
		close(sess.stopped)
		return errors.Join(ErrConnect, err)
	}
	m.setState(model.StateReady)
	sess.logger.Info().Msg("session ready")

	go m.run(sess)
	return nil
}

func (m *Manager) clearConnecting() {
	m.mx.Lock()
	m.cancelConnect = nil
	m.mx.Unlock()
}

// run hands inbound frames to the router one at a time, in arrival order,
// until the transport goes away.
func (m *Manager) run(sess *liveSession) {
	defer close(sess.stopped)
	for frame := range sess.conn.Inbound() {
		sess.logger.Trace().Int("size", len(frame)).Msg("frame received")
		m.router.HandleFrame(frame)
	}
	<-sess.conn.Done()
	if err := sess.conn.Err(); err != nil {
		sess.logger.Warn().Err(err).Msg("connection lost")
	}
	m.teardown(sess)
}

func (m *Manager) teardown(sess *liveSession) {
	m.mx.Lock()
	if m.current != sess {
		m.mx.Unlock()
		return
	}
	m.current = nil
	m.mx.Unlock()

	m.registry.Clear()
	m.metrics.RosterSize(0)
	m.setState(model.StateDisconnected)
	sess.logger.Info().Msg("session ended")
}

// Disconnect aborts a pending connect or closes the live session and waits
// for it to be torn down.
func (m *Manager) Disconnect() error {
	m.mx.Lock()
	cancel, sess := m.cancelConnect, m.current
	m.mx.Unlock()

	if cancel != nil {
		cancel()
		return nil
	}
	if sess == nil {
		return nil
	}
	err := sess.conn.Close()
	<-sess.stopped
	return err
}

// SendChat sends text to target. Blank text is rejected without side effects.
func (m *Manager) SendChat(ctx context.Context, target model.ChatTarget, text string) error {
	env, err := m.router.BuildChat(target, text)
	if err != nil {
		return err
	}
	return m.deliver(ctx, env)
}

// SendFile reads and encodes src completely, then sends it as one
// file_upload envelope. Inbound processing continues meanwhile.
func (m *Manager) SendFile(ctx context.Context, src filetransfer.Source) error {
	if _, err := m.readyConn(); err != nil {
		m.metrics.SendFailure()
		m.emit(model.SendFailed(err))
		return err
	}
	env, err := m.router.BuildFile(ctx, src)
	if err != nil {
		m.metrics.SendFailure()
		m.logger.Error().Err(err).Str("filename", src.Name()).Msg("file upload abandoned")
		m.emit(model.SendFailed(err))
		return err
	}
	return m.deliver(ctx, env)
}

func (m *Manager) deliver(ctx context.Context, env model.Envelope) error {
	conn, err := m.readyConn()
	if err == nil {
		err = m.send(ctx, conn, env)
	}
	if err != nil {
		m.metrics.SendFailure()
		m.logger.Error().Err(err).Str("type", string(env.Type)).Msg("send failed")
		m.emit(model.SendFailed(err))
		return err
	}
	return nil
}

func (m *Manager) readyConn() (Conn, error) {
	m.mx.Lock()
	defer m.mx.Unlock()
	if m.state != model.StateReady || m.current == nil {
		return nil, ErrNotReady
	}
	return m.current.conn, nil
}

func (m *Manager) send(ctx context.Context, conn Conn, env model.Envelope) error {
	b, err := codec.Encode(env)
	if err != nil {
		return errors.Join(ErrSend, err)
	}
	if err = conn.Send(ctx, b); err != nil {
		return errors.Join(ErrSend, err)
	}
	m.metrics.EnvelopeSent(env.Type)
	m.logger.Debug().Str("type", string(env.Type)).Msg("envelope sent")
	return nil
}
