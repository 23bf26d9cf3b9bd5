package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultWebsocketReadBufferSize     = 10000
	defaultWebsocketWriteBufferSize    = 10000
	defaultWebSocketMaxMessageSize     = 1 << 20
	defaultWebSocketHandshakeTimeout   = 5 * time.Second
	defaultWebSocketCloseWriteDeadline = 2 * time.Second
	defaultWebSocketWriteDeadline      = 10 * time.Second

	// defaultPongWait - DefaultPingInterval == is how long we give server to respond
	DefaultPingInterval = 20 * time.Second
	defaultPongWait     = 30 * time.Second

	defaultInboundQueueSize = 16
)

var (
	ErrDial   = errors.New("unable to establish websocket connection")
	ErrClosed = errors.New("connection is closed")
)

type (
	Config struct {
		Logger           *zerolog.Logger
		Header           http.Header
		HandshakeTimeout time.Duration
		WriteTimeout     time.Duration
		MaxMessageSize   int64
		// PingInterval of zero disables keepalive pings and read deadlines.
		PingInterval time.Duration
		PongWait     time.Duration
	}

	Dialer struct {
		logger zerolog.Logger
		dialer *websocket.Dialer
		header http.Header
		opts   connOpts
	}

	connOpts struct {
		writeTimeout   time.Duration
		maxMessageSize int64
		pingInterval   time.Duration
		pongWait       time.Duration
	}

	// Conn is a client websocket connection with one writer and one reader
	// goroutine. Frames are exchanged as raw text messages.
	Conn struct {
		logger zerolog.Logger
		conn   *websocket.Conn
		opts   connOpts

		tx   chan outgoing
		rx   chan []byte
		done chan struct{}

		ctx    context.Context
		cancel context.CancelFunc

		mx  sync.Mutex
		err error
	}

	outgoing struct {
		data   []byte
		result chan error
	}
)

// NewDialer fills zero durations and sizes with defaults. PingInterval is
// the exception: zero keeps keepalive off.
func NewDialer(cfg Config) *Dialer {
	opts := connOpts{
		writeTimeout:   orDefault(cfg.WriteTimeout, defaultWebSocketWriteDeadline),
		maxMessageSize: cfg.MaxMessageSize,
		pingInterval:   cfg.PingInterval,
		pongWait:       orDefault(cfg.PongWait, defaultPongWait),
	}
	if opts.maxMessageSize <= 0 {
		opts.maxMessageSize = defaultWebSocketMaxMessageSize
	}
	return &Dialer{
		logger: cfg.Logger.With().Str("component", "websocket-client").Logger(),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: orDefault(cfg.HandshakeTimeout, defaultWebSocketHandshakeTimeout),
			ReadBufferSize:   defaultWebsocketReadBufferSize,
			WriteBufferSize:  defaultWebsocketWriteBufferSize,
		},
		header: cfg.Header,
		opts:   opts,
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Dial opens a connection to addr and starts its reader and writer.
func (d *Dialer) Dial(ctx context.Context, addr string) (*Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, addr, d.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%w (status %d)", err, resp.StatusCode)
		}
		return nil, errors.Join(ErrDial, err)
	}

	c := &Conn{
		logger: d.logger.With().Str("addr", addr).Logger(),
		conn:   conn,
		opts:   d.opts,
		tx:     make(chan outgoing),
		rx:     make(chan []byte, defaultInboundQueueSize),
		done:   make(chan struct{}),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.start()
	c.logger.Debug().Msg("websocket connected")
	return c, nil
}

// Send queues data as one text frame and waits until it is written.
// It blocks while the writer is busy rather than dropping frames.
func (c *Conn) Send(ctx context.Context, data []byte) error {
	msg := outgoing{data: data, result: make(chan error, 1)}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return c.closedErr()
	case c.tx <- msg:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-msg.result:
		return err
	}
}

// Inbound delivers received frames in arrival order. It is closed
// once the connection is gone.
func (c *Conn) Inbound() <-chan []byte {
	return c.rx
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection ended, nil for a local Close.
func (c *Conn) Err() error {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.err
}

// Close terminates the connection and waits for its goroutines to exit.
func (c *Conn) Close() error {
	c.cancel()
	<-c.done
	return nil
}

func (c *Conn) closedErr() error {
	if err := c.Err(); err != nil {
		return errors.Join(ErrClosed, err)
	}
	return ErrClosed
}

func (c *Conn) setErr(err error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *Conn) start() {
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		c.receiver(wg)
		c.cancel()
	}()
	go func() {
		c.sender(wg)
		c.cancel()
	}()
	go func() {
		<-c.ctx.Done()
		c.closer()
		wg.Wait()
		close(c.rx)
		close(c.done)
		c.logger.Debug().Msg("websocket closed")
	}()
}

func (c *Conn) sender(wg *sync.WaitGroup) {
	var pingC <-chan time.Time
	if c.opts.pingInterval > 0 {
		pingTicker := time.NewTicker(c.opts.pingInterval)
		defer pingTicker.Stop()
		pingC = pingTicker.C
	}
	defer wg.Done()

SendLoop:
	for {
		select {
		case <-c.ctx.Done():
			break SendLoop
		case <-pingC:
			wsErr := c.conn.SetWriteDeadline(time.Now().Add(c.opts.writeTimeout))
			if wsErr != nil {
				c.logger.Error().Err(wsErr).Msg("failed to set websocket write deadline")
				c.setErr(wsErr)
				break SendLoop
			}
			wsErr = c.conn.WriteMessage(websocket.PingMessage, []byte{})
			if wsErr != nil {
				c.logger.Error().Err(wsErr).Msg("failed to send ping")
				c.setErr(wsErr)
				break SendLoop
			}
			c.logger.Trace().Msg("ping sent")

		case msg := <-c.tx:
			if wsErr := c.write(msg.data); wsErr != nil {
				msg.result <- errors.Join(ErrClosed, wsErr)
				c.setErr(wsErr)
				break SendLoop
			}
			msg.result <- nil
		}
	}
}

func (c *Conn) write(b []byte) error {
	wsErr := c.conn.SetWriteDeadline(time.Now().Add(c.opts.writeTimeout))
	if wsErr != nil {
		c.logger.Error().Err(wsErr).Msg("failed to set websocket write deadline")
		return wsErr
	}
	wsW, wsErr := c.conn.NextWriter(websocket.TextMessage)
	if wsErr != nil {
		c.logger.Error().Err(wsErr).Msg("failed to get websocket text writer")
		return wsErr
	}
	if _, wsErr = wsW.Write(b); wsErr != nil {
		c.logger.Error().Err(wsErr).Msg("failed to write outgoing message")
		return wsErr
	}
	if wsErr = wsW.Close(); wsErr != nil {
		c.logger.Error().Err(wsErr).Msg("failed to close websocket writer")
		return wsErr
	}
	c.logger.Trace().Int("size", len(b)).Msg("frame sent")
	return nil
}

func (c *Conn) receiver(wg *sync.WaitGroup) {
	defer wg.Done()

	c.conn.SetReadLimit(c.opts.maxMessageSize)
	readDeadLineFunc := func() error {
		if c.opts.pingInterval <= 0 {
			return nil
		}
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.pongWait))
	}
	c.conn.SetPongHandler(func(string) error {
		c.logger.Trace().Msg("got pong")
		return readDeadLineFunc()
	})
	if err := readDeadLineFunc(); err != nil {
		c.logger.Error().Err(err).Msg("failed to set websocket read deadline")
		c.setErr(err)
		return
	}

RecvLoop:
	for {
		msgType, msg, wsErr := c.conn.ReadMessage()
		if wsErr != nil {
			select {
			case <-c.ctx.Done():
				// closed locally
			default:
				if websocket.IsCloseError(wsErr,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway) {
					c.logger.Warn().Err(wsErr).Msg("connection closed by server")
				} else {
					c.logger.Error().Err(wsErr).Msg("unexpected error during receive")
				}
				c.setErr(wsErr)
			}
			break RecvLoop
		}
		if msgType != websocket.TextMessage {
			c.logger.Debug().Int("type", msgType).Msg("non-text frame ignored")
			continue
		}
		if err := readDeadLineFunc(); err != nil {
			c.logger.Error().Err(err).Msg("failed to set websocket read deadline")
			c.setErr(err)
			break RecvLoop
		}
		select {
		case c.rx <- msg:
		case <-c.ctx.Done():
			break RecvLoop
		}
	}
}

// closer writes a close frame and closes the socket, which unblocks the reader.
func (c *Conn) closer() {
	wsErr := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(defaultWebSocketCloseWriteDeadline))
	if wsErr != nil && !errors.Is(wsErr, websocket.ErrCloseSent) {
		c.logger.Debug().Err(wsErr).Msg("failed to write close message")
	}
	if wsErr = c.conn.Close(); wsErr != nil {
		c.logger.Error().Err(wsErr).Msg("failed to close websocket connection")
	}
}
