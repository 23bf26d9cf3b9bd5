package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/adwski/chatsession/client/filetransfer"
	"github.com/adwski/chatsession/client/model"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const helpText = `commands:
  <text>          send text to the current target
  /connect [addr] open a new session, to the configured server by default
  /public         switch to the public room
  /to <peer>      switch to a private chat with peer
  /file <path>    upload a file
  /who            list connected peers
  /quit           leave`

var (
	stateStyle  = color.New(color.FgYellow)
	chatStyle   = color.New(color.FgCyan, color.OpBold)
	errorStyle  = color.New(color.FgRed)
	noticeStyle = color.New(color.FgGreen)
)

type intents interface {
	Connect(ctx context.Context, addr, identity string) error
	SendChat(ctx context.Context, target model.ChatTarget, text string) error
	SendFile(ctx context.Context, src filetransfer.Source) error
	Roster() []string
}

// terminal renders session events as text and turns input lines into
// intents. It holds the currently selected chat target.
type terminal struct {
	mx       *sync.Mutex
	out      io.Writer
	svc      intents
	server   string
	identity string
	target   model.ChatTarget
}

func newTerminal(out io.Writer, svc intents, server, identity string) *terminal {
	return &terminal{
		mx:       &sync.Mutex{},
		out:      out,
		svc:      svc,
		server:   server,
		identity: identity,
		target:   model.Public(),
	}
}

func (t *terminal) printf(style color.Style, format string, args ...any) {
	t.mx.Lock()
	defer t.mx.Unlock()
	_, _ = fmt.Fprintln(t.out, style.Render(fmt.Sprintf(format, args...)))
}

func (t *terminal) OnConnectionStateChanged(state model.State) {
	t.printf(stateStyle, "* %s", state)
	if state == model.StateDisconnected {
		t.printf(noticeStyle, "* use /connect to start a new session")
	}
}

func (t *terminal) OnChatReceived(msg model.ChatMessage) {
	t.printf(chatStyle, "[%s] %s: %s", msg.Channel, msg.Sender, msg.Text)
}

func (t *terminal) OnPresenceChanged(roster []string) {
	t.printf(noticeStyle, "* %d peer(s) online", len(roster))
}

func (t *terminal) OnSendFailed(err error) {
	t.printf(errorStyle, "! send failed: %v", err)
}

// handle executes one input line and reports whether the user asked to quit.
func (t *terminal) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		// failures are reported through OnSendFailed
		_ = t.svc.SendChat(ctx, t.currentTarget(), line)
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/connect":
		addr := t.server
		if arg != "" {
			addr = arg
		}
		if err := t.svc.Connect(ctx, addr, t.identity); err != nil {
			t.printf(errorStyle, "! connect to %s failed: %v", addr, err)
		}
	case "/public":
		t.setTarget(model.Public())
	case "/to":
		if arg == "" {
			t.printf(errorStyle, "! usage: /to <peer>")
			break
		}
		if !lo.Contains(t.svc.Roster(), arg) {
			t.printf(errorStyle, "! %s is not in the current roster", arg)
		}
		t.setTarget(model.Private(arg))
	case "/file":
		if arg == "" {
			t.printf(errorStyle, "! usage: /file <path>")
			break
		}
		if err := t.svc.SendFile(ctx, filetransfer.OSFile(arg)); err == nil {
			t.printf(noticeStyle, "* uploaded %s", arg)
		}
	case "/who":
		t.who()
	default:
		t.printf(noticeStyle, "%s", helpText)
	}
	return false
}

func (t *terminal) currentTarget() model.ChatTarget {
	t.mx.Lock()
	defer t.mx.Unlock()
	return t.target
}

func (t *terminal) setTarget(target model.ChatTarget) {
	t.mx.Lock()
	t.target = target
	t.mx.Unlock()
	t.printf(noticeStyle, "* now talking to %s", target)
}

func (t *terminal) who() {
	roster := t.svc.Roster()
	target := t.currentTarget()

	t.mx.Lock()
	defer t.mx.Unlock()
	table := tablewriter.NewWriter(t.out)
	table.SetHeader([]string{"#", "Peer", "Selected"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(lo.Map(roster, func(peer string, i int) []string {
		selected := ""
		if target.IsPrivate() && target.Peer() == peer {
			selected = "*"
		}
		return []string{strconv.Itoa(i + 1), peer, selected}
	}))
	table.Render()
}
