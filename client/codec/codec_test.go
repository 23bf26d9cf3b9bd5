package codec

import (
	"encoding/json"
	"testing"

	"github.com/adwski/chatsession/client/model"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	envelopes := map[string]model.Envelope{
		"hello":                 model.Hello("cHVibGljLWtleQ=="),
		"public chat outbound":  model.PublicChat("hi all"),
		"public chat inbound":   {Type: model.TypePublicChat, Sender: "alice", Message: "hi all"},
		"private chat outbound": model.PrivateChat("bob", "psst"),
		"private chat inbound":  {Type: model.TypePrivateChat, Sender: "alice", Message: "psst"},
		"client list":           model.ClientList([]string{"alice", "bob"}),
		"empty client list":     model.ClientList(nil),
		"file upload":           model.FileUpload(model.EncodedFile{Filename: "note.txt", Data: "data:text/plain;base64,aGk="}),
	}
	for name, env := range envelopes {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)

			b, err := Encode(env)
			req.NoError(err)

			got, err := Decode(b)
			req.NoError(err)
			req.Equal(env, got)
		})
	}
}

func TestEncodeWireShape(t *testing.T) {
	req := require.New(t)

	b, err := Encode(model.Hello("key"))
	req.NoError(err)
	req.JSONEq(`{"type":"hello","public_key":"key"}`, string(b))

	b, err = Encode(model.PublicChat("hey"))
	req.NoError(err)
	req.JSONEq(`{"type":"public_chat","message":"hey"}`, string(b))

	b, err = Encode(model.PrivateChat("bob", "hey"))
	req.NoError(err)
	req.JSONEq(`{"type":"private_chat","target":"bob","message":"hey"}`, string(b))

	b, err = Encode(model.ClientList(nil))
	req.NoError(err)
	req.JSONEq(`{"type":"client_list","clients":[]}`, string(b))
}

func TestEncodeRejects(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := Encode(model.Envelope{Type: "signed_data"})
		require.ErrorIs(t, err, ErrUnknownType)
	})
	t.Run("empty message", func(t *testing.T) {
		_, err := Encode(model.PublicChat(""))
		require.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("hello without key", func(t *testing.T) {
		_, err := Encode(model.Hello(""))
		require.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("file without data", func(t *testing.T) {
		_, err := Encode(model.FileUpload(model.EncodedFile{Filename: "a.bin"}))
		require.ErrorIs(t, err, ErrMalformed)
	})
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		frame string
		want  error
	}{
		{name: "not json", frame: `hello there`, want: ErrMalformed},
		{name: "json array", frame: `["public_chat"]`, want: ErrMalformed},
		{name: "missing type", frame: `{"message":"hi"}`, want: ErrMalformed},
		{name: "null type", frame: `{"type":null}`, want: ErrMalformed},
		{name: "numeric type", frame: `{"type":7}`, want: ErrMalformed},
		{name: "chat without message", frame: `{"type":"public_chat","sender":"alice"}`, want: ErrMalformed},
		{name: "client list without clients", frame: `{"type":"client_list"}`, want: ErrMalformed},
		{name: "client list with empty id", frame: `{"type":"client_list","clients":["alice",""]}`, want: ErrMalformed},
		{name: "unknown type", frame: `{"type":"server_hello","sender":"srv"}`, want: ErrUnknownType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			env, err := Decode([]byte(tc.frame))
			req.ErrorIs(err, tc.want)
			req.Equal(model.Envelope{}, env)
		})
	}
}

func TestDecodeUnknownTypeNamesTag(t *testing.T) {
	_, err := Decode([]byte(`{"type":"server_hello"}`))
	require.ErrorContains(t, err, `"server_hello"`)
}

func TestDecodeInboundChat(t *testing.T) {
	req := require.New(t)

	env, err := Decode([]byte(`{"type":"public_chat","sender":"alice","message":"hello","extra":true}`))
	req.NoError(err)
	req.Equal(model.TypePublicChat, env.Type)
	req.Equal("alice", env.Sender)
	req.Equal("hello", env.Message)
}

func TestDecodeEmptyClientList(t *testing.T) {
	req := require.New(t)

	env, err := Decode([]byte(`{"type":"client_list","clients":[]}`))
	req.NoError(err)
	req.NotNil(env.Clients)
	req.Empty(env.Clients)

	b, err := Encode(env)
	req.NoError(err)
	var raw map[string]any
	req.NoError(json.Unmarshal(b, &raw))
	req.Equal([]any{}, raw["clients"])
}
