package model

import (
	"github.com/google/uuid"
)

// Type is the envelope discriminator carried in the "type" field.
type Type string

const (
	TypeHello       Type = "hello"
	TypePublicChat  Type = "public_chat"
	TypePrivateChat Type = "private_chat"
	TypeClientList  Type = "client_list"
	TypeFileUpload  Type = "file_upload"
)

// Known reports whether t is one of the recognized envelope types.
func (t Type) Known() bool {
	switch t {
	case TypeHello, TypePublicChat, TypePrivateChat, TypeClientList, TypeFileUpload:
		return true
	}
	return false
}

// Channel labels shown to the rendering side. Derived from the envelope type only.
const (
	ChannelPublic  = "Public Chat"
	ChannelPrivate = "Private Chat"
)

// Envelope is one unit of wire exchange. Only the fields relevant
// for Type are populated.
type Envelope struct {
	Type      Type
	Sender    string
	Target    string // private_chat recipient, outbound only
	PublicKey string
	Message   string
	Clients   []string
	Filename  string
	Filedata  string
}

func Hello(publicKey string) Envelope {
	return Envelope{Type: TypeHello, PublicKey: publicKey}
}

func PublicChat(message string) Envelope {
	return Envelope{Type: TypePublicChat, Message: message}
}

func PrivateChat(target, message string) Envelope {
	return Envelope{Type: TypePrivateChat, Target: target, Message: message}
}

func ClientList(clients []string) Envelope {
	return Envelope{Type: TypeClientList, Clients: append([]string{}, clients...)}
}

func FileUpload(f EncodedFile) Envelope {
	return Envelope{Type: TypeFileUpload, Filename: f.Filename, Filedata: f.Data}
}

// ChatTarget selects the public room or one private peer.
type ChatTarget struct {
	peer string
}

func Public() ChatTarget { return ChatTarget{} }

func Private(peerID string) ChatTarget { return ChatTarget{peer: peerID} }

func (t ChatTarget) IsPrivate() bool { return t.peer != "" }

func (t ChatTarget) Peer() string { return t.peer }

func (t ChatTarget) String() string {
	if t.IsPrivate() {
		return "private:" + t.peer
	}
	return "public"
}

// EncodedFile is a fully materialized file ready for a file_upload envelope.
type EncodedFile struct {
	Filename string
	Data     string
}

// ChatMessage is an inbound chat prepared for display.
type ChatMessage struct {
	Channel string `json:"channel"`
	Sender  string `json:"sender"`
	Text    string `json:"text"`
}

type Session struct {
	ID            uuid.UUID `json:"id"`
	ServerAddress string    `json:"server_address"`
	Identity      string    `json:"identity"`
}

func NewSession(serverAddress, identity string) Session {
	return Session{
		ID:            uuid.New(),
		ServerAddress: serverAddress,
		Identity:      identity,
	}
}
