// Package codec translates envelopes to and from their JSON wire form.
//
// Every frame is a single JSON object whose "type" field selects the shape
// of the remaining fields. Decoding never fails hard: callers get ErrMalformed
// or ErrUnknownType and are expected to drop the frame and carry on.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adwski/chatsession/client/model"
	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformed   = errors.New("malformed envelope")
	ErrUnknownType = errors.New("unknown envelope type")

	errMissingType = errors.New("type field is missing")
)

var validate = validator.New()

type (
	helloWire struct {
		Type      model.Type `json:"type"`
		PublicKey string     `json:"public_key" validate:"required"`
	}

	chatWire struct {
		Type    model.Type `json:"type"`
		Sender  string     `json:"sender,omitempty"`
		Target  string     `json:"target,omitempty"`
		Message string     `json:"message" validate:"required"`
	}

	clientListWire struct {
		Type    model.Type `json:"type"`
		Clients []string   `json:"clients" validate:"required,dive,required"`
	}

	fileUploadWire struct {
		Type     model.Type `json:"type"`
		Filename string     `json:"filename" validate:"required"`
		Filedata string     `json:"filedata" validate:"required"`
	}
)

// Encode serializes env. Unknown types and envelopes missing
// required fields are rejected.
func Encode(env model.Envelope) ([]byte, error) {
	var w any
	switch env.Type {
	case model.TypeHello:
		w = &helloWire{Type: env.Type, PublicKey: env.PublicKey}
	case model.TypePublicChat:
		w = &chatWire{Type: env.Type, Sender: env.Sender, Message: env.Message}
	case model.TypePrivateChat:
		w = &chatWire{Type: env.Type, Sender: env.Sender, Target: env.Target, Message: env.Message}
	case model.TypeClientList:
		clients := env.Clients
		if clients == nil {
			clients = []string{}
		}
		w = &clientListWire{Type: env.Type, Clients: clients}
	case model.TypeFileUpload:
		w = &fileUploadWire{Type: env.Type, Filename: env.Filename, Filedata: env.Filedata}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if err := validate.Struct(w); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	return b, nil
}

// Decode parses one frame.
func Decode(data []byte) (model.Envelope, error) {
	var head struct {
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return model.Envelope{}, errors.Join(ErrMalformed, err)
	}
	if head.Type == nil {
		return model.Envelope{}, errors.Join(ErrMalformed, errMissingType)
	}
	var t model.Type
	if err := json.Unmarshal(head.Type, &t); err != nil {
		return model.Envelope{}, errors.Join(ErrMalformed, err)
	}
	if t == "" {
		return model.Envelope{}, errors.Join(ErrMalformed, errMissingType)
	}

	switch t {
	case model.TypeHello:
		var w helloWire
		if err := unmarshal(data, &w); err != nil {
			return model.Envelope{}, err
		}
		return model.Hello(w.PublicKey), nil

	case model.TypePublicChat:
		var w chatWire
		if err := unmarshal(data, &w); err != nil {
			return model.Envelope{}, err
		}
		return model.Envelope{Type: t, Sender: w.Sender, Message: w.Message}, nil

	case model.TypePrivateChat:
		var w chatWire
		if err := unmarshal(data, &w); err != nil {
			return model.Envelope{}, err
		}
		return model.Envelope{Type: t, Sender: w.Sender, Target: w.Target, Message: w.Message}, nil

	case model.TypeClientList:
		var w clientListWire
		if err := unmarshal(data, &w); err != nil {
			return model.Envelope{}, err
		}
		return model.Envelope{Type: t, Clients: w.Clients}, nil

	case model.TypeFileUpload:
		var w fileUploadWire
		if err := unmarshal(data, &w); err != nil {
			return model.Envelope{}, err
		}
		return model.Envelope{Type: t, Filename: w.Filename, Filedata: w.Filedata}, nil
	}
	return model.Envelope{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

func unmarshal(data []byte, w any) error {
	if err := json.Unmarshal(data, w); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	if err := validate.Struct(w); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	return nil
}
