package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Envelope is a decoded frame whose payload is still encoded
type Envelope struct {
	T string
	P []byte
}

// Codec turns envelopes into frames and back
type Codec interface {
	Name() string
	// Binary reports whether frames go out as websocket binary messages
	Binary() bool
	Encode(t string, payload any) ([]byte, error)
	DecodeEnvelope(b []byte) (Envelope, error)
	Unmarshal(data []byte, v any) error
}

// CodecByName picks a codec from a query value. Unknown names fall back to JSON.
func CodecByName(name string) Codec {
	if strings.EqualFold(name, MsgpackCodec{}.Name()) {
		return MsgpackCodec{}
	}
	return JSONCodec{}
}

// DecodePayload unpacks env.P into a T
func DecodePayload[T any](c Codec, env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	if err := c.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %q payload: %w", env.T, err)
	}
	return out, nil
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// JSONCodec sends text frames
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty type")
	}
	e := jsonEnvelope{T: t}
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %q payload: %w", t, err)
		}
		e.P = pb
	}
	return json.Marshal(e)
}

func (JSONCodec) DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("empty frame")
	}
	var e jsonEnvelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("frame without type")
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type msgpackEnvelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p,omitempty"`
}

// MsgpackCodec sends binary frames. Payload structs reuse their json tags.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }
func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty type")
	}
	e := msgpackEnvelope{T: t}
	if payload != nil {
		pb, err := marshalMsgpack(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %q payload: %w", t, err)
		}
		e.P = pb
	}
	return msgpack.Marshal(&e)
}

func (MsgpackCodec) DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("empty frame")
	}
	var e msgpackEnvelope
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("frame without type")
	}
	return Envelope{T: e.T, P: e.P}, nil
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func marshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
