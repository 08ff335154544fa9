// File: game/codec.go
package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lguibr/pongduel/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes spectator messages. Binary codecs travel in binary
// websocket frames, the others in text frames.
type Codec interface {
	Name() string
	Binary() bool
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// NewCodec returns the codec registered under name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case utils.CodecJSON:
		return jsonCodec{}, nil
	case utils.CodecMsgpack:
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

type jsonCodec struct{}

func (jsonCodec) Name() string                               { return utils.CodecJSON }
func (jsonCodec) Binary() bool                               { return false }
func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

// msgpackCodec reuses the json struct tags so both codecs share field names.
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return utils.CodecMsgpack }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// DecodeMessage decodes one spectator frame into a *MatchSnapshot or a
// *ScoreChanged.
func DecodeMessage(codec Codec, data []byte) (interface{}, error) {
	var header MessageHeader
	if err := codec.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	var msg interface{}
	switch header.MessageType {
	case messageTypeSnapshot:
		msg = &MatchSnapshot{}
	case messageTypeScoreChanged:
		msg = &ScoreChanged{}
	default:
		return nil, fmt.Errorf("unknown message type %q", header.MessageType)
	}
	if err := codec.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", header.MessageType, err)
	}
	return msg, nil
}
