// Package grpcjson registers a JSON payload codec for gRPC. The reporting RPC
// surface carries ids as strings and dates as ISO-8601 strings, so plain JSON
// messages are the wire format; callers select it with
// grpc.CallContentSubtype(grpcjson.Name).
package grpcjson

import (
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/grpc/encoding"
)

const Name = "json"

var api = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error)      { return api.Marshal(v) }
func (codec) Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }
func (codec) Name() string                       { return Name }
