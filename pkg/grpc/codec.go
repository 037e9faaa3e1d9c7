package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName 內容子類型，請求的 content-type 為 application/grpc+json
const CodecName = "json"

// JSONCodec 以 JSON 編碼 gRPC 訊息，訊息不需要 protoc 產生的程式碼
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}
