package kafka

import (
	"strconv"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoEncoder сериализует события в google.protobuf.Struct (wire-формат protobuf).
type ProtoEncoder struct{}

func NewProtoEncoder() ProtoEncoder {
	return ProtoEncoder{}
}

// EncodeProductCreated кодирует событие о создании товара.
// id передаются строками, чтобы не терять точность int64 в double.
func (ProtoEncoder) EncodeProductCreated(event *usecase.ProductCreatedEvent) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"event_id":        event.EventID,
		"event_type":      string(usecase.ProductCreated),
		"product_id":      formatID(event.ProductID),
		"product_type_id": formatID(event.ProductTypeID),
		"owner_id":        event.OwnerID.String(),
		"title":           event.Title,
		"created_at":      event.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// DecodeEvent разбирает сообщение, закодированное ProtoEncoder.
func DecodeEvent(data []byte) (map[string]any, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return msg.AsMap(), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
