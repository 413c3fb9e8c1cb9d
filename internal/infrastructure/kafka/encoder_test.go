package kafka

import (
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProductCreated(t *testing.T) {
	owner := uuid.MustParse("3c0c8a5f-9b8e-4c55-b7f3-2f3d6f1b2a44")
	event := &usecase.ProductCreatedEvent{
		EventID:       "evt-1",
		ProductID:     9007199254740993,
		ProductTypeID: 3,
		OwnerID:       owner,
		Title:         "Lamp",
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := NewProtoEncoder().EncodeProductCreated(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"event_id":        "evt-1",
		"event_type":      "product.created",
		"product_id":      "9007199254740993",
		"product_type_id": "3",
		"owner_id":        owner.String(),
		"title":           "Lamp",
		"created_at":      "2024-03-01T10:00:00Z",
	}, decoded)
}

func TestDecodeEventGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestToMessage(t *testing.T) {
	msg := toMessage(usecase.NewWriteRawMessageReq(&usecase.OutboxEvent{
		EventID:   "evt-1",
		EventType: usecase.ProductCreated,
		ProductID: 42,
		Payload:   []byte{1, 2, 3},
	}))

	assert.Equal(t, []byte("42"), msg.Key)
	assert.Equal(t, []byte{1, 2, 3}, msg.Value)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, headerEventID, msg.Headers[0].Key)
	assert.Equal(t, []byte("evt-1"), msg.Headers[0].Value)
	assert.Equal(t, []byte("product.created"), msg.Headers[1].Value)
}
