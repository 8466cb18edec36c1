package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

func TestPublishRecordsJSONPayload(t *testing.T) {
	t.Parallel()

	p := New()
	event := crawler.ProcessedEvent{
		JobID:  "job-1",
		URL:    "https://example.com",
		Policy: "oMrS",
		Etag:   "abc",
	}

	id, err := p.Publish(context.Background(), "documents", event)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	msgs := p.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "documents", msgs[0].Topic)

	var got crawler.ProcessedEvent
	require.NoError(t, json.Unmarshal(msgs[0].Data, &got))
	require.Equal(t, event, got)
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	t.Parallel()

	p := New()
	_, err := p.Publish(context.Background(), "documents", make(chan int))
	require.Error(t, err)
	require.Empty(t, p.Messages())
}
