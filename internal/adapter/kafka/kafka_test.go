package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMessageWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (m *mockMessageWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockMessageWriter) Close() error {
	m.closed = true
	return nil
}

var generatedAt = time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)

func testAnalysis() domain.Analysis {
	return domain.Analysis{
		GeneratedAt: generatedAt,
		States: []domain.StateAggregate{
			{State: "Texas", FIPS: 48, Shootings: 5, Rank: 1},
			{State: "Ohio", FIPS: 39, Shootings: 2, Rank: 2},
		},
		Trend: domain.MonthlyTrend{Buckets: []domain.MonthlyCount{
			{Month: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), Count: 4},
		}},
		Correlation: domain.Correlation{Valid: true, Slope: 2},
		Stats:       domain.LoadStats{Incidents: 7},
	}
}

func newTestWriter(m *mockMessageWriter) *Writer {
	return &Writer{writer: m, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestSerializeToMessage(t *testing.T) {
	state := domain.StateAggregate{State: "Texas", FIPS: 48, Shootings: 5}

	msg, err := serializeToMessage(RecordState, "state:Texas", state, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("state:Texas"), msg.Key)
	assert.Contains(t, string(msg.Value), `"Total Shootings":5`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "record_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("state"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(generatedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_Unmarshalable(t *testing.T) {
	_, err := serializeToMessage(RecordSummary, "x", make(chan int), generatedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize summary record")
}

func TestPublish(t *testing.T) {
	mock := &mockMessageWriter{}
	w := newTestWriter(mock)

	n, err := w.Publish(context.Background(), testAnalysis())
	require.NoError(t, err)

	assert.Equal(t, 4, n)
	require.Len(t, mock.msgs, 4)
	assert.Equal(t, "state:Texas", string(mock.msgs[0].Key))
	assert.Equal(t, "state:Ohio", string(mock.msgs[1].Key))
	assert.Equal(t, "month:2023-02", string(mock.msgs[2].Key))
	assert.Equal(t, []byte(RecordMonth), mock.msgs[2].Headers[0].Value)

	last := mock.msgs[3]
	assert.Equal(t, []byte(RecordSummary), last.Headers[0].Value)
	assert.JSONEq(t, `{"valid":true,"slope":2,"intercept":0,"r":0}`, extractJSON(t, last.Value, "correlation"))

	require.NoError(t, w.Close())
	assert.True(t, mock.closed)
}

func TestPublish_WriteError(t *testing.T) {
	w := newTestWriter(&mockMessageWriter{err: errors.New("broker down")})

	n, err := w.Publish(context.Background(), testAnalysis())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "broker down")
}

// extractJSON returns the raw JSON of one top-level member of data.
func extractJSON(t *testing.T, data []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	raw, ok := m[key]
	require.True(t, ok, "missing %q", key)
	return string(raw)
}
