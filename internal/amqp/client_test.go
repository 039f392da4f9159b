package amqp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{15, 30 * time.Second},
		{70, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"closed channel", amqp091.ErrClosed, true},
		{"wrapped closed", fmt.Errorf("publish: %w", amqp091.ErrClosed), true},
		{"EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"other error", errors.New("precondition failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isConnectionError(tt.err))
		})
	}
}

func TestClient_CircuitBreaker(t *testing.T) {
	client := &Client{exchangeName: "documents", queueName: "document_jobs"}

	t.Run("initial state is closed", func(t *testing.T) {
		assert.False(t, client.isCircuitOpen())
	})

	t.Run("failures open the circuit", func(t *testing.T) {
		for i := 0; i < maxFailures; i++ {
			client.recordFailure()
		}
		assert.True(t, client.isCircuitOpen())
		assert.Equal(t, StateOpen, atomic.LoadInt32(&client.state))
	})

	t.Run("success closes the circuit", func(t *testing.T) {
		client.recordSuccess()
		assert.False(t, client.isCircuitOpen())
		assert.Zero(t, atomic.LoadInt64(&client.failureCount))
	})

	t.Run("half-open after timeout", func(t *testing.T) {
		atomic.StoreInt32(&client.state, StateOpen)
		client.lastFailure = time.Now().Add(-openTimeout - time.Second)
		assert.False(t, client.isCircuitOpen())
		assert.Equal(t, StateHalfOpen, atomic.LoadInt32(&client.state))
	})
}

func TestClient_PublishDocumentJob(t *testing.T) {
	job := NewDocumentJob("/in/a.pdf", "/out/a.txt", "/out/a.yml")

	t.Run("fails fast when circuit is open", func(t *testing.T) {
		client := &Client{state: StateOpen, lastFailure: time.Now()}
		err := client.PublishDocumentJob(context.Background(), job)
		assert.ErrorIs(t, err, ErrCircuitOpen)
	})

	t.Run("respects cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := (&Client{}).PublishDocumentJob(ctx, job)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("counts a missing channel as failure", func(t *testing.T) {
		client := &Client{}
		require.Error(t, client.PublishDocumentJob(context.Background(), job))
		assert.Equal(t, int64(1), atomic.LoadInt64(&client.failureCount))
	})
}

func TestDocumentJob_JSON(t *testing.T) {
	job := &DocumentJob{
		PDFPath:    "/in/Pixum_BEZ2017-01-03.pdf",
		TextPath:   "/out/Pixum_BEZ2017-01-03.txt",
		RecordPath: "/out/Pixum_BEZ2017-01-03.yml",
		Force:      true,
		Timestamp:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := job.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pdf_path":"/in/Pixum_BEZ2017-01-03.pdf"`)

	parsed, err := DocumentJobFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, job.PDFPath, parsed.PDFPath)
	assert.Equal(t, job.RecordPath, parsed.RecordPath)
	assert.True(t, parsed.Force)
	assert.True(t, parsed.Timestamp.Equal(job.Timestamp))
}

func TestDocumentJobFromJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"pdf_path": 1`},
		{"missing pdf", `{"text_path":"/a.txt","record_path":"/a.yml"}`},
		{"missing text", `{"pdf_path":"/a.pdf","record_path":"/a.yml"}`},
		{"missing record", `{"pdf_path":"/a.pdf","text_path":"/a.txt"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DocumentJobFromJSON([]byte(tt.body))
			assert.Error(t, err)
		})
	}
	_, err := DocumentJobFromJSON([]byte(`{"pdf_path":"/a.pdf"}`))
	assert.ErrorIs(t, err, ErrInvalidJob)
}

type fakeAck struct {
	acks, nacks int
	requeued    bool
}

func (f *fakeAck) Ack(uint64, bool) error { f.acks++; return nil }
func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacks++
	f.requeued = requeue
	return nil
}
func (f *fakeAck) Reject(uint64, bool) error { return nil }

func TestDispatch(t *testing.T) {
	body, err := NewDocumentJob("/in/a.pdf", "/out/a.txt", "/out/a.yml").ToJSON()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("acks handled job", func(t *testing.T) {
		ack := &fakeAck{}
		var got *DocumentJob
		dispatch(ctx, amqp091.Delivery{Acknowledger: ack, Body: body}, func(_ context.Context, job *DocumentJob) error {
			got = job
			return nil
		})
		require.NotNil(t, got)
		assert.Equal(t, "/in/a.pdf", got.PDFPath)
		assert.Equal(t, 1, ack.acks)
		assert.Zero(t, ack.nacks)
	})

	t.Run("requeues failed job", func(t *testing.T) {
		ack := &fakeAck{}
		dispatch(ctx, amqp091.Delivery{Acknowledger: ack, Body: body}, func(context.Context, *DocumentJob) error {
			return errors.New("disk full")
		})
		assert.Equal(t, 1, ack.nacks)
		assert.True(t, ack.requeued)
	})

	t.Run("drops permanently failed job", func(t *testing.T) {
		ack := &fakeAck{}
		dispatch(ctx, amqp091.Delivery{Acknowledger: ack, Body: body}, func(context.Context, *DocumentJob) error {
			return fmt.Errorf("%w: stat document: %w", ErrPermanent, os.ErrNotExist)
		})
		assert.Equal(t, 1, ack.nacks)
		assert.False(t, ack.requeued)
		assert.Zero(t, ack.acks)
	})

	t.Run("drops job failing again after redelivery", func(t *testing.T) {
		ack := &fakeAck{}
		dispatch(ctx, amqp091.Delivery{Acknowledger: ack, Body: body, Redelivered: true}, func(context.Context, *DocumentJob) error {
			return errors.New("disk full")
		})
		assert.Equal(t, 1, ack.nacks)
		assert.False(t, ack.requeued)
	})

	t.Run("drops undecodable job", func(t *testing.T) {
		ack := &fakeAck{}
		called := false
		dispatch(ctx, amqp091.Delivery{Acknowledger: ack, Body: []byte("garbage")}, func(context.Context, *DocumentJob) error {
			called = true
			return nil
		})
		assert.False(t, called)
		assert.Equal(t, 1, ack.nacks)
		assert.False(t, ack.requeued)
	})
}
