package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_storefront/internal/repository"
)

type eventRepoMock struct {
	mu        sync.Mutex
	events    []repository.OrderEvent
	fetchErr  error
	markErr   error
	published []int64
}

func (m *eventRepoMock) InsertOrderEvent(context.Context, uuid.UUID, string, []byte) error {
	return nil
}

func (m *eventRepoMock) UnpublishedOrderEvents(context.Context, int) ([]repository.OrderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.events, nil
}

func (m *eventRepoMock) MarkOrderEventPublished(_ context.Context, eventID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	m.published = append(m.published, eventID)
	return nil
}

type writerMock struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (m *writerMock) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func newTestPublisher(repo repository.OrderEventRepository, writer messageWriter) *OrderPublisher {
	return &OrderPublisher{
		timeout:   time.Second,
		tick:      10 * time.Millisecond,
		batchSize: 100,
		repo:      repo,
		writer:    writer,
		log:       zerolog.Nop(),
	}
}

func testEvent(id int64) repository.OrderEvent {
	return repository.OrderEvent{
		ID:        id,
		OrderID:   uuid.New(),
		EventType: "order.created",
		Payload:   []byte(`{"total_amount":129.5676}`),
	}
}

func TestPublishPending_PublishesAndMarks(t *testing.T) {
	repo := &eventRepoMock{events: []repository.OrderEvent{testEvent(1), testEvent(2)}}
	writer := &writerMock{}
	publisher := newTestPublisher(repo, writer)

	publisher.publishPending(context.Background())

	require.Len(t, writer.messages, 2)
	assert.Equal(t, []int64{1, 2}, repo.published)
	assert.Equal(t, repo.events[0].OrderID.String(), string(writer.messages[0].Key))
	require.Len(t, writer.messages[0].Headers, 1)
	assert.Equal(t, "order.created", string(writer.messages[0].Headers[0].Value))
}

func TestPublishPending_WriteFailureLeavesEventPending(t *testing.T) {
	repo := &eventRepoMock{events: []repository.OrderEvent{testEvent(1)}}
	writer := &writerMock{err: errors.New("broker unavailable")}
	publisher := newTestPublisher(repo, writer)

	publisher.publishPending(context.Background())

	assert.Empty(t, repo.published, "unpublished rows must stay pending for the next tick")
}

func TestPublishPending_FetchErrorIsNonFatal(t *testing.T) {
	repo := &eventRepoMock{fetchErr: errors.New("db gone")}
	publisher := newTestPublisher(repo, &writerMock{})

	publisher.publishPending(context.Background())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := &eventRepoMock{events: []repository.OrderEvent{testEvent(1)}}
	writer := &writerMock{}
	publisher := newTestPublisher(repo, writer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		publisher.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after context cancel")
	}

	writer.mu.Lock()
	defer writer.mu.Unlock()
	assert.NotEmpty(t, writer.messages)
}
