package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/worker/schedule"
)

const group = "test-group"

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// fallbackEstimator - маршрутизатор недоступен, расстояние по прямой
type fallbackEstimator struct {
	today time.Time
}

func (e fallbackEstimator) Estimate(ctx context.Context, activation *time.Time, origin, destination domain.GeoPoint) domain.DeliveryEstimate {
	return domain.Estimate(domain.FailedRoute(), origin, destination, activation, domain.DefaultSchedulePolicy, e.today)
}

const validEvent = `{"order_id":"ord-1","activated_date":"2024-01-01T00:00:00Z",` +
	`"billing":{"lat":19.076,"lon":72.8777},"shipping":{"lat":28.6139,"lon":77.209}}`

type harness struct {
	repo     *MockStreamRepository
	messages chan domain.StreamMessage
	acked    chan string
	worker   *schedule.EstimatorWorker
	result   chan error
}

func newHarness(t *testing.T, maxRetries int) *harness {
	t.Helper()

	h := &harness{
		repo:     &MockStreamRepository{},
		messages: make(chan domain.StreamMessage, 10),
		acked:    make(chan string, 10),
		result:   make(chan error, 1),
	}

	h.repo.On("CreateConsumerGroup", mock.Anything, domain.StreamOrderActivated, group).Return(nil)
	h.repo.On("ConsumeStream", mock.Anything, domain.StreamOrderActivated, group, mock.Anything).
		Return((<-chan domain.StreamMessage)(h.messages), nil)
	h.repo.On("AckMessage", mock.Anything, domain.StreamOrderActivated, group, mock.Anything).
		Run(func(args mock.Arguments) { h.acked <- args.String(3) }).
		Return(nil)

	today := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	h.worker = schedule.NewEstimatorWorker(
		h.repo,
		fallbackEstimator{today: today},
		group,
		maxRetries,
		zap.NewNop(),
		schedule.WithRetryDelay(time.Millisecond),
		schedule.WithClock(func() time.Time { return today }),
	)
	return h
}

func (h *harness) start() {
	go func() { h.result <- h.worker.Start(context.Background()) }()
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	require.NoError(t, h.worker.Stop())
	select {
	case err := <-h.result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func (h *harness) waitAck(t *testing.T) string {
	t.Helper()
	select {
	case id := <-h.acked:
		return id
	case <-time.After(time.Second):
		t.Fatal("message was not acknowledged")
		return ""
	}
}

func TestEstimatorWorker_PublishesSchedule(t *testing.T) {
	h := newHarness(t, 3)

	var published domain.ScheduleReadyEvent
	h.repo.On("PublishToStream", mock.Anything, domain.StreamScheduleReady, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).(domain.ScheduleReadyEvent) }).
		Return(nil).Once()

	h.start()
	h.messages <- domain.StreamMessage{ID: "1-0", Data: validEvent}

	assert.Equal(t, "1-0", h.waitAck(t))
	h.stop(t)

	assert.Equal(t, "ord-1", published.OrderID)
	assert.Equal(t, domain.RouteSourceFallback, published.RouteSource)
	assert.Equal(t, 4, published.TransitDays)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), published.ExpectedDate)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), published.LatestDate)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", published.EventID.String())
	h.repo.AssertExpectations(t)
}

func TestEstimatorWorker_SkipsBrokenMessages(t *testing.T) {
	h := newHarness(t, 3)
	h.start()

	h.messages <- domain.StreamMessage{ID: "1-0", Data: "{not json"}
	h.messages <- domain.StreamMessage{ID: "2-0", Data: `{"order_id":"ord-2","billing":{"lat":91,"lon":0},"shipping":{"lat":0,"lon":0}}`}
	h.messages <- domain.StreamMessage{ID: "3-0", Data: `{"billing":{"lat":1,"lon":1},"shipping":{"lat":2,"lon":2}}`}

	assert.Equal(t, "1-0", h.waitAck(t))
	assert.Equal(t, "2-0", h.waitAck(t))
	assert.Equal(t, "3-0", h.waitAck(t))
	h.stop(t)

	h.repo.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimatorWorker_RetriesPublish(t *testing.T) {
	h := newHarness(t, 3)
	h.repo.On("PublishToStream", mock.Anything, domain.StreamScheduleReady, mock.Anything).
		Return(errors.New("redis unavailable")).Twice()
	h.repo.On("PublishToStream", mock.Anything, domain.StreamScheduleReady, mock.Anything).
		Return(nil).Once()

	h.start()
	h.messages <- domain.StreamMessage{ID: "1-0", Data: validEvent}

	assert.Equal(t, "1-0", h.waitAck(t))
	h.stop(t)

	h.repo.AssertNumberOfCalls(t, "PublishToStream", 3)
}

func TestEstimatorWorker_LeavesMessagePendingWhenPublishFails(t *testing.T) {
	h := newHarness(t, 2)
	published := make(chan struct{}, 2)
	h.repo.On("PublishToStream", mock.Anything, domain.StreamScheduleReady, mock.Anything).
		Run(func(mock.Arguments) { published <- struct{}{} }).
		Return(errors.New("redis unavailable"))

	h.start()
	h.messages <- domain.StreamMessage{ID: "1-0", Data: validEvent}

	for i := 0; i < 2; i++ {
		select {
		case <-published:
		case <-time.After(time.Second):
			t.Fatal("publish was not attempted")
		}
	}
	h.stop(t)

	h.repo.AssertNumberOfCalls(t, "PublishToStream", 2)
	h.repo.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimatorWorker_StreamClosed(t *testing.T) {
	h := newHarness(t, 1)
	h.start()
	close(h.messages)

	select {
	case err := <-h.result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not return after stream closed")
	}
}

func TestEstimatorWorker_ConsumerGroupError(t *testing.T) {
	repo := &MockStreamRepository{}
	repo.On("CreateConsumerGroup", mock.Anything, domain.StreamOrderActivated, group).
		Return(errors.New("NOPERM"))

	w := schedule.NewEstimatorWorker(repo, fallbackEstimator{}, group, 3, zap.NewNop())
	err := w.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumer group")
	assert.Equal(t, schedule.WorkerName, w.Name())
}
