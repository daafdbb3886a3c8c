package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/worker"
)

type blockingWorker struct {
	*worker.BaseWorker
	started chan struct{}
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, "group", zap.NewNop()),
		started:    make(chan struct{}),
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestManager_StartWithoutWorkers(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestManager_StartStop(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	a, b := newBlockingWorker("a"), newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	<-a.started
	<-b.started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
	// повторный Stop не паникует
	assert.NoError(t, a.Stop())
}

func TestManager_StopTimeout(t *testing.T) {
	m := worker.NewManager(zap.NewNop())
	w := &stuckWorker{
		BaseWorker: worker.NewBaseWorker("stuck", "group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(w.release)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Stop(ctx), context.DeadlineExceeded)
}

func TestBaseWorker_ConsumerName(t *testing.T) {
	w := worker.NewBaseWorker("estimator", "group", zap.NewNop())
	assert.Equal(t, "estimator", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
	assert.False(t, w.IsStopped())
}
