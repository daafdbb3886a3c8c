package worker

import "context"

// Worker - фоновый потребитель стрима событий
type Worker interface {
	// Start блокирует до Stop или отмены ctx
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
