package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestRunAll_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")

	err := RunAll(context.Background(),
		workerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}),
		workerFunc(func(context.Context) error { return boom }),
	)

	assert.ErrorIs(t, err, boom)
}

func TestRunAll_ReturnsNilAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunAll(ctx, workerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}))

	assert.NoError(t, err)
}
