package transit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger records dispatch events for assertions.
type captureLogger struct {
	executed  [][2]string
	rejected  []string
	completed []string
	errs      []error
}

func (l *captureLogger) TransitionExecuted(ctx context.Context, from, to string) {
	l.executed = append(l.executed, [2]string{from, to})
}

func (l *captureLogger) TransitionRejected(ctx context.Context, current, target, message string) {
	l.rejected = append(l.rejected, message)
}

func (l *captureLogger) HandlerCompleted(ctx context.Context, slot string, duration time.Duration, err error) {
	l.completed = append(l.completed, slot)
	l.errs = append(l.errs, err)
}

func TestEngineLogsDispatchEvents(t *testing.T) {
	t.Parallel()

	logger := &captureLogger{}

	engine := New(articleTable(), "draft", WithLogger[*article](logger))
	engine.SetErrorHandler(func(message string) {})

	err := engine.Register(Wildcard, func(ctx context.Context, a *article) error { return nil })
	require.NoError(t, err)

	ok, err := engine.Dispatch(context.Background(), "inReview", &article{})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = engine.Dispatch(context.Background(), "published", &article{})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"draft", "inReview"}}, logger.executed)
	assert.Equal(t, []string{"Invalid transition from inReview requested: published"}, logger.rejected)
	assert.Equal(t, []string{Wildcard}, logger.completed)
}

func TestEngineLogsHandlerError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	logger := &captureLogger{}

	engine := New(articleTable(), "draft", WithLogger[*article](logger))

	err := engine.Register("inReview", func(ctx context.Context, a *article) error { return errBoom })
	require.NoError(t, err)

	_, err = engine.Dispatch(context.Background(), "inReview", &article{})
	require.ErrorIs(t, err, errBoom)

	require.Len(t, logger.errs, 1)
	assert.ErrorIs(t, logger.errs[0], errBoom)
	assert.Empty(t, logger.executed)
}

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	// Exercises the slog-backed logger end to end; output goes to the test log.
	logger := NewSlogLogger(slogt.New(t))

	engine := New(articleTable(), "draft", WithLogger[*article](logger))

	ok, err := engine.Dispatch(context.Background(), "inReview", &article{})
	require.NoError(t, err)
	require.True(t, ok)

	logger.TransitionRejected(context.Background(), "a", "b", "msg")
	logger.HandlerCompleted(context.Background(), Wildcard, time.Millisecond, nil)
	logger.HandlerCompleted(context.Background(), "inReview", time.Millisecond, errors.New("late"))
}
