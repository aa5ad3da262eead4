package recipe

import (
	"context"
	"errors"
	"testing"

	"Go-Recipe-Hub/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	var trail []string
	record := func(entry string, err error) func(context.Context) error {
		return func(ctx context.Context) error {
			require.NoError(t, ctx.Err())
			trail = append(trail, entry)
			return err
		}
	}
	boom := errors.New("boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newSaga("test", zap.NewNop()).
		step("one", record("run one", nil), record("undo one", nil)).
		step("two", record("run two", nil), nil).
		step("three", record("run three", boom), record("undo three", errors.New("ignored"))).
		step("four", record("run four", nil), record("undo four", nil)).
		execute(context.WithoutCancel(ctx))

	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, domain.ErrPersistenceFailure)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "test.three", perr.Op)

	require.Equal(t, []string{"run one", "run two", "run three", "undo three", "undo one"}, trail)
}

func TestSagaRollbackIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undone bool

	err := newSaga("test", zap.NewNop()).
		step("cancel", func(context.Context) error {
			cancel()
			return context.Canceled
		}, func(ctx context.Context) error {
			undone = ctx.Err() == nil
			return nil
		}).
		execute(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.True(t, undone)
}

func TestSagaSucceeds(t *testing.T) {
	runs := 0
	run := func(context.Context) error { runs++; return nil }
	require.NoError(t, newSaga("test", zap.NewNop()).step("a", run, nil).step("b", run, nil).execute(context.Background()))
	require.Equal(t, 2, runs)
}
