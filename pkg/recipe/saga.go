package recipe

import (
	"context"

	"Go-Recipe-Hub/domain"

	"go.uber.org/zap"
)

type sagaStep struct {
	name string
	run  func(ctx context.Context) error
	// compensate must tolerate a partially applied run.
	compensate func(ctx context.Context) error
}

// saga runs ordered steps; when one fails, the failed step and every earlier step
// are compensated in reverse order.
type saga struct {
	name   string
	logger *zap.Logger
	steps  []sagaStep
}

func newSaga(name string, logger *zap.Logger) *saga {
	return &saga{name: name, logger: logger}
}

func (s *saga) step(name string, run, compensate func(ctx context.Context) error) *saga {
	s.steps = append(s.steps, sagaStep{name: name, run: run, compensate: compensate})
	return s
}

func (s *saga) execute(ctx context.Context) error {
	for i, st := range s.steps {
		if err := st.run(ctx); err != nil {
			s.logger.Error("saga step failed",
				zap.String("saga", s.name),
				zap.String("step", st.name),
				zap.Error(err),
			)
			s.rollback(ctx, i)
			return domain.NewPersistenceError(s.name+"."+st.name, err)
		}
	}
	return nil
}

func (s *saga) rollback(ctx context.Context, failed int) {
	ctx = context.WithoutCancel(ctx)
	for i := failed; i >= 0; i-- {
		st := s.steps[i]
		if st.compensate == nil {
			continue
		}
		if err := st.compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", st.name),
				zap.Error(err),
			)
		}
	}
}
