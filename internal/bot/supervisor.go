package bot

import (
	"log/slog"

	"github.com/sourcegraph/conc"
)

// Supervisor: deferred 작업용 고루틴 관리자. 패닉을 복구해 로그로 남기고,
// 셧다운 시 진행 중인 작업이 끝날 때까지 기다린다.
type Supervisor struct {
	wg     conc.WaitGroup
	logger *slog.Logger
}

// NewSupervisor: 슈퍼바이저를 생성한다.
func NewSupervisor(logger *slog.Logger) *Supervisor {
	return &Supervisor{logger: logger}
}

// Go: 작업을 백그라운드로 실행한다.
func (s *Supervisor) Go(fn func()) {
	s.wg.Go(fn)
}

// Wait: 모든 작업 종료를 기다린다. 복구된 패닉은 로그로만 남긴다.
func (s *Supervisor) Wait() {
	if recovered := s.wg.WaitAndRecover(); recovered != nil {
		s.logger.Error("deferred_task_panic", slog.Any("panic", recovered.Value))
	}
}
