package activity

import (
	"os"
	"sync"
	"time"

	"log/slog"

	"github.com/goccy/go-json"
)

// Entry: 명령어 실행 한 건의 활동 기록
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Command    string    `json:"command"`
	UserID     string    `json:"user_id"`
	GuildID    string    `json:"guild_id,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
}

// Logger: 명령어 활동을 JSONL 파일에 기록한다. 파일 경로가 비어 있으면 no-op으로 동작한다.
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	logger *slog.Logger
}

// NewLogger: 활동 로거를 생성한다. path가 비어 있으면 기록하지 않는 로거를 반환한다.
func NewLogger(path string, logger *slog.Logger) (*Logger, error) {
	if path == "" {
		return &Logger{logger: logger}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{file: file, logger: logger}, nil
}

// Record: 활동 한 건을 기록한다. 기록 실패는 경고 로그만 남기고 호출자에 전파하지 않는다.
func (l *Logger) Record(entry Entry) {
	if l.file == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		l.logger.Warn("activity_marshal_failed", slog.Any("error", err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(line, '\n')); err != nil {
		l.logger.Warn("activity_write_failed", slog.Any("error", err))
	}
}

// Close: 활동 로그 파일을 닫는다.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
