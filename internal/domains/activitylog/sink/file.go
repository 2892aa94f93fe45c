package sink

import (
	"clinic/shared/constant"
	"clinic/shared/logger"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// File appends one JSON line per record.
type File struct {
	mu     sync.Mutex
	logger zerolog.Logger
	file   *os.File
}

func NewFile(path string) (*File, error) {
	fileLogger, file, err := logger.NewFileLogger(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity log file: %w", err)
	}

	return &File{logger: fileLogger, file: file}, nil
}

func (f *File) Write(_ context.Context, record Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logger.Info().
		Str("at", record.Timestamp.Format(constant.LogTimeFormat)).
		Str("user", record.ActorName).
		Str("action", record.Action).
		Str("model", record.EntityType).
		Str("model_id", record.EntityID).
		Msg(record.Message)

	return nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.file.Close(); err != nil {
		return fmt.Errorf("failed to close activity log file: %w", err)
	}

	return nil
}
