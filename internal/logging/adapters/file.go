package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resume-extract/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output with
// size-based rotation.
type FileAdapter struct {
	name   string
	config FileConfig
	file   *os.File
	size   int64
	mu     sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath   string `yaml:"file_path"`
	Format     string `yaml:"format"`      // json or text
	MaxSize    int64  `yaml:"max_size"`    // bytes; 0 disables rotation
	MaxBackups int    `yaml:"max_backups"` // rotated files to keep
	CreateDirs bool   `yaml:"create_dirs"`
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	adapter := &FileAdapter{
		name:   name,
		config: config,
	}

	if err := adapter.open(); err != nil {
		return nil, err
	}

	return adapter, nil
}

// Write writes a log entry to the file, rotating first if the entry would
// push the file past its size limit.
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	line, err := a.format(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	if a.config.MaxSize > 0 && a.size+int64(len(line))+1 > a.config.MaxSize {
		if err := a.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	n, err := fmt.Fprintln(a.file, line)
	a.size += int64(n)
	return err
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Health verifies the log file is still writable
func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("log file is not open")
	}
	if _, err := os.Stat(a.config.FilePath); err != nil {
		return fmt.Errorf("log file is not accessible: %w", err)
	}
	return nil
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}

func (a *FileAdapter) open() error {
	file, err := os.OpenFile(a.config.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	a.file = file
	a.size = info.Size()
	return nil
}

// rotate renames the current file with a timestamp suffix and reopens a
// fresh one, pruning the oldest backups beyond MaxBackups.
func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return err
	}

	backup := fmt.Sprintf("%s.%s", a.config.FilePath, time.Now().Format("20060102T150405"))
	if err := os.Rename(a.config.FilePath, backup); err != nil {
		return err
	}

	a.pruneBackups()
	return a.open()
}

func (a *FileAdapter) pruneBackups() {
	if a.config.MaxBackups <= 0 {
		return
	}

	matches, err := filepath.Glob(a.config.FilePath + ".*")
	if err != nil || len(matches) <= a.config.MaxBackups {
		return
	}

	// Glob results are lexically sorted; timestamp suffixes sort oldest first
	for _, old := range matches[:len(matches)-a.config.MaxBackups] {
		os.Remove(old)
	}
}

func (a *FileAdapter) format(entry *types.LogEntry) (string, error) {
	if a.config.Format == "text" {
		out := fmt.Sprintf("%s [%s] %s", entry.Timestamp.Format(time.RFC3339), entry.Level.String(), entry.Message)
		for k, v := range entry.Fields {
			out += fmt.Sprintf(" %s=%v", k, v)
		}
		return out, nil
	}

	logData := map[string]interface{}{
		"level":   entry.Level.String(),
		"message": entry.Message,
		"time":    entry.Timestamp.Format(time.RFC3339),
	}
	for k, v := range entry.Fields {
		logData[k] = v
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
