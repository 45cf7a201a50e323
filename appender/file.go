package appender

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// File writes formatted messages to a file, rotating it by size, age, or
// interval and pruning old backups — adapted from the teacher's
// handler.FileHandler, with the async queue dropped since the worker is
// already the single writer; only the rotation and backup-cleanup logic
// survives.
type File struct {
	mu             sync.Mutex
	filename       string
	file           *os.File
	maxSize        int64
	maxAge         time.Duration
	maxBackups     int
	rotateInterval time.Duration
	currentSize    int64
	lastRotateTime time.Time
}

// FileConfig configures rotation thresholds. A zero value disables that
// rotation trigger.
type FileConfig struct {
	Filename       string
	MaxSize        int64
	MaxAge         time.Duration
	MaxBackups     int
	RotateInterval time.Duration
}

// NewFile opens (creating if necessary) cfg.Filename for append.
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("appender: file appender requires a filename")
	}
	if dir := filepath.Dir(cfg.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{
		filename:       cfg.Filename,
		file:           f,
		maxSize:        cfg.MaxSize,
		maxAge:         cfg.MaxAge,
		maxBackups:     cfg.MaxBackups,
		rotateInterval: cfg.RotateInterval,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
	}, nil
}

func (h *File) Write(msg LoggedMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rotateIfNeeded(); err != nil {
		return err
	}
	n, err := h.file.Write(msg.Text)
	if err == nil {
		h.currentSize += int64(n)
	}
	return err
}

func (h *File) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Sync()
}

func (h *File) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Close()
}

func (h *File) SetEncoding(string) error { return nil }

func (h *File) rotateIfNeeded() error {
	needRotate := h.maxSize > 0 && h.currentSize >= h.maxSize
	needRotate = needRotate || (h.maxAge > 0 && time.Since(h.lastRotateTime) >= h.maxAge)
	needRotate = needRotate || (h.rotateInterval > 0 && time.Since(h.lastRotateTime) >= h.rotateInterval)
	if !needRotate {
		return nil
	}
	return h.rotate()
}

func (h *File) rotate() error {
	if err := h.file.Sync(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02T15-04-05")
	rotatedName := fmt.Sprintf("%s.%s", h.filename, timestamp)
	if err := os.Rename(h.filename, rotatedName); err != nil {
		f, openErr := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		h.file = f
		return err
	}

	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	f, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	h.file = f
	h.currentSize = 0
	h.lastRotateTime = time.Now()
	return nil
}

func (h *File) cleanupOldBackups() {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return
	}
	var backups []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), base+".") {
			backups = append(backups, m)
		}
	}
	sort.Slice(backups, func(i, j int) bool {
		ii, erri := os.Stat(backups[i])
		ij, errj := os.Stat(backups[j])
		if erri != nil || errj != nil {
			return false
		}
		return ii.ModTime().Before(ij.ModTime())
	})
	if len(backups) > h.maxBackups {
		for _, b := range backups[:len(backups)-h.maxBackups] {
			_ = os.Remove(b)
		}
	}
}
