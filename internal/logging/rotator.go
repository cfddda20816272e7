package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultLogFileName is the active log file name inside the log directory.
const DefaultLogFileName = "dockyard.log"

// RotatorConfig configures file logging.
type RotatorConfig struct {
	Dir        string
	FileName   string // defaults to DefaultLogFileName
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer that rotates its file by size and prunes old
// backups by age and count.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

// NewLogRotator creates the log directory and opens the active file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.Dir == "" {
		return nil, errors.New("log directory required")
	}
	if cfg.MaxSizeMB <= 0 {
		return nil, fmt.Errorf("log max size must be positive, got %d", cfg.MaxSizeMB)
	}
	name := cfg.FileName
	if name == "" {
		name = DefaultLogFileName
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		baseDir:    cfg.Dir,
		baseName:   name,
		maxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		maxBackups: cfg.MaxBackups,
		compress:   cfg.Compress,
		now:        time.Now,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the active log file path.
func (r *LogRotator) Path() string {
	return filepath.Join(r.baseDir, r.baseName)
}

func (r *LogRotator) openCurrentFile() error {
	logPath := r.Path()

	r.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	// An empty file always takes the write, even when p alone exceeds maxSize.
	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
	}
	r.currentFile = nil

	backupPath := r.backupPath()
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

// backupPath picks a timestamped name that does not collide with an earlier
// rotation in the same second.
func (r *LogRotator) backupPath() string {
	base := fmt.Sprintf("%s.%s", r.baseName, r.now().Format("2006-01-02-15-04-05"))
	path := filepath.Join(r.baseDir, base)
	for i := 1; exists(path) || exists(path+".gz"); i++ {
		path = filepath.Join(r.baseDir, fmt.Sprintf("%s.%d", base, i))
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func compressFile(filePath string) (err error) {
	inputFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = inputFile.Close() }()

	outputFile, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := outputFile.Close(); err == nil {
			err = cerr
		}
	}()

	gzipWriter := gzip.NewWriter(outputFile)
	if _, err := io.Copy(gzipWriter, inputFile); err != nil {
		_ = gzipWriter.Close()
		return err
	}
	return gzipWriter.Close()
}

// Backups lists rotated files, oldest first.
func (r *LogRotator) Backups() []string {
	infos := r.backupInfos()
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name())
	}
	return out
}

func (r *LogRotator) backupInfos() []os.FileInfo {
	files, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil
	}

	var backups []os.FileInfo
	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), r.baseName+".") {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		backups = append(backups, info)
	}
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].ModTime().Equal(backups[j].ModTime()) {
			return backups[i].Name() < backups[j].Name()
		}
		return backups[i].ModTime().Before(backups[j].ModTime())
	})
	return backups
}

func (r *LogRotator) cleanup() {
	now := r.now()
	var kept []os.FileInfo
	for _, info := range r.backupInfos() {
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			if err := os.Remove(filepath.Join(r.baseDir, info.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
			}
			continue
		}
		kept = append(kept, info)
	}

	if r.maxBackups <= 0 || len(kept) <= r.maxBackups {
		return
	}
	for _, info := range kept[:len(kept)-r.maxBackups] {
		if err := os.Remove(filepath.Join(r.baseDir, info.Name())); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
		}
	}
}

// Close releases the active file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
