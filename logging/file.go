package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// RotatingFile is an io.Writer that rolls its file over by size and age,
// gzipping the rolled file and keeping at most maxFiles archives.
type RotatingFile struct {
	mu           sync.Mutex
	dir          string
	filename     string
	maxBytes     int64
	maxFiles     int
	current      *os.File
	currentSize  int64
	lastRotation time.Time
}

// NewRotatingFile opens (or creates) dir/filename for appending.
func NewRotatingFile(dir, filename string, maxBytes int64, maxFiles int) (*RotatingFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	rf := &RotatingFile{
		dir:          dir,
		filename:     filename,
		maxBytes:     maxBytes,
		maxFiles:     maxFiles,
		lastRotation: time.Now(),
	}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

// Path returns the path of the live log file.
func (rf *RotatingFile) Path() string {
	return filepath.Join(rf.dir, rf.filename)
}

func (rf *RotatingFile) open() error {
	f, err := os.OpenFile(rf.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	rf.current = f
	rf.currentSize = info.Size()
	return nil
}

func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.currentSize > 0 && (rf.currentSize+int64(len(p)) > rf.maxBytes || time.Since(rf.lastRotation) > 24*time.Hour) {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := rf.current.Write(p)
	rf.currentSize += int64(n)
	return n, err
}

func (rf *RotatingFile) rotate() error {
	if err := rf.current.Close(); err != nil {
		return fmt.Errorf("close current file: %w", err)
	}
	rolled := filepath.Join(rf.dir, fmt.Sprintf("%s.%s", rf.filename, time.Now().Format("20060102-150405.000000000")))
	if err := os.Rename(rf.Path(), rolled); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}
	if err := gzipFile(rolled); err != nil {
		return err
	}
	rf.prune()
	rf.lastRotation = time.Now()
	return rf.open()
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rolled log: %w", err)
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		out.Close()
		os.Remove(path + ".gz")
		return fmt.Errorf("compress rolled log: %w", err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		return fmt.Errorf("flush archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return os.Remove(path)
}

func (rf *RotatingFile) prune() {
	matches, err := filepath.Glob(filepath.Join(rf.dir, rf.filename+".*.gz"))
	if err != nil || len(matches) <= rf.maxFiles {
		return
	}
	// Archive names embed a sortable timestamp.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-rf.maxFiles] {
		os.Remove(path)
	}
}

// Close closes the live file.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.current == nil {
		return nil
	}
	err := rf.current.Close()
	rf.current = nil
	return err
}
