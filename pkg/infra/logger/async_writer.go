package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AsyncWriter buffers log lines through a channel so that request handling
// never blocks on file I/O. Writes are best-effort: when the buffer is full
// the line is dropped rather than stalling the caller.
type AsyncWriter struct {
	writer *bufio.Writer
	file   *os.File
	mu     sync.Mutex
	lines  chan []byte
	done   chan struct{}
}

func NewAsyncWriter(logFile string, bufferSize int) (*AsyncWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncWriter{
		writer: bufio.NewWriterSize(file, bufferSize),
		file:   file,
		lines:  make(chan []byte, 1000),
		done:   make(chan struct{}),
	}

	go aw.drain()

	return aw, nil
}

func (aw *AsyncWriter) Write(p []byte) (int, error) {
	select {
	case aw.lines <- append([]byte{}, p...):
		return len(p), nil
	default:
		return 0, nil
	}
}

func (aw *AsyncWriter) drain() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case line := <-aw.lines:
			aw.mu.Lock()
			_, _ = aw.writer.Write(line)
			aw.mu.Unlock()

		case <-ticker.C:
			aw.mu.Lock()
			_ = aw.writer.Flush()
			aw.mu.Unlock()

		case <-aw.done:
			aw.mu.Lock()
			_ = aw.writer.Flush()
			aw.mu.Unlock()
			return
		}
	}
}

func (aw *AsyncWriter) Close() {
	close(aw.done)
	_ = aw.file.Close()
}
