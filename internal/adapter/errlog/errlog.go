// Package errlog keeps the operator-facing diagnostic log: one
// "timestamp - Error: detail" line per failed provider call.
package errlog

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Millisecond precision, matching the lines already in existing logs.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type Log struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// Open appends to path, rotating once the file exceeds maxSizeMB.
func Open(path string, maxSizeMB, maxBackups int) *Log {
	return New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	})
}

func New(w io.Writer) *Log {
	return &Log{w: w, now: time.Now}
}

func (l *Log) Record(err error) error {
	detail := "unknown error"
	if err != nil {
		detail = strings.ReplaceAll(err.Error(), "\n", " ")
	}
	line := fmt.Sprintf("%s - Error: %s\n", l.now().UTC().Format(timeLayout), detail)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, werr := io.WriteString(l.w, line)
	return werr
}

func (l *Log) Close() error {
	if c, ok := l.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
