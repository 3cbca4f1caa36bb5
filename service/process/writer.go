package process

import (
	"bytes"
	"io"
	"sync"
)

// lockedWriter serialises writes of whole lines coming from many children.
type lockedWriter struct {
	mux sync.Mutex
	w   io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.w.Write(p)
}

// lineWriter buffers partial input and forwards complete lines, each
// preceded by prefix, in a single write.
type lineWriter struct {
	prefix []byte
	out    io.Writer
	buf    []byte
	ready  chan struct{}
}

func newLineWriter(out io.Writer, prefix string) *lineWriter {
	ret := newPendingLineWriter(out)
	ret.setPrefix(prefix)
	return ret
}

// newPendingLineWriter creates a writer whose Write blocks until setPrefix is called.
func newPendingLineWriter(out io.Writer) *lineWriter {
	return &lineWriter{out: out, ready: make(chan struct{})}
}

// setPrefix must be called exactly once.
func (l *lineWriter) setPrefix(prefix string) {
	l.prefix = []byte(prefix)
	close(l.ready)
}

func (l *lineWriter) Write(p []byte) (int, error) {
	<-l.ready
	l.buf = append(l.buf, p...)
	for {
		idx := bytes.IndexByte(l.buf, '\n')
		if idx < 0 {
			break
		}
		if err := l.emit(l.buf[:idx+1]); err != nil {
			return len(p), err
		}
		l.buf = l.buf[idx+1:]
	}
	return len(p), nil
}

// Flush writes a trailing partial line. Prefixed output is terminated with
// a newline so the next line of another child starts on its own row.
func (l *lineWriter) Flush() error {
	if len(l.buf) == 0 {
		return nil
	}
	line := l.buf
	l.buf = nil
	if len(l.prefix) > 0 {
		line = append(line, '\n')
	}
	return l.emit(line)
}

func (l *lineWriter) emit(line []byte) error {
	if len(l.prefix) == 0 {
		_, err := l.out.Write(line)
		return err
	}
	data := make([]byte, 0, len(l.prefix)+len(line))
	data = append(data, l.prefix...)
	data = append(data, line...)
	_, err := l.out.Write(data)
	return err
}
