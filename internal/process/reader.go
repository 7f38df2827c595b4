package process

import "io"

// exitNotice marks the end of a child stream in the log, covering both
// orderly exits and dropped pipes.
const exitNotice = "Process exited or stream closed"

// readStream drains one child stream into the log store. Each reader
// owns its half of the pipe: it splits chunks into lines, flushes the
// remainder when the stream ends, then appends the closing notice and
// reports the exit exactly once. Read errors end the stream the same
// way EOF does; the reader never outlives its pipe.
func (m *Manager) readStream(kind, stream string, r io.Reader) {
	var splitter lineSplitter
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range splitter.Feed(buf[:n]) {
				m.emitLog(kind, stream, line)
			}
		}
		if err != nil {
			break
		}
	}
	if line, ok := splitter.Flush(); ok {
		m.emitLog(kind, stream, line)
	}
	m.emitLog(kind, StreamStderr, exitNotice)
	m.sendExit(kind)
	m.notify()
}
