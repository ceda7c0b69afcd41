package process

import (
	"github.com/gabriel-vasile/mimetype"
)

// magicSniffWindow mirrors mimetype's own internal read limit: detection
// never needs more than the file header.
const magicSniffWindow = 3072

// MagicProcessor buffers the file header and sniffs its MIME type with
// gabriel-vasile/mimetype, standing in for the `file` command (pure Go, no
// process exec, no cgo).
type MagicProcessor struct {
	buf  []byte
	full bool
}

func NewMagicProcessor() *MagicProcessor {
	return &MagicProcessor{buf: make([]byte, 0, magicSniffWindow)}
}

func (m *MagicProcessor) Name() string { return "file_magic" }

func (m *MagicProcessor) Consume(p []byte) {
	if m.full {
		return
	}
	remaining := magicSniffWindow - len(m.buf)
	if remaining <= 0 {
		m.full = true
		return
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	m.buf = append(m.buf, p...)
	if len(m.buf) >= magicSniffWindow {
		m.full = true
	}
}

func (m *MagicProcessor) Finish() (any, error) {
	mt := mimetype.Detect(m.buf)
	return mt.String(), nil
}
