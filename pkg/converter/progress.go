package converter

import (
	"context"
	"sync"
)

// Progress is the lazy percentage stream of one conversion. It is
// single-traversal and non-restartable: read C until it closes, then
// check Err. Abandoning the stream via Cancel still terminates the
// underlying subprocess.
type Progress struct {
	ch     chan int
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func newProgress(cancel context.CancelFunc) *Progress {
	return &Progress{
		ch:     make(chan int),
		cancel: cancel,
	}
}

// C yields integer percentages in [0,100]. The channel closes when the
// conversion finishes, fails, or is cancelled.
func (p *Progress) C() <-chan int {
	return p.ch
}

// Cancel aborts the conversion and reaps the engine subprocess. Safe to
// call more than once.
func (p *Progress) Cancel() {
	p.cancel()
}

// Err returns the terminal error, if any, once C has closed.
func (p *Progress) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Progress) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}
