package sim

import "sync"

// Disposer releases everything Start acquired. Release is idempotent.
type Disposer struct {
	once    sync.Once
	release func()
}

func newDisposer(release func()) *Disposer {
	return &Disposer{release: release}
}

func (d *Disposer) Release() {
	if d == nil {
		return
	}
	d.once.Do(d.release)
}
