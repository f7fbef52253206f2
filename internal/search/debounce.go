package search

import (
	"sync"
	"time"
)

// DefaultDebounce es la ventana recomendada entre teclas
const DefaultDebounce = 300 * time.Millisecond

// Debouncer ejecuta fn sólo cuando pasa la ventana sin nuevas entradas.
// Cada Trigger cancela y reemplaza el timer pendiente.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer con window <= 0 usa DefaultDebounce
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Window devuelve la ventana configurada
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger programa fn; si llega otra llamada antes de la ventana, fn se descarta
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// un timer ya reemplazado o cancelado puede disparar igual
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel descarta lo pendiente; el debouncer sigue usable
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending indica si hay una ejecución programada
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancela y rechaza futuros Trigger
func (d *Debouncer) Stop() {
	d.Cancel()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
