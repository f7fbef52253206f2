// Package deals recalcula el tiempo restante de cada promoción a intervalos
// fijos mientras haya observadores suscritos.
package deals

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/logger"
	"storefront/internal/models"
)

// ExpiredLabel se muestra cuando la promoción ya terminó
const ExpiredLabel = "Deal Expired"

// DefaultTick es el intervalo de recálculo
const DefaultTick = time.Second

var ErrDealNotFound = errors.New("deal not found")

// FormatRemaining omite las horas si son cero, y también los minutos si
// horas y minutos son cero: "3h 12m 5s", "12m 5s", "5s".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}

	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Update es la foto de etiquetas por id de promoción en un tick
type Update map[int]string

type Option func(*Scheduler)

// WithClock reemplaza time.Now, útil en tests
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

func WithTick(tick time.Duration) Option {
	return func(s *Scheduler) {
		if tick > 0 {
			s.tick = tick
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger.OrNoOp(log)
	}
}

type Scheduler struct {
	mu        sync.Mutex
	deals     []models.Deal
	now       func() time.Time
	tick      time.Duration
	observers map[uint64]func(Update)
	nextID    uint64
	done      chan struct{} // no nil mientras el ticker corre
	stopped   bool
	logger    logger.Logger
}

func NewScheduler(deals []models.Deal, opts ...Option) *Scheduler {
	s := &Scheduler{
		deals:     append([]models.Deal(nil), deals...),
		now:       time.Now,
		tick:      DefaultTick,
		observers: make(map[uint64]func(Update)),
		logger:    logger.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Tick() time.Duration {
	return s.tick
}

// Deals devuelve las promociones en el orden del catálogo
func (s *Scheduler) Deals() []models.Deal {
	return append([]models.Deal(nil), s.deals...)
}

func (s *Scheduler) Deal(id int) (models.Deal, error) {
	for _, d := range s.deals {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Deal{}, fmt.Errorf("deal %d: %w", id, ErrDealNotFound)
}

// RemainingFor calcula la etiqueta de una promoción con el reloj actual
func (s *Scheduler) RemainingFor(deal models.Deal) string {
	return FormatRemaining(deal.EndTime.Sub(s.now()))
}

// Remaining devuelve false si el id no corresponde a ninguna promoción
func (s *Scheduler) Remaining(id int) (string, bool) {
	d, err := s.Deal(id)
	if err != nil {
		return "", false
	}
	return s.RemainingFor(d), true
}

// Snapshot recalcula todas las etiquetas con una sola lectura del reloj
func (s *Scheduler) Snapshot() Update {
	now := s.now()
	out := make(Update, len(s.deals))
	for _, d := range s.deals {
		out[d.ID] = FormatRemaining(d.EndTime.Sub(now))
	}
	return out
}

// Subscribe entrega una foto inmediata y luego una por tick. El ticker
// arranca con el primer observador y se detiene cuando sale el último.
func (s *Scheduler) Subscribe(fn func(Update)) (cancel func()) {
	if fn == nil {
		panic("deals: nil observer")
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.observers[id] = fn
	if s.done == nil {
		s.done = make(chan struct{})
		go s.run(s.done)
		s.logger.Debug("Deal ticker started", map[string]interface{}{
			"tick": s.tick.String(),
		})
	}
	s.mu.Unlock()

	fn(s.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Scheduler) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.observers, id)
	if len(s.observers) == 0 {
		s.haltLocked()
	}
}

// haltLocked detiene el ticker; requiere s.mu tomado
func (s *Scheduler) haltLocked() {
	if s.done == nil {
		return
	}
	close(s.done)
	s.done = nil
	s.logger.Debug("Deal ticker stopped", nil)
}

func (s *Scheduler) run(done chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.emit(done)
		}
	}
}

// emit notifica fuera del lock; un tick que llega tras detenerse se descarta
func (s *Scheduler) emit(done chan struct{}) {
	s.mu.Lock()
	if s.done != done {
		s.mu.Unlock()
		return
	}
	observers := make([]func(Update), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	update := s.Snapshot()
	for _, fn := range observers {
		fn(update)
	}
}

// Ticking indica si hay un ticker activo
func (s *Scheduler) Ticking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// Stop suelta a todos los observadores; después de Stop no hay más ticks
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.observers = make(map[uint64]func(Update))
	s.haltLocked()
}
