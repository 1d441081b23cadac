// Package notify implementa el puerto ports.Notifier: registro en log y
// buffer acotado que la interfaz HTTP consume como toasts.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
)

// DefaultFeedCapacity notificaciones retenidas antes de descartar las más viejas.
const DefaultFeedCapacity = 50

// ── LogNotifier ───────────────────────────────────────────────────────────────

// LogNotifier escribe cada notificación en zerolog con el nivel equivalente.
type LogNotifier struct {
	log zerolog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify implementa ports.Notifier.
func (n *LogNotifier) Notify(level, message string) {
	var ev *zerolog.Event
	switch level {
	case ports.LevelError:
		ev = n.log.Error()
	case ports.LevelWarning:
		ev = n.log.Warn()
	default:
		ev = n.log.Info()
	}
	ev.Str("level_ui", level).Msg(message)
}

// ── Feed ──────────────────────────────────────────────────────────────────────

// Feed buffer circular de notificaciones pendientes de mostrar.
type Feed struct {
	mu    sync.Mutex
	buf   []ports.Notification
	start int
	size  int
	now   func() time.Time
}

var _ ports.Notifier = (*Feed)(nil)

// NewFeed crea un feed con la capacidad dada (<= 0 usa DefaultFeedCapacity).
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &Feed{buf: make([]ports.Notification, capacity), now: time.Now}
}

// Notify agrega la notificación; si el buffer está lleno descarta la más antigua.
func (f *Feed) Notify(level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := ports.Notification{Level: level, Message: message, At: f.now().UTC()}
	idx := (f.start + f.size) % len(f.buf)
	f.buf[idx] = n
	if f.size < len(f.buf) {
		f.size++
		return
	}
	f.start = (f.start + 1) % len(f.buf)
}

// Pending devuelve las notificaciones sin consumirlas, de la más vieja a la más nueva.
func (f *Feed) Pending() []ports.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Drain devuelve y vacía las notificaciones pendientes.
func (f *Feed) Drain() []ports.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.snapshotLocked()
	f.start, f.size = 0, 0
	return out
}

func (f *Feed) snapshotLocked() []ports.Notification {
	out := make([]ports.Notification, f.size)
	for i := 0; i < f.size; i++ {
		out[i] = f.buf[(f.start+i)%len(f.buf)]
	}
	return out
}

// ── Fanout ────────────────────────────────────────────────────────────────────

// Fanout reenvía cada notificación a varios destinos.
type Fanout []ports.Notifier

var _ ports.Notifier = Fanout(nil)

// Notify implementa ports.Notifier.
func (f Fanout) Notify(level, message string) {
	for _, n := range f {
		if n != nil {
			n.Notify(level, message)
		}
	}
}
