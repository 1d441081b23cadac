package ports

import "time"

// Niveles de notificación visibles para el operador (toasts).
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notification mensaje que la interfaz muestra al operador.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier puerto de salida para avisos al operador. La presentación queda fuera del dominio.
type Notifier interface {
	Notify(level, message string)
}

// NotifierFunc adapta una función al puerto Notifier.
type NotifierFunc func(level, message string)

// Notify implementa Notifier.
func (f NotifierFunc) Notify(level, message string) { f(level, message) }
