package offline

import "sync/atomic"

// Monitor mantiene el estado de conectividad de la estación. No sondea: el
// transporte (hooks del cliente HTTP) le notifica los cambios de forma
// asíncrona y el flag interno se actualiza al vuelo.
type Monitor struct {
	online atomic.Bool
}

// NewMonitor crea el monitor. Arranca optimista (online) hasta la primera
// notificación en contra.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.online.Store(true)
	return m
}

// Notify registra un cambio de conectividad reportado por el transporte.
func (m *Monitor) Notify(online bool) {
	m.online.Store(online)
}

// Online refleja la señal de alcanzabilidad de red actual.
func (m *Monitor) Online() bool {
	return m.online.Load()
}
