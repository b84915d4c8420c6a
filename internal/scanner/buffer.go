// Package scanner reensambla las ráfagas de teclas de un lector de código de
// barras (que emula un teclado) en códigos discretos, y acumula lo escaneado
// en una sesión de recepción.
package scanner

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultInactivityWindow separa un escaneo del siguiente. Un lector físico
// emite todos los caracteres de un código en menos de 100ms; la escritura
// humana es más lenta y cae fuera de la ventana, así que no se interpreta
// como escaneo el uso normal del teclado mientras el modo está activo.
const DefaultInactivityWindow = 100 * time.Millisecond

// terminatorKey tecla que finaliza un escaneo (los lectores suelen emitirla).
const terminatorKey = "Enter"

// Buffer máquina de estados del escaneo: desarmado / armado sin buffer /
// armado acumulando. Un único timer cancelable por sesión; se cancela y
// rearma atómicamente respecto al manejo de teclas (nunca hay dos pendientes).
type Buffer struct {
	mu     sync.Mutex
	window time.Duration
	onScan func(code string)

	armed bool
	buf   strings.Builder
	timer *time.Timer
	seq   uint64 // invalida disparos de timers ya cancelados
}

// NewBuffer construye el buffer. window <= 0 usa DefaultInactivityWindow.
// onScan se invoca de forma síncrona con cada código completado.
func NewBuffer(window time.Duration, onScan func(code string)) *Buffer {
	if window <= 0 {
		window = DefaultInactivityWindow
	}
	return &Buffer{window: window, onScan: onScan}
}

// Arm activa el modo escaneo. Idempotente.
func (b *Buffer) Arm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.armed = true
}

// Disarm desactiva el modo escaneo: descarta cualquier buffer en curso y
// cancela el timer. Idempotente; llamar ya desarmado no cambia nada.
func (b *Buffer) Disarm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.armed = false
	b.buf.Reset()
	b.cancelTimerLocked()
}

// Armed indica si la sesión está escuchando teclas.
func (b *Buffer) Armed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.armed
}

// Buffered devuelve el contenido acumulado del escaneo en curso.
func (b *Buffer) Buffered() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Key procesa una tecla con la semántica de KeyboardEvent.key: caracteres de
// un solo rune se acumulan, "Enter" finaliza, nombres multicarácter ("Shift",
// "F5", ...) se ignoran sin romper la sesión. Desarmado, todo se ignora.
func (b *Buffer) Key(key string) {
	b.mu.Lock()
	if !b.armed {
		b.mu.Unlock()
		return
	}

	if key == terminatorKey {
		if b.buf.Len() == 0 {
			b.mu.Unlock()
			return
		}
		code := b.buf.String()
		b.buf.Reset()
		b.cancelTimerLocked()
		onScan := b.onScan
		b.mu.Unlock()
		// Callback síncrono fuera del lock: puede volver a entrar al buffer
		if onScan != nil {
			onScan(code)
		}
		return
	}

	if utf8.RuneCountInString(key) != 1 {
		b.mu.Unlock()
		return
	}

	b.buf.WriteString(key)
	b.rearmTimerLocked()
	b.mu.Unlock()
}

// cancelTimerLocked detiene el timer pendiente e invalida su disparo.
func (b *Buffer) cancelTimerLocked() {
	b.seq++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// rearmTimerLocked reinicia la ventana de inactividad. Si expira antes del
// terminador, el buffer se descarta sin emitir nada (teclas sueltas que nunca
// formaron un escaneo completo).
func (b *Buffer) rearmTimerLocked() {
	b.seq++
	seq := b.seq
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.seq != seq || !b.armed {
			return // disparo de un timer ya cancelado o sesión cerrada
		}
		b.buf.Reset()
		b.timer = nil
	})
}
