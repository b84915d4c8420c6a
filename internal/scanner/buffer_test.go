package scanner_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/scanner"
)

// collector junta los códigos emitidos por el buffer de forma segura.
type collector struct {
	mu    sync.Mutex
	codes []string
}

func (c *collector) onScan(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes = append(c.codes, code)
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.codes...)
}

// Ráfaga rápida terminada en Enter: se emite exactamente un escaneo con el
// código completo, y el buffer queda vacío.
func TestBuffer_RafagaConEnter_EmiteUnEscaneo(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(100*time.Millisecond, col.onScan)
	buf.Arm()

	for _, k := range []string{"A", "B", "C", "1", "2", "3"} {
		buf.Key(k)
	}
	buf.Key("Enter")

	require.Equal(t, []string{"ABC123"}, col.all())
	assert.Empty(t, buf.Buffered(), "tras emitir, el buffer arranca limpio")
	assert.True(t, buf.Armed(), "la sesión sigue armada para el siguiente escaneo")
}

// Sin terminador dentro de la ventana de inactividad, el parcial se descarta
// en silencio: nada se emite y el buffer queda vacío.
func TestBuffer_TimeoutDescartaParcial(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(30*time.Millisecond, col.onScan)
	buf.Arm()

	buf.Key("X")
	buf.Key("Y")
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, col.all(), "un parcial expirado nunca se emite")
	assert.Empty(t, buf.Buffered())

	// La sesión sigue viva: un escaneo posterior completo funciona normal
	buf.Key("9")
	buf.Key("Enter")
	assert.Equal(t, []string{"9"}, col.all())
}

// Cada tecla reinicia la ventana: una ráfaga más larga que la ventana total
// pero con separación corta entre teclas no expira.
func TestBuffer_CadaTeclaReiniciaLaVentana(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(50*time.Millisecond, col.onScan)
	buf.Arm()

	for _, k := range []string{"1", "2", "3", "4", "5"} {
		buf.Key(k)
		time.Sleep(20 * time.Millisecond)
	}
	buf.Key("Enter")

	assert.Equal(t, []string{"12345"}, col.all())
}

// Desarmado, las teclas no tienen ningún efecto.
func TestBuffer_DesarmadoIgnoraTeclas(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(100*time.Millisecond, col.onScan)

	buf.Key("A")
	buf.Key("Enter")

	assert.Empty(t, col.all())
	assert.Empty(t, buf.Buffered())
}

// Nombres de tecla multicarácter (modificadores, teclas de función) se
// ignoran sin cortar el código en curso.
func TestBuffer_TeclasMulticaracterNoRompenElCodigo(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(100*time.Millisecond, col.onScan)
	buf.Arm()

	buf.Key("A")
	buf.Key("Shift")
	buf.Key("B")
	buf.Key("F5")
	buf.Key("C")
	buf.Key("Enter")

	assert.Equal(t, []string{"ABC"}, col.all())
}

// Enter con buffer vacío no emite nada.
func TestBuffer_EnterSinBufferNoEmite(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(100*time.Millisecond, col.onScan)
	buf.Arm()

	buf.Key("Enter")
	buf.Key("Enter")

	assert.Empty(t, col.all())
}

// Disarm descarta el parcial, cancela el timer y es idempotente.
func TestBuffer_DisarmIdempotente(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(30*time.Millisecond, col.onScan)
	buf.Arm()

	buf.Key("A")
	buf.Key("B")
	buf.Disarm()
	buf.Disarm()
	buf.Disarm()

	assert.False(t, buf.Armed())
	assert.Empty(t, buf.Buffered())

	// El timer del parcial descartado no dispara nada raro después
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, col.all())

	// Rearmar deja la máquina como nueva
	buf.Arm()
	buf.Key("Z")
	buf.Key("Enter")
	assert.Equal(t, []string{"Z"}, col.all())
}

// Escaneos consecutivos emiten códigos separados, sin arrastre entre ellos.
func TestBuffer_EscaneosConsecutivos(t *testing.T) {
	col := &collector{}
	buf := scanner.NewBuffer(100*time.Millisecond, col.onScan)
	buf.Arm()

	for _, k := range []string{"K", "B", "Enter", "M", "N", "Enter"} {
		buf.Key(k)
	}

	assert.Equal(t, []string{"KB", "MN"}, col.all())
}
