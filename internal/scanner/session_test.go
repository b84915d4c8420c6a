package scanner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/scanner"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type fakeLookup struct {
	result *scanner.LookupResult
	err    error
	calls  int
}

func (f *fakeLookup) Lookup(ctx context.Context, barcode string) (*scanner.LookupResult, error) {
	f.calls++
	return f.result, f.err
}

func catalogo() []dto.ProductResponse {
	return []dto.ProductResponse{
		{ID: "p1", Name: "Teclado", InventoryNumber: "KB-002", Quantity: decimal.NewFromInt(8)},
		{ID: "p2", Name: "Monitor", InventoryNumber: "MN-003", Quantity: decimal.NewFromInt(23)},
	}
}

func sessionLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// Escaneos repetidos del mismo código suman +1 sobre la misma fila pendiente.
func TestSession_EscaneosRepetidosCoalescen(t *testing.T) {
	s := scanner.NewSession(catalogo(), nil, sessionLogger())

	out := s.Scan(context.Background(), "KB-002")
	require.True(t, out.Matched)
	assert.Equal(t, int64(1), out.Item.Quantity)

	s.Scan(context.Background(), "KB-002")
	out = s.Scan(context.Background(), "KB-002")
	require.True(t, out.Matched)
	assert.Equal(t, int64(3), out.Item.Quantity)

	items := s.Items()
	require.Len(t, items, 1, "el mismo producto no genera filas duplicadas")
	assert.Equal(t, "Teclado", items[0].Product.Name)
}

// La coincidencia contra el número de inventario es exacta, sin normalizar.
func TestSession_CoincidenciaExacta(t *testing.T) {
	lookup := &fakeLookup{}
	s := scanner.NewSession(catalogo(), lookup, sessionLogger())

	out := s.Scan(context.Background(), "kb-002")
	assert.False(t, out.Matched, "el casado distingue mayúsculas")
	assert.Equal(t, 1, lookup.calls, "un no-casado dispara el lookup externo")
}

// Un código desconocido con ficha externa devuelve la ficha sin tocar la sesión.
func TestSession_CodigoDesconocidoConFicha(t *testing.T) {
	lookup := &fakeLookup{result: &scanner.LookupResult{Barcode: "4607001234", Name: "Leche entera", Brand: "Prostokvashino"}}
	s := scanner.NewSession(catalogo(), lookup, sessionLogger())

	out := s.Scan(context.Background(), "4607001234")
	assert.False(t, out.Matched)
	require.NotNil(t, out.Lookup)
	assert.Equal(t, "Leche entera", out.Lookup.Name)
	assert.Empty(t, s.Items())
}

// La caída del lookup externo no interrumpe la recepción.
func TestSession_LookupCaidoNoBloquea(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("dial tcp: timeout")}
	s := scanner.NewSession(catalogo(), lookup, sessionLogger())

	out := s.Scan(context.Background(), "0000000")
	assert.False(t, out.Matched)
	assert.Nil(t, out.Lookup)

	// La sesión sigue operativa
	out = s.Scan(context.Background(), "MN-003")
	assert.True(t, out.Matched)
}

func TestSession_SetQuantity(t *testing.T) {
	s := scanner.NewSession(catalogo(), nil, sessionLogger())
	s.Scan(context.Background(), "KB-002")
	s.Scan(context.Background(), "MN-003")

	s.SetQuantity("KB-002", 12)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(12), items[0].Quantity)

	// Cantidad cero quita la fila
	s.SetQuantity("MN-003", 0)
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "KB-002", items[0].Product.InventoryNumber)

	// Sobre un producto no escaneado no hace nada
	s.SetQuantity("ZZ-999", 5)
	assert.Len(t, s.Items(), 1)
}

// Drain entrega lo acumulado y deja la sesión lista para la siguiente recepción.
func TestSession_DrainYRequests(t *testing.T) {
	s := scanner.NewSession(catalogo(), nil, sessionLogger())
	s.Scan(context.Background(), "KB-002")
	s.Scan(context.Background(), "KB-002")
	s.Scan(context.Background(), "MN-003")

	items := s.Drain()
	require.Len(t, items, 2)
	assert.Empty(t, s.Items())

	reqs := scanner.Requests(items, "Ana")
	require.Len(t, reqs, 2)
	assert.Equal(t, "p1", reqs[0].ProductID)
	assert.Equal(t, entity.MovementIncoming, reqs[0].MovementType)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "Ana", reqs[0].UserName)

	// Tras Drain se puede volver a escanear desde cero
	out := s.Scan(context.Background(), "KB-002")
	require.True(t, out.Matched)
	assert.Equal(t, int64(1), out.Item.Quantity)
}
