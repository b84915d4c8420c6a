package offline_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/offline"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func sampleProducts() []dto.ProductResponse {
	return []dto.ProductResponse{
		{ID: "p1", Name: "Teclado", InventoryNumber: "KB-002", Quantity: decimal.NewFromInt(8), MinStock: decimal.NewFromInt(15), Price: decimal.NewFromInt(12500)},
		{ID: "p2", Name: "Monitor", InventoryNumber: "MN-003", Quantity: decimal.NewFromInt(23), MinStock: decimal.NewFromInt(10), Price: decimal.NewFromInt(24900)},
	}
}

func sampleMovements() []dto.MovementResponse {
	return []dto.MovementResponse{
		{ID: "m1", ProductName: "Teclado", MovementType: "incoming", Quantity: decimal.NewFromInt(20), UserName: "Ana"},
		{ID: "m2", ProductName: "Monitor", MovementType: "outgoing", Quantity: decimal.NewFromInt(-5), UserName: "Luis"},
	}
}

// Merge reemplaza campo a campo: un slice nil no toca el campo anterior,
// uno no nil lo reemplaza completo.
func TestMerge_ReemplazoPorCampo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	old := offline.Snapshot{Products: sampleProducts(), Movements: sampleMovements(), LastSync: 1}

	merged := offline.Merge(old, offline.Patch{Movements: []dto.MovementResponse{}}, now)

	assert.Equal(t, old.Products, merged.Products, "products no estaba en el patch: se conserva")
	assert.Empty(t, merged.Movements, "movements se reemplaza aunque el nuevo valor sea vacío")
	assert.Equal(t, now.UnixMilli(), merged.LastSync)
}

func TestMerge_NoMutaElOriginal(t *testing.T) {
	old := offline.Snapshot{Products: sampleProducts(), LastSync: 42}
	_ = offline.Merge(old, offline.Patch{Products: nil}, time.Now())
	assert.Equal(t, int64(42), old.LastSync, "Merge es una función pura sobre sus argumentos")
}

// Round-trip de persistencia: guardar y volver a cargar (simulando un
// reinicio de la estación) devuelve un snapshot igual, LastSync incluido.
func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := offline.NewFileStore(dir, testLogger())
	store.Load()

	saved, err := store.Save(offline.Patch{Products: sampleProducts(), Movements: sampleMovements()})
	require.NoError(t, err)
	require.NotZero(t, saved.LastSync)

	reopened := offline.NewFileStore(dir, testLogger())
	loaded := reopened.Load()

	assert.Equal(t, saved.LastSync, loaded.LastSync)
	assert.Equal(t, saved.Movements, loaded.Movements)
	require.Len(t, loaded.Products, len(saved.Products))
	for i := range saved.Products {
		assert.Equal(t, saved.Products[i].ID, loaded.Products[i].ID)
		assert.True(t, saved.Products[i].Quantity.Equal(loaded.Products[i].Quantity))
		assert.True(t, saved.Products[i].Price.Equal(loaded.Products[i].Price))
	}
}

// Caché ausente o corrupto se trata como estado normal, nunca como error.
func TestFileStore_CargaFallaSuave(t *testing.T) {
	dir := t.TempDir()

	store := offline.NewFileStore(dir, testLogger())
	assert.True(t, store.Load().IsEmpty(), "sin archivo: snapshot vacío")

	require.NoError(t, writeCorruptSnapshot(dir))
	store = offline.NewFileStore(dir, testLogger())
	assert.True(t, store.Load().IsEmpty(), "archivo corrupto: snapshot vacío")
}

func writeCorruptSnapshot(dir string) error {
	return os.WriteFile(filepath.Join(dir, "offline-stock-data.json"), []byte("{not json"), 0o644)
}

func TestFileStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store := offline.NewFileStore(dir, testLogger())
	store.Load()

	_, err := store.Save(offline.Patch{Products: sampleProducts()})
	require.NoError(t, err)
	require.False(t, store.Current().IsEmpty())

	require.NoError(t, store.Clear())
	assert.True(t, store.Current().IsEmpty())

	reopened := offline.NewFileStore(dir, testLogger())
	assert.True(t, reopened.Load().IsEmpty(), "tras Clear no queda nada persistido")

	// Clear sobre un store ya vacío es idempotente
	assert.NoError(t, store.Clear())
}
