package offline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
	"github.com/jhoicas/almacen-api/internal/offline"
)

// fakeFetcher cuenta llamadas y permite simular fallos de red por endpoint.
type fakeFetcher struct {
	products     []dto.ProductResponse
	movements    []dto.MovementResponse
	productsErr  error
	movementsErr error
	calls        atomic.Int32
}

func (f *fakeFetcher) FetchProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	f.calls.Add(1)
	return f.products, f.productsErr
}

func (f *fakeFetcher) FetchMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	f.calls.Add(1)
	return f.movements, f.movementsErr
}

// slowFetcher retrasa cada fetch para mantener un refresh en vuelo mientras
// llegan llamadas concurrentes.
type slowFetcher struct {
	inner *fakeFetcher
	delay time.Duration
}

func (f *slowFetcher) FetchProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	time.Sleep(f.delay)
	return f.inner.FetchProducts(ctx)
}

func (f *slowFetcher) FetchMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	time.Sleep(f.delay)
	return f.inner.FetchMovements(ctx)
}

func newRefresher(t *testing.T, fetcher offline.Fetcher, online bool) (*offline.Refresher, *offline.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := offline.NewFileStore(dir, testLogger())
	store.Load()
	monitor := offline.NewMonitor()
	monitor.Notify(online)
	return offline.NewRefresher(fetcher, store, monitor, testLogger()), store, dir
}

func seedSnapshot(t *testing.T, store *offline.FileStore) offline.Snapshot {
	t.Helper()
	snap, err := store.Save(offline.Patch{Products: sampleProducts(), Movements: sampleMovements()})
	require.NoError(t, err)
	return snap
}

// Sin conectividad y con snapshot previo: se sirve el caché tal cual y no se
// intenta ninguna llamada de red.
func TestRefresh_OfflineConCache_NoLlamaRed(t *testing.T) {
	fetcher := &fakeFetcher{}
	refresher, store, _ := newRefresher(t, fetcher, false)
	seeded := seedSnapshot(t, store)

	res, err := refresher.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(0), fetcher.calls.Load(), "offline con caché no debe tocar la red")
	assert.Equal(t, offline.SourceCache, res.Source)
	assert.NotEmpty(t, res.Notice)
	assert.Equal(t, seeded.LastSync, res.LastSync)
	require.Len(t, res.Products, len(seeded.Products))
	for i := range seeded.Products {
		assert.Equal(t, seeded.Products[i].ID, res.Products[i].ID)
	}
	assert.Equal(t, seeded.Movements, res.Movements)
}

// Un fetch fallido no debe mutar el snapshot persistido: el archivo queda
// byte a byte como estaba.
func TestRefresh_FalloDeRed_NoMutaSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{movementsErr: errors.New("connection refused")}
	refresher, store, dir := newRefresher(t, fetcher, true)
	seedSnapshot(t, store)

	path := filepath.Join(dir, "offline-stock-data.json")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := refresher.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, offline.SourceCache, res.Source)
	assert.Contains(t, res.Notice, "error de conexión")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "un refresh fallido nunca reescribe el espejo persistido")
}

// Fallo de red sin caché: estado vacío con error terminal para este refresh.
func TestRefresh_FalloDeRedSinCache_ErrNoData(t *testing.T) {
	fetcher := &fakeFetcher{productsErr: errors.New("dial tcp: timeout")}
	refresher, _, _ := newRefresher(t, fetcher, true)

	res, err := refresher.Refresh(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, offline.ErrNoData)
}

// Refresh exitoso: reemplaza el espejo completo y estampa LastSync.
func TestRefresh_Exitoso_PersisteYSirveRed(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts(), movements: sampleMovements()}
	refresher, store, _ := newRefresher(t, fetcher, true)

	res, err := refresher.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, offline.SourceNetwork, res.Source)
	assert.Empty(t, res.Notice)
	assert.NotZero(t, res.LastSync)
	assert.Equal(t, res.LastSync, store.Current().LastSync)
	assert.Len(t, store.Current().Products, 2)
}

// Varios refresh disparados a la vez se coalescen: mientras uno está en vuelo
// los demás esperan y comparten su resultado, sin fetches adicionales.
func TestRefresh_ConcurrentesCoalescen(t *testing.T) {
	inner := &fakeFetcher{products: sampleProducts(), movements: sampleMovements()}
	fetcher := &slowFetcher{inner: inner, delay: 50 * time.Millisecond}
	refresher, _, _ := newRefresher(t, fetcher, true)

	const callers = 5
	results := make([]*offline.Result, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = refresher.Refresh(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(2), inner.calls.Load(),
		"cinco refresh concurrentes deben compartir un único par de fetches")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, offline.SourceNetwork, results[i].Source)
		assert.Equal(t, results[0].LastSync, results[i].LastSync, "todos comparten el resultado del vuelo único")
	}
}

// El estado derivado se recalcula igual venga de red o de caché.
func TestRefresh_EstadoDerivadoEnAmbosOrigenes(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts(), movements: sampleMovements()}
	refresher, store, _ := newRefresher(t, fetcher, true)

	res, err := refresher.Refresh(context.Background())
	require.NoError(t, err)
	// Teclado: 8 de 15 → low (8 > 7.5); Monitor: 23 de 10 → in stock
	assert.Equal(t, stock.StatusLow, res.Products[0].Status)
	assert.Equal(t, stock.StatusInStock, res.Products[1].Status)

	// Mismo cálculo sirviendo desde caché
	monitor := offline.NewMonitor()
	monitor.Notify(false)
	cached := offline.NewRefresher(&fakeFetcher{}, store, monitor, testLogger())
	res2, err := cached.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stock.StatusLow, res2.Products[0].Status)
	assert.Equal(t, stock.StatusInStock, res2.Products[1].Status)
}
