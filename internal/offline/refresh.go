package offline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ErrNoData indica que no hay red ni snapshot en caché: estado vacío con error
// visible, el reintento es manual.
var ErrNoData = errors.New("sin conexión y sin datos en caché")

// Origen de los datos servidos por un refresh.
const (
	SourceNetwork = "network"
	SourceCache   = "cache"
)

// Fetcher puerto hacia la API remota del almacén. Lo implementa
// infrastructure/remote; los tests usan fakes.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]dto.ProductResponse, error)
	FetchMovements(ctx context.Context) ([]dto.MovementResponse, error)
}

// Result lo que un refresh entrega a la vista: listas, origen y un aviso
// no bloqueante cuando se sirven datos de caché.
type Result struct {
	Products  []dto.ProductResponse
	Movements []dto.MovementResponse
	Source    string
	Notice    string
	LastSync  int64
}

// Refresher ejecuta el protocolo de refresh: red cuando se puede, caché cuando
// no. Ningún fallo cruza este límite como pánico; todo degrada a un Result o a
// un error terminal para este refresh.
type Refresher struct {
	fetcher Fetcher
	store   *FileStore
	monitor *Monitor
	log     *logger.Logger
	group   singleflight.Group
}

// NewRefresher construye el refresher.
func NewRefresher(fetcher Fetcher, store *FileStore, monitor *Monitor, log *logger.Logger) *Refresher {
	return &Refresher{fetcher: fetcher, store: store, monitor: monitor, log: log}
}

// Refresh obtiene las listas actuales de productos y movimientos.
//
//  1. Sin conectividad y con snapshot no vacío: sirve el caché de inmediato,
//     sin intentar la red.
//  2. En otro caso lanza los dos fetch en paralelo; ambos deben resolver.
//     Éxito: recalcula estados, reemplaza el espejo persistido y sirve red.
//     Fallo: cae al caché con un aviso distinto, o ErrNoData si no hay caché.
//
// Los refresh concurrentes se coalescen: mientras uno está en vuelo, los demás
// esperan y comparten su resultado.
func (r *Refresher) Refresh(ctx context.Context) (*Result, error) {
	v, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (r *Refresher) refresh(ctx context.Context) (*Result, error) {
	if !r.monitor.Online() {
		if snap := r.store.Current(); !snap.IsEmpty() {
			r.log.Info().Int64("last_sync", snap.LastSync).Msg("sin conexión: sirviendo snapshot local")
			return r.fromSnapshot(snap, "sin conexión: mostrando datos guardados"), nil
		}
		// Sin caché no hay nada que servir offline; se intenta la red igualmente
		// por si el monitor está desactualizado.
	}

	products, movements, err := r.fetchBoth(ctx)
	if err != nil {
		// Conectividad caída es esperada: no se registra como error
		r.log.Warn().Err(err).Msg("refresh remoto falló")
		if snap := r.store.Current(); !snap.IsEmpty() {
			return r.fromSnapshot(snap, "error de conexión: mostrando datos guardados"), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	applyStatus(products)
	snap, err := r.store.Save(Patch{Products: products, Movements: movements})
	if err != nil {
		// Persistir el espejo es best-effort: los datos frescos se sirven igual
		r.log.Warn().Err(err).Msg("no se pudo persistir el snapshot local")
		snap.LastSync = 0
	}
	return &Result{
		Products:  products,
		Movements: movements,
		Source:    SourceNetwork,
		LastSync:  snap.LastSync,
	}, nil
}

// fetchBoth lanza los dos fetch independientes y los junta: si cualquiera
// falla, el refresh completo se considera fallido.
func (r *Refresher) fetchBoth(ctx context.Context) ([]dto.ProductResponse, []dto.MovementResponse, error) {
	var (
		products  []dto.ProductResponse
		movements []dto.MovementResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = r.fetcher.FetchProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = r.fetcher.FetchMovements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, movements, nil
}

func (r *Refresher) fromSnapshot(snap Snapshot, notice string) *Result {
	// El estado se recalcula también sobre datos de caché, para que nunca quede
	// desfasado respecto a quantity/minStock
	products := make([]dto.ProductResponse, len(snap.Products))
	copy(products, snap.Products)
	applyStatus(products)
	return &Result{
		Products:  products,
		Movements: snap.Movements,
		Source:    SourceCache,
		Notice:    notice,
		LastSync:  snap.LastSync,
	}
}

// applyStatus deriva el estado de cada producto in situ.
func applyStatus(products []dto.ProductResponse) {
	for i := range products {
		products[i].Status = stock.StatusFor(products[i].Quantity, products[i].MinStock)
	}
}
