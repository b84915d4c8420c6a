package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LookupResult ficha informativa de un código que no está en el catálogo,
// resuelta contra una base externa de códigos de barras.
type LookupResult struct {
	Barcode     string
	Name        string
	Brand       string
	Category    string
	Description string
	ImageURL    string
}

// Lookup puerto consultivo hacia una base externa. (nil, nil) significa
// código desconocido; un error nunca bloquea el flujo de recepción.
type Lookup interface {
	Lookup(ctx context.Context, barcode string) (*LookupResult, error)
}

// PendingItem un producto reconocido con su cantidad acumulada de escaneos.
type PendingItem struct {
	Product  dto.ProductResponse
	Quantity int64
	LastScan time.Time
}

// Outcome resultado de procesar un código: o se reconoció un producto del
// catálogo, o se adjunta (si hay) la ficha externa del código.
type Outcome struct {
	Matched bool
	Item    *PendingItem
	Lookup  *LookupResult
}

// Session acumula los escaneos de una recepción en curso. Los escaneos
// repetidos del mismo producto se coalescen sumando +1 a su cantidad
// pendiente, no se crean filas duplicadas.
type Session struct {
	mu       sync.Mutex
	products map[string]dto.ProductResponse // por número de inventario exacto
	pending  []*PendingItem
	byNumber map[string]*PendingItem
	lookup   Lookup
	log      *logger.Logger
}

// NewSession crea una sesión sobre el catálogo dado. lookup puede ser nil.
func NewSession(products []dto.ProductResponse, lookup Lookup, log *logger.Logger) *Session {
	s := &Session{lookup: lookup, log: log, byNumber: make(map[string]*PendingItem)}
	s.SetProducts(products)
	return s
}

// SetProducts reemplaza el catálogo contra el que se casan los escaneos
// (tras un resync). Lo ya acumulado en la sesión no se toca.
func (s *Session) SetProducts(products []dto.ProductResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]dto.ProductResponse, len(products))
	for _, p := range products {
		s.products[p.InventoryNumber] = p
	}
}

// Scan procesa un código completo. Coincidencia exacta contra el número de
// inventario; si el código no está en el catálogo se intenta la ficha externa
// como ayuda para darlo de alta, sin interrumpir la sesión.
func (s *Session) Scan(ctx context.Context, code string) Outcome {
	s.mu.Lock()
	product, ok := s.products[code]
	if ok {
		item := s.byNumber[code]
		if item == nil {
			item = &PendingItem{Product: product}
			s.byNumber[code] = item
			s.pending = append(s.pending, item)
		}
		item.Quantity++
		item.LastScan = time.Now()
		out := *item
		s.mu.Unlock()
		s.log.Debug().Str("inventory_number", code).Int64("pending", out.Quantity).Msg("escaneo acumulado")
		return Outcome{Matched: true, Item: &out}
	}
	s.mu.Unlock()

	if s.lookup == nil {
		return Outcome{}
	}
	info, err := s.lookup.Lookup(ctx, code)
	if err != nil {
		// La base externa es consultiva: su caída no afecta la recepción
		s.log.Debug().Err(err).Str("barcode", code).Msg("lookup externo no disponible")
		return Outcome{}
	}
	return Outcome{Lookup: info}
}

// SetQuantity fija a mano la cantidad pendiente de un producto ya escaneado.
// Cantidades <= 0 lo quitan de la sesión.
func (s *Session) SetQuantity(inventoryNumber string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.byNumber[inventoryNumber]
	if item == nil {
		return
	}
	if quantity <= 0 {
		delete(s.byNumber, inventoryNumber)
		for i, p := range s.pending {
			if p == item {
				s.pending = append(s.pending[:i], s.pending[i+1:]...)
				break
			}
		}
		return
	}
	item.Quantity = quantity
}

// Items devuelve una copia de lo acumulado, en orden de primer escaneo.
func (s *Session) Items() []PendingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]PendingItem, len(s.pending))
	for i, p := range s.pending {
		items[i] = *p
	}
	return items
}

// Drain vacía la sesión y devuelve lo acumulado, listo para registrarse como
// movimientos de entrada.
func (s *Session) Drain() []PendingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]PendingItem, len(s.pending))
	for i, p := range s.pending {
		items[i] = *p
	}
	s.pending = nil
	s.byNumber = make(map[string]*PendingItem)
	return items
}

// Requests convierte lo acumulado en solicitudes de movimiento de entrada.
func Requests(items []PendingItem, userName string) []dto.CreateMovementRequest {
	reqs := make([]dto.CreateMovementRequest, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, dto.CreateMovementRequest{
			ProductID:    it.Product.ID,
			MovementType: entity.MovementIncoming,
			Quantity:     decimal.NewFromInt(it.Quantity),
			UserName:     userName,
			Reason:       "Recepción por escaneo",
		})
	}
	return reqs
}
