// Package offline implementa el caché local de la estación de recepción:
// un espejo del último estado bueno conocido de productos y movimientos que
// se sirve cuando la red no está disponible.
package offline

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// Snapshot la última vista buena conocida del estado remoto.
// Se reemplaza completa (campo a campo, nunca elemento a elemento) en cada
// refresh exitoso y persiste indefinidamente hasta que el usuario la limpie.
type Snapshot struct {
	Products  []dto.ProductResponse  `json:"products"`
	Movements []dto.MovementResponse `json:"movements"`
	LastSync  int64                  `json:"last_sync"` // milisegundos desde epoch
}

// IsEmpty indica si el snapshot no contiene datos útiles.
func (s Snapshot) IsEmpty() bool {
	return len(s.Products) == 0 && len(s.Movements) == 0
}

// Patch campos a reemplazar en el snapshot. Un slice nil significa "no tocar";
// un slice no nil (aunque esté vacío) reemplaza el campo completo.
type Patch struct {
	Products  []dto.ProductResponse
	Movements []dto.MovementResponse
}

// Merge aplica el patch sobre el snapshot anterior y estampa LastSync con now.
// Es una función total sin efectos secundarios: el único cambio implícito es
// el timestamp, que se inyecta para poder probarla de forma determinista.
func Merge(old Snapshot, patch Patch, now time.Time) Snapshot {
	merged := old
	if patch.Products != nil {
		merged.Products = patch.Products
	}
	if patch.Movements != nil {
		merged.Movements = patch.Movements
	}
	merged.LastSync = now.UnixMilli()
	return merged
}
