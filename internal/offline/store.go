package offline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

const snapshotFile = "offline-stock-data.json"

// FileStore persiste el snapshot como un blob JSON en disco, con una copia en
// memoria para lecturas. Es el único mutador del espejo local.
//
// No hay locking entre procesos: dos estaciones sobre el mismo directorio
// compiten con last-write-wins, aceptable para un caché best-effort.
type FileStore struct {
	path string
	log  *logger.Logger

	mu      sync.Mutex
	current Snapshot
}

// NewFileStore construye el store sobre dir (se crea si no existe).
func NewFileStore(dir string, log *logger.Logger) *FileStore {
	return &FileStore{
		path: filepath.Join(dir, snapshotFile),
		log:  log,
	}
}

// Load lee el snapshot persistido al arrancar. Falla suave: si el archivo no
// existe o no se puede parsear devuelve un snapshot vacío — "sin caché" es un
// estado normal, nunca fatal.
func (s *FileStore) Load() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("no se pudo leer el snapshot local")
		}
		s.current = Snapshot{}
		return s.current
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Caché corrupto se trata igual que caché ausente
		s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot local corrupto, se ignora")
		s.current = Snapshot{}
		return s.current
	}
	s.current = snap
	return s.current
}

// Current devuelve la copia en memoria del snapshot (lo último cargado o guardado).
func (s *FileStore) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save fusiona el patch sobre el snapshot actual, estampa LastSync, persiste y
// devuelve el resultado. Si la escritura falla, el estado en memoria y el
// archivo quedan como estaban.
func (s *FileStore) Save(patch Patch) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := Merge(s.current, patch, time.Now())
	raw, err := json.Marshal(merged)
	if err != nil {
		return s.current, fmt.Errorf("serializar snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.current, fmt.Errorf("crear directorio de caché: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return s.current, fmt.Errorf("persistir snapshot: %w", err)
	}
	s.current = merged
	return merged, nil
}

// Clear elimina el espejo persistido y resetea el estado en memoria.
// Solo para acciones explícitas de "limpiar datos offline".
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Snapshot{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar snapshot: %w", err)
	}
	return nil
}
