package repository

import (
	"context"

	"github.com/jhoicas/tienda-contable/internal/domain/draft"
)

// DraftStore guarda los formularios abiertos entre acciones (con vencimiento).
type DraftStore interface {
	Save(ctx context.Context, s *draft.Session) error
	// Get devuelve domain.ErrNotFound si la sesión no existe o venció.
	Get(ctx context.Context, id string) (*draft.Session, error)
	Delete(ctx context.Context, id string) error
	// Take lee y borra la sesión en un solo paso: de dos llamadas concurrentes
	// solo una la obtiene, la otra recibe domain.ErrNotFound.
	Take(ctx context.Context, id string) (*draft.Session, error)
}
