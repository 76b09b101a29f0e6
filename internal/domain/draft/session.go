package draft

import (
	"time"

	"github.com/jhoicas/tienda-contable/internal/domain/entity"
)

// Session formulario de captura abierto. Se guarda entero en el DraftStore entre acciones.
type Session struct {
	ID               string            `json:"id"`
	Mode             Mode              `json:"mode"`
	ReturnPersonType entity.PersonType `json:"return_person_type,omitempty"`
	State            State             `json:"state"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
