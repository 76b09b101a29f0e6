package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/domain"
	"github.com/jhoicas/tienda-contable/internal/domain/draft"
	"github.com/jhoicas/tienda-contable/internal/domain/entity"
	"github.com/jhoicas/tienda-contable/internal/domain/repository"
)

// DraftUseCase formularios de captura (venta, compra, devolución, proforma).
// Cada acción carga la sesión, la reduce con el motor y la vuelve a guardar.
type DraftUseCase struct {
	store           repository.DraftStore
	catalog         repository.Catalog
	defaultQuantity decimal.Decimal
	engineOpts      []draft.Option
	now             func() time.Time
}

// NewDraftUseCase construye el caso de uso. defaultQuantity <= 0 se trata como 1.
func NewDraftUseCase(store repository.DraftStore, catalog repository.Catalog, defaultQuantity int, opts ...draft.Option) *DraftUseCase {
	return &DraftUseCase{
		store:           store,
		catalog:         catalog,
		defaultQuantity: decimal.NewFromInt(int64(defaultQuantity)),
		engineOpts:      opts,
		now:             time.Now,
	}
}

func (uc *DraftUseCase) engine(mode draft.Mode) *draft.Engine {
	return draft.NewEngine(mode, uc.engineOpts...)
}

// Open abre un formulario nuevo con una fila vacía.
func (uc *DraftUseCase) Open(ctx context.Context, in dto.OpenDraftRequest) (*dto.DraftResponse, error) {
	mode := draft.Mode(in.Mode)
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: modo %q", domain.ErrInvalidInput, in.Mode)
	}
	rpt := entity.PersonType(in.ReturnPersonType)
	if rpt != "" && (mode != draft.ModeReturn || !rpt.Valid()) {
		return nil, fmt.Errorf("%w: return_person_type solo aplica a devoluciones", domain.ErrInvalidInput)
	}
	s := &draft.Session{
		ID:               uuid.NewString(),
		Mode:             mode,
		ReturnPersonType: rpt,
		State:            uc.engine(mode).Initial(uc.defaultQuantity),
		UpdatedAt:        uc.now(),
	}
	if err := uc.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Get devuelve el formulario.
func (uc *DraftUseCase) Get(ctx context.Context, id string) (*dto.DraftResponse, error) {
	s, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Apply aplica una acción y guarda el nuevo estado.
func (uc *DraftUseCase) Apply(ctx context.Context, id string, in dto.DraftActionRequest) (*dto.DraftResponse, error) {
	s, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	action, err := uc.toAction(in)
	if err != nil {
		return nil, err
	}
	s.State = uc.engine(s.Mode).Reduce(s.State, action)
	s.UpdatedAt = uc.now()
	if err := uc.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return toDraftResponse(s), nil
}

// Reset vuelve el formulario al estado inicial (conserva modo e ID).
func (uc *DraftUseCase) Reset(ctx context.Context, id string) (*dto.DraftResponse, error) {
	return uc.Apply(ctx, id, dto.DraftActionRequest{Type: dto.ActionResetForm})
}

// Discard descarta el formulario.
func (uc *DraftUseCase) Discard(ctx context.Context, id string) error {
	if _, err := uc.store.Get(ctx, id); err != nil {
		return err
	}
	return uc.store.Delete(ctx, id)
}

// toAction traduce la petición a una acción del motor; los productos se resuelven en el catálogo.
func (uc *DraftUseCase) toAction(in dto.DraftActionRequest) (draft.Action, error) {
	needRow := func() error {
		if in.RowID == "" {
			return fmt.Errorf("%w: row_id requerido", domain.ErrInvalidInput)
		}
		return nil
	}
	switch in.Type {
	case dto.ActionSetPerson:
		pt := entity.PersonType(in.PersonType)
		if !pt.Valid() {
			return nil, fmt.Errorf("%w: person_type requerido", domain.ErrInvalidInput)
		}
		return draft.SetPerson{ID: in.PersonID, PersonType: pt}, nil
	case dto.ActionAddItem:
		p, err := uc.product(in.ProductID)
		if err != nil {
			return nil, err
		}
		return draft.AddItem{Product: *p, DefaultQuantity: uc.defaultQuantity}, nil
	case dto.ActionAddEmptyRow:
		return draft.AddEmptyRow{DefaultQuantity: uc.defaultQuantity}, nil
	case dto.ActionRemoveItem:
		if err := needRow(); err != nil {
			return nil, err
		}
		return draft.RemoveItem{RowID: in.RowID}, nil
	case dto.ActionUpdateItemProduct:
		if err := needRow(); err != nil {
			return nil, err
		}
		p, err := uc.product(in.ProductID)
		if err != nil {
			return nil, err
		}
		return draft.UpdateItemProduct{RowID: in.RowID, Product: *p}, nil
	case dto.ActionUpdateItemQuantity:
		if err := needRow(); err != nil {
			return nil, err
		}
		return draft.UpdateItemQuantity{RowID: in.RowID, Quantity: in.Quantity}, nil
	case dto.ActionUpdateItemPrice:
		if err := needRow(); err != nil {
			return nil, err
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		return draft.UpdateItemPrice{RowID: in.RowID, UnitPrice: in.UnitPrice}, nil
	case dto.ActionSetDiscountAmount:
		return draft.SetDiscountAmount{Value: in.Value}, nil
	case dto.ActionSetDiscountPercent:
		return draft.SetDiscountPercent{Value: in.Value}, nil
	case dto.ActionSetTax:
		return draft.SetTax{Value: in.Value}, nil
	case dto.ActionSetIssueDate:
		t, err := time.Parse(dto.DateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
		}
		return draft.SetIssueDate{Date: t}, nil
	case dto.ActionRecalculateTotals:
		return draft.RecalculateTotals{}, nil
	case dto.ActionResetForm:
		return draft.ResetForm{DefaultQuantity: uc.defaultQuantity}, nil
	}
	return nil, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, in.Type)
}

func (uc *DraftUseCase) product(id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	p, err := uc.catalog.ProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return p, nil
}
