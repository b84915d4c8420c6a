package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ActPDFGenerator puerto hacia el generador de PDF del acta (infrastructure/pdf).
type ActPDFGenerator interface {
	GenerateActPDF(act *entity.WriteOffAct) ([]byte, error)
}

// ActHTMLRenderer puerto hacia el render imprimible del acta (infrastructure/printdoc).
type ActHTMLRenderer interface {
	RenderActHTML(act *entity.WriteOffAct) ([]byte, error)
}

// WriteOffUseCase casos de uso de actas de baja: CRUD más render a PDF/HTML.
type WriteOffUseCase struct {
	repo repository.WriteOffActRepository
	pdf  ActPDFGenerator
	html ActHTMLRenderer
}

// NewWriteOffUseCase construye el caso de uso.
func NewWriteOffUseCase(repo repository.WriteOffActRepository, pdf ActPDFGenerator, html ActHTMLRenderer) *WriteOffUseCase {
	return &WriteOffUseCase{repo: repo, pdf: pdf, html: html}
}

// Create registra un acta. Un acta definitiva requiere al menos una línea;
// un borrador puede ir vacío.
func (uc *WriteOffUseCase) Create(in dto.CreateWriteOffActRequest) (*dto.WriteOffActResponse, error) {
	if in.ActNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.IsDraft && len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	actDate, err := time.Parse("2006-01-02", in.ActDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.WriteOffItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.WriteOffItem{
			ProductName:     it.ProductName,
			InventoryNumber: it.InventoryNumber,
			Quantity:        it.Quantity,
			Price:           it.Price,
			Reason:          it.Reason,
		})
	}
	act := &entity.WriteOffAct{
		ID:                uuid.New().String(),
		ActNumber:         in.ActNumber,
		Title:             in.Title,
		ActDate:           actDate,
		Responsible:       in.Responsible,
		ApprovedBy:        in.ApprovedBy,
		CommissionMembers: in.CommissionMembers,
		Reason:            in.Reason,
		Items:             items,
		CreatedBy:         in.CreatedBy,
		IsDraft:           in.IsDraft,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.Create(act); err != nil {
		return nil, err
	}
	return toWriteOffActResponse(act), nil
}

// GetByID obtiene un acta por ID.
func (uc *WriteOffUseCase) GetByID(id string) (*dto.WriteOffActResponse, error) {
	act, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, nil
	}
	return toWriteOffActResponse(act), nil
}

// List lista las actas, fecha descendente.
func (uc *WriteOffUseCase) List() (*dto.WriteOffActListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WriteOffActResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toWriteOffActResponse(a))
	}
	return &dto.WriteOffActListResponse{Acts: items}, nil
}

// Delete elimina un acta por ID.
func (uc *WriteOffUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// RenderPDF genera el PDF del acta.
func (uc *WriteOffUseCase) RenderPDF(id string) ([]byte, error) {
	act, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateActPDF(act)
}

// RenderHTML genera la versión imprimible del acta.
func (uc *WriteOffUseCase) RenderHTML(id string) ([]byte, error) {
	act, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, domain.ErrNotFound
	}
	return uc.html.RenderActHTML(act)
}

func toWriteOffActResponse(a *entity.WriteOffAct) *dto.WriteOffActResponse {
	if a == nil {
		return nil
	}
	items := make([]dto.WriteOffItemDTO, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, dto.WriteOffItemDTO{
			ProductName:     it.ProductName,
			InventoryNumber: it.InventoryNumber,
			Quantity:        it.Quantity,
			Price:           it.Price,
			Reason:          it.Reason,
		})
	}
	return &dto.WriteOffActResponse{
		ID:                a.ID,
		ActNumber:         a.ActNumber,
		Title:             a.Title,
		ActDate:           a.ActDate.Format("2006-01-02"),
		Responsible:       a.Responsible,
		ApprovedBy:        a.ApprovedBy,
		CommissionMembers: a.CommissionMembers,
		Reason:            a.Reason,
		Items:             items,
		TotalSum:          a.TotalSum(),
		CreatedBy:         a.CreatedBy,
		IsDraft:           a.IsDraft,
		CreatedAt:         a.CreatedAt,
	}
}
