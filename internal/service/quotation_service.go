package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

// PDFRenderer renders one quotation as a printable document.
type PDFRenderer interface {
	Quotation(q model.Quotation, agency *model.AgencySettings) ([]byte, error)
}

type QuotationService struct {
	repo     *repository.QuotationRepository
	settings *repository.SettingsRepository
	pdf      PDFRenderer
}

func NewQuotationService(repo *repository.QuotationRepository, settings *repository.SettingsRepository, pdf PDFRenderer) *QuotationService {
	return &QuotationService{repo: repo, settings: settings, pdf: pdf}
}

type QuotationItemInput struct {
	Description string
	Price       decimal.Decimal
	Quantity    *int
	Currency    string
}

// QuotationInput carries the fields present in a request body. A non-nil
// Items replaces every stored item.
type QuotationInput struct {
	ClientName  *string
	ClientPhone *string
	Date        *string
	Currency    *string
	Status      *model.QuotationStatus
	Note        *string
	Items       *[]QuotationItemInput
}

func (in QuotationInput) apply(q *model.Quotation) error {
	if in.ClientName != nil {
		q.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientPhone != nil {
		q.ClientPhone = *in.ClientPhone
	}
	if in.Date != nil {
		q.Date = *in.Date
	}
	if in.Currency != nil && *in.Currency != "" {
		q.Currency = *in.Currency
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status must be one of PENDING, ACCEPTED, REJECTED")
		}
		q.Status = *in.Status
	}
	if in.Note != nil {
		q.Note = *in.Note
	}
	if in.Items != nil {
		items, err := buildItems(*in.Items)
		if err != nil {
			return err
		}
		q.Items = items
	}
	if q.ClientName == "" {
		return invalid("clientName is required")
	}
	return nil
}

func buildItems(in []QuotationItemInput) ([]model.QuotationItem, error) {
	items := make([]model.QuotationItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.Description) == "" {
			return nil, invalid("items[%d].description is required", i)
		}
		if it.Price.IsNegative() {
			return nil, invalid("items[%d].price must not be negative", i)
		}
		quantity := 1
		if it.Quantity != nil {
			quantity = *it.Quantity
		}
		if quantity < 0 {
			return nil, invalid("items[%d].quantity must not be negative", i)
		}
		items = append(items, model.QuotationItem{
			Description: it.Description,
			Price:       it.Price,
			Quantity:    quantity,
			Currency:    it.Currency,
		})
	}
	return items, nil
}

func (s *QuotationService) Create(ctx context.Context, p model.Principal, in QuotationInput) (*model.Quotation, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceQuotations); err != nil {
		return nil, err
	}
	q := &model.Quotation{
		Currency: model.DefaultCurrency,
		Status:   model.QuotationStatusPending,
		Items:    []model.QuotationItem{},
	}
	if err := in.apply(q); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, storeError(err, "quotation")
	}
	return q, nil
}

func (s *QuotationService) Get(ctx context.Context, p model.Principal, id string) (*model.Quotation, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceQuotations); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "quotation")
	}
	return q, nil
}

func (s *QuotationService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.Quotation, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceQuotations); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, page)
}

func (s *QuotationService) Update(ctx context.Context, p model.Principal, id string, in QuotationInput) (*model.Quotation, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceQuotations); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "quotation")
	}
	if err := in.apply(q); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, q, in.Items != nil); err != nil {
		return nil, storeError(err, "quotation")
	}
	return q, nil
}

// SetStatus changes only the status. An unknown status leaves the record untouched.
func (s *QuotationService) SetStatus(ctx context.Context, p model.Principal, id string, status model.QuotationStatus) (*model.Quotation, error) {
	if err := authorize(p, policy.ActionSetStatus, policy.ResourceQuotations); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "quotation")
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, storeError(err, "quotation")
	}
	q.Status = status
	return q, nil
}

func (s *QuotationService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceQuotations); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "quotation")
}

type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

// PDF renders the quotation with the agency header from the first settings record.
func (s *QuotationService) PDF(ctx context.Context, p model.Principal, id string) (*Document, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceQuotations); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "quotation")
	}
	agency, err := s.settings.First(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		agency = nil
	}
	content, err := s.pdf.Quotation(*q, agency)
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName:    q.ID + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
