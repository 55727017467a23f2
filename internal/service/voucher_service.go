package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

// ExcelGenerator builds the voucher spreadsheet.
type ExcelGenerator interface {
	Vouchers(vouchers []model.Voucher, generatedAt time.Time) ([]byte, error)
}

type VoucherService struct {
	repo  *repository.VoucherRepository
	excel ExcelGenerator
}

func NewVoucherService(repo *repository.VoucherRepository, excel ExcelGenerator) *VoucherService {
	return &VoucherService{repo: repo, excel: excel}
}

type VoucherInput struct {
	Type        *model.VoucherType
	Amount      *decimal.Decimal
	Currency    *string
	Date        *string
	Description *string
	PartyName   *string
	PartyPhone  *string
	Category    *model.VoucherCategory
}

func (in VoucherInput) apply(v *model.Voucher) error {
	if in.Type != nil {
		v.Type = *in.Type
	}
	if in.Amount != nil {
		v.Amount = *in.Amount
	}
	if in.Currency != nil && *in.Currency != "" {
		v.Currency = *in.Currency
	}
	if in.Date != nil {
		v.Date = *in.Date
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.PartyName != nil {
		v.PartyName = strings.TrimSpace(*in.PartyName)
	}
	if in.PartyPhone != nil {
		v.PartyPhone = *in.PartyPhone
	}
	if in.Category != nil {
		v.Category = *in.Category
	}

	if !v.Type.Valid() {
		return invalid("type must be RECEIPT or PAYMENT")
	}
	if v.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if v.PartyName == "" {
		return invalid("partyName is required")
	}
	if !v.Category.Valid() {
		return invalid("unknown category %q", v.Category)
	}
	return nil
}

func visibleTo(p model.Principal) model.VoucherFilter {
	return model.VoucherFilter{ExcludeCategories: policy.HiddenVoucherCategories(p)}
}

func (s *VoucherService) Create(ctx context.Context, p model.Principal, in VoucherInput) (*model.Voucher, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	if in.Amount == nil {
		return nil, invalid("amount is required")
	}
	v := &model.Voucher{Currency: model.DefaultCurrency}
	if err := in.apply(v); err != nil {
		return nil, err
	}
	if err := decisionError(policy.DecideVoucherWrite(p, policy.ActionCreate, v.Category), policy.ActionCreate, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, storeError(err, "voucher")
	}
	return v, nil
}

// Get hides vouchers the caller may not see behind ErrNotFound.
func (s *VoucherService) Get(ctx context.Context, p model.Principal, id string) (*model.Voucher, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	v, err := s.repo.GetByID(ctx, id, visibleTo(p))
	if err != nil {
		return nil, storeError(err, "voucher")
	}
	return v, nil
}

func (s *VoucherService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.Voucher, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceVouchers); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, visibleTo(p), page)
}

func (s *VoucherService) Update(ctx context.Context, p model.Principal, id string, in VoucherInput) (*model.Voucher, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	v, err := s.repo.GetByID(ctx, id, visibleTo(p))
	if err != nil {
		return nil, storeError(err, "voucher")
	}
	if err := in.apply(v); err != nil {
		return nil, err
	}
	if err := decisionError(policy.DecideVoucherWrite(p, policy.ActionUpdate, v.Category), policy.ActionUpdate, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, storeError(err, "voucher")
	}
	return v, nil
}

func (s *VoucherService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceVouchers); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "voucher")
}

// Export writes every voucher visible to the caller into a spreadsheet.
func (s *VoucherService) Export(ctx context.Context, p model.Principal) (*Document, error) {
	if err := authorize(p, policy.ActionExport, policy.ResourceVouchers); err != nil {
		return nil, err
	}
	vouchers, _, err := s.repo.List(ctx, visibleTo(p), nil)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content, err := s.excel.Vouchers(vouchers, now)
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName:    "vouchers_" + now.Format("20060102") + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}
