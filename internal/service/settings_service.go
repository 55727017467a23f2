package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

type ServiceInput struct {
	Name        string
	Description string
}

// SettingsInput carries the fields present in a request body.
type SettingsInput struct {
	Name           *string
	Logo           *string
	Address        *string
	Phone          *string
	Email          *string
	QuotationTerms *[]string
	Twilio         *map[string]interface{}
	ExchangeRate   *decimal.Decimal
	Services       *[]ServiceInput
}

func (in SettingsInput) apply(s *model.AgencySettings) error {
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Logo != nil {
		s.Logo = *in.Logo
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.QuotationTerms != nil {
		s.QuotationTerms = append([]string{}, (*in.QuotationTerms)...)
	}
	if in.Twilio != nil {
		s.Twilio = *in.Twilio
	}
	if in.ExchangeRate != nil {
		if in.ExchangeRate.IsNegative() {
			return invalid("exchangeRate must not be negative")
		}
		s.ExchangeRate = *in.ExchangeRate
	}
	if in.Services != nil {
		s.Services = make([]model.AgencyService, 0, len(*in.Services))
		for i, svc := range *in.Services {
			if strings.TrimSpace(svc.Name) == "" {
				return invalid("services[%d].name is required", i)
			}
			s.Services = append(s.Services, model.AgencyService{Name: svc.Name, Description: svc.Description})
		}
	}
	if s.Name == "" {
		return invalid("name is required")
	}
	return nil
}

func (s *SettingsService) Create(ctx context.Context, p model.Principal, in SettingsInput) (*model.AgencySettings, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceSettings); err != nil {
		return nil, err
	}
	settings := &model.AgencySettings{
		ExchangeRate:   model.DefaultExchangeRate,
		QuotationTerms: []string{},
		Twilio:         map[string]interface{}{},
	}
	if err := in.apply(settings); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, settings); err != nil {
		return nil, storeError(err, "settings")
	}
	return settings, nil
}

func (s *SettingsService) Get(ctx context.Context, p model.Principal, id string) (*model.AgencySettings, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceSettings); err != nil {
		return nil, err
	}
	settings, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "settings")
	}
	return settings, nil
}

func (s *SettingsService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.AgencySettings, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceSettings); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, page)
}

func (s *SettingsService) Update(ctx context.Context, p model.Principal, id string, in SettingsInput) (*model.AgencySettings, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceSettings); err != nil {
		return nil, err
	}
	settings, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "settings")
	}
	if err := in.apply(settings); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, settings, in.Services != nil); err != nil {
		return nil, storeError(err, "settings")
	}
	return settings, nil
}

func (s *SettingsService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceSettings); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "settings")
}
