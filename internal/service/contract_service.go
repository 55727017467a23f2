package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

type ContractService struct {
	repo *repository.ContractRepository
}

func NewContractService(repo *repository.ContractRepository) *ContractService {
	return &ContractService{repo: repo}
}

type ClauseInput struct {
	Title   string
	Content string
}

// ContractInput carries the fields present in a request body. A non-nil
// Clauses replaces every stored clause.
type ContractInput struct {
	Date        *string
	PartyAName  *string
	PartyATitle *string
	PartyBName  *string
	PartyBTitle *string
	Subject     *string
	TotalValue  *decimal.Decimal
	Currency    *string
	Status      *model.ContractStatus
	Clauses     *[]ClauseInput
}

func (in ContractInput) apply(c *model.Contract) error {
	if in.Date != nil {
		c.Date = *in.Date
	}
	if in.PartyAName != nil {
		c.PartyAName = strings.TrimSpace(*in.PartyAName)
	}
	if in.PartyATitle != nil {
		c.PartyATitle = *in.PartyATitle
	}
	if in.PartyBName != nil {
		c.PartyBName = strings.TrimSpace(*in.PartyBName)
	}
	if in.PartyBTitle != nil {
		c.PartyBTitle = *in.PartyBTitle
	}
	if in.Subject != nil {
		c.Subject = *in.Subject
	}
	if in.TotalValue != nil {
		c.TotalValue = *in.TotalValue
	}
	if in.Currency != nil && *in.Currency != "" {
		c.Currency = *in.Currency
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status must be ACTIVE or ARCHIVED")
		}
		c.Status = *in.Status
	}
	if in.Clauses != nil {
		c.Clauses = make([]model.ContractClause, 0, len(*in.Clauses))
		for i, cl := range *in.Clauses {
			if strings.TrimSpace(cl.Title) == "" {
				return invalid("clauses[%d].title is required", i)
			}
			c.Clauses = append(c.Clauses, model.ContractClause{Title: cl.Title, Content: cl.Content})
		}
	}

	if c.PartyAName == "" || c.PartyBName == "" {
		return invalid("partyAName and partyBName are required")
	}
	if c.TotalValue.IsNegative() {
		return invalid("totalValue must not be negative")
	}
	return nil
}

func (s *ContractService) Create(ctx context.Context, p model.Principal, in ContractInput) (*model.Contract, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceContracts); err != nil {
		return nil, err
	}
	if in.TotalValue == nil {
		return nil, invalid("totalValue is required")
	}
	c := &model.Contract{
		Currency: model.DefaultCurrency,
		Status:   model.ContractStatusActive,
		Clauses:  []model.ContractClause{},
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError(err, "contract")
	}
	return c, nil
}

func (s *ContractService) Get(ctx context.Context, p model.Principal, id string) (*model.Contract, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceContracts); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "contract")
	}
	return c, nil
}

func (s *ContractService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.Contract, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceContracts); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, page)
}

func (s *ContractService) Update(ctx context.Context, p model.Principal, id string, in ContractInput) (*model.Contract, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceContracts); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "contract")
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, in.Clauses != nil); err != nil {
		return nil, storeError(err, "contract")
	}
	return c, nil
}

func (s *ContractService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceContracts); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "contract")
}
