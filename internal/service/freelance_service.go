package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

type FreelancerService struct {
	repo *repository.FreelancerRepository
}

func NewFreelancerService(repo *repository.FreelancerRepository) *FreelancerService {
	return &FreelancerService{repo: repo}
}

type FreelancerInput struct {
	Name  *string
	Phone *string
	Role  *model.FreelancerRole
}

func (in FreelancerInput) apply(f *model.Freelancer) error {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		f.Phone = *in.Phone
	}
	if in.Role != nil {
		f.Role = *in.Role
	}
	if f.Name == "" {
		return invalid("name is required")
	}
	if !f.Role.Valid() {
		return invalid("role must be PHOTOGRAPHER or EDITOR")
	}
	return nil
}

func (s *FreelancerService) Create(ctx context.Context, p model.Principal, in FreelancerInput) (*model.Freelancer, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceFreelancers); err != nil {
		return nil, err
	}
	f := &model.Freelancer{Role: model.FreelancerRolePhotographer}
	if err := in.apply(f); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, storeError(err, "freelancer")
	}
	return f, nil
}

func (s *FreelancerService) Get(ctx context.Context, p model.Principal, id string) (*model.Freelancer, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceFreelancers); err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "freelancer")
	}
	return f, nil
}

func (s *FreelancerService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.Freelancer, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceFreelancers); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, page)
}

func (s *FreelancerService) Update(ctx context.Context, p model.Principal, id string, in FreelancerInput) (*model.Freelancer, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceFreelancers); err != nil {
		return nil, err
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "freelancer")
	}
	if err := in.apply(f); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, storeError(err, "freelancer")
	}
	return f, nil
}

func (s *FreelancerService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceFreelancers); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "freelancer")
}

type FreelanceWorkService struct {
	repo        *repository.FreelanceWorkRepository
	freelancers *repository.FreelancerRepository
}

func NewFreelanceWorkService(repo *repository.FreelanceWorkRepository, freelancers *repository.FreelancerRepository) *FreelanceWorkService {
	return &FreelanceWorkService{repo: repo, freelancers: freelancers}
}

type FreelanceWorkInput struct {
	FreelancerID *string
	Description  *string
	Date         *string
	Price        *decimal.Decimal
	Currency     *string
	IsPaid       *bool
	PaymentID    *string
}

func (in FreelanceWorkInput) apply(w *model.FreelanceWork) error {
	if in.FreelancerID != nil {
		w.FreelancerID = strings.TrimSpace(*in.FreelancerID)
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.Date != nil {
		w.Date = *in.Date
	}
	if in.Price != nil {
		w.Price = *in.Price
	}
	if in.Currency != nil && *in.Currency != "" {
		w.Currency = *in.Currency
	}
	if in.IsPaid != nil {
		w.IsPaid = *in.IsPaid
	}
	if in.PaymentID != nil {
		w.PaymentID = *in.PaymentID
	}
	if w.FreelancerID == "" {
		return invalid("freelancerId is required")
	}
	if strings.TrimSpace(w.Description) == "" {
		return invalid("description is required")
	}
	if w.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

// checkFreelancer reports a dangling freelancer reference as invalid input.
func (s *FreelanceWorkService) checkFreelancer(ctx context.Context, id string) error {
	if _, err := s.freelancers.GetByID(ctx, id); err != nil {
		if err = storeError(err, "freelancer"); isNotFound(err) {
			return invalid("freelancer %q does not exist", id)
		}
		return err
	}
	return nil
}

func (s *FreelanceWorkService) Create(ctx context.Context, p model.Principal, in FreelanceWorkInput) (*model.FreelanceWork, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceFreelanceWorks); err != nil {
		return nil, err
	}
	if in.Price == nil {
		return nil, invalid("price is required")
	}
	w := &model.FreelanceWork{Currency: model.DefaultCurrency}
	if err := in.apply(w); err != nil {
		return nil, err
	}
	if err := s.checkFreelancer(ctx, w.FreelancerID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, storeError(err, "freelance work")
	}
	return w, nil
}

func (s *FreelanceWorkService) Get(ctx context.Context, p model.Principal, id string) (*model.FreelanceWork, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceFreelanceWorks); err != nil {
		return nil, err
	}
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "freelance work")
	}
	return w, nil
}

func (s *FreelanceWorkService) List(ctx context.Context, p model.Principal, freelancerID string, page *model.Page) ([]model.FreelanceWork, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceFreelanceWorks); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, strings.TrimSpace(freelancerID), page)
}

func (s *FreelanceWorkService) Update(ctx context.Context, p model.Principal, id string, in FreelanceWorkInput) (*model.FreelanceWork, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceFreelanceWorks); err != nil {
		return nil, err
	}
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "freelance work")
	}
	if err := in.apply(w); err != nil {
		return nil, err
	}
	if in.FreelancerID != nil {
		if err := s.checkFreelancer(ctx, w.FreelancerID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, storeError(err, "freelance work")
	}
	return w, nil
}

func (s *FreelanceWorkService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceFreelanceWorks); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "freelance work")
}
