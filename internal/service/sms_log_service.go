package service

import (
	"context"
	"strings"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

type SMSLogService struct {
	repo *repository.SMSLogRepository
}

func NewSMSLogService(repo *repository.SMSLogRepository) *SMSLogService {
	return &SMSLogService{repo: repo}
}

type SMSLogInput struct {
	To     string
	Body   string
	Status model.SMSStatus
	Error  string
}

// Create records an attempt made outside the send endpoint. The timestamp is
// always assigned by the server.
func (s *SMSLogService) Create(ctx context.Context, p model.Principal, in SMSLogInput) (*model.SMSLog, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceSMSLogs); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.To) == "" || strings.TrimSpace(in.Body) == "" {
		return nil, invalid("to and body are required")
	}
	if !in.Status.Valid() {
		return nil, invalid("status must be SUCCESS or FAILED")
	}
	entry := &model.SMSLog{To: in.To, Body: in.Body, Status: in.Status, Error: in.Error}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, storeError(err, "sms log")
	}
	return entry, nil
}

func (s *SMSLogService) Get(ctx context.Context, p model.Principal, id string) (*model.SMSLog, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceSMSLogs); err != nil {
		return nil, err
	}
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "sms log")
	}
	return entry, nil
}

func (s *SMSLogService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.SMSLog, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceSMSLogs); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, page)
}

func (s *SMSLogService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceSMSLogs); err != nil {
		return err
	}
	return storeError(s.repo.Delete(ctx, id), "sms log")
}
