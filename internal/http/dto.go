package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/service"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

func typed[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// ----- auth -----

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// ----- users -----

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(u model.User) userResponse {
	created := ""
	if !u.DateJoined.IsZero() {
		created = u.DateJoined.Format(dateLayout)
	}
	return userResponse{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: created,
	}
}

type userCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN ACCOUNTANT"`
}

func (r userCreateRequest) input() service.CreateUserInput {
	return service.CreateUserInput{
		Name:     r.Name,
		Username: r.Username,
		Password: r.Password,
		Role:     model.UserRole(r.Role),
	}
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN ACCOUNTANT"`
}

func (r userUpdateRequest) input() service.UpdateUserInput {
	return service.UpdateUserInput{
		Name:     r.Name,
		Password: r.Password,
		Role:     typed[model.UserRole](r.Role),
	}
}

// ----- settings -----

type serviceDefinition struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type settingsRequest struct {
	Name           *string                 `json:"name"`
	Logo           *string                 `json:"logo"`
	Address        *string                 `json:"address"`
	Phone          *string                 `json:"phone"`
	Email          *string                 `json:"email"`
	Services       *[]serviceDefinition    `json:"services" binding:"omitempty,dive"`
	QuotationTerms *[]string               `json:"quotationTerms"`
	Twilio         *map[string]interface{} `json:"twilio"`
	ExchangeRate   *decimal.Decimal        `json:"exchangeRate"`
}

func (r settingsRequest) input() service.SettingsInput {
	in := service.SettingsInput{
		Name:           r.Name,
		Logo:           r.Logo,
		Address:        r.Address,
		Phone:          r.Phone,
		Email:          r.Email,
		QuotationTerms: r.QuotationTerms,
		Twilio:         r.Twilio,
		ExchangeRate:   r.ExchangeRate,
	}
	if r.Services != nil {
		services := make([]service.ServiceInput, 0, len(*r.Services))
		for _, s := range *r.Services {
			services = append(services, service.ServiceInput{Name: s.Name, Description: s.Description})
		}
		in.Services = &services
	}
	return in
}

type settingsResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Logo           string                 `json:"logo"`
	Address        string                 `json:"address"`
	Phone          string                 `json:"phone"`
	Email          string                 `json:"email"`
	Services       []serviceDefinition    `json:"services"`
	QuotationTerms []string               `json:"quotationTerms"`
	Twilio         map[string]interface{} `json:"twilio"`
	ExchangeRate   float64                `json:"exchangeRate"`
}

func toSettingsResponse(s model.AgencySettings) settingsResponse {
	services := make([]serviceDefinition, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, serviceDefinition{Name: svc.Name, Description: svc.Description})
	}
	terms := []string(s.QuotationTerms)
	if terms == nil {
		terms = []string{}
	}
	twilio := map[string]interface{}(s.Twilio)
	if twilio == nil {
		twilio = map[string]interface{}{}
	}
	rate := s.ExchangeRate
	if rate.IsZero() {
		rate = model.DefaultExchangeRate
	}
	return settingsResponse{
		ID:             s.ID,
		Name:           s.Name,
		Logo:           s.Logo,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		Services:       services,
		QuotationTerms: terms,
		Twilio:         twilio,
		ExchangeRate:   rate.InexactFloat64(),
	}
}

// ----- quotations -----

type quotationItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity" binding:"omitempty,min=0"`
	Currency    string          `json:"currency"`
}

type quotationRequest struct {
	ClientName  *string                 `json:"clientName"`
	ClientPhone *string                 `json:"clientPhone"`
	Date        *string                 `json:"date"`
	Currency    *string                 `json:"currency"`
	Status      *string                 `json:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED"`
	Note        *string                 `json:"note"`
	Items       *[]quotationItemRequest `json:"items" binding:"omitempty,dive"`
}

func (r quotationRequest) input() service.QuotationInput {
	in := service.QuotationInput{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Date:        r.Date,
		Currency:    r.Currency,
		Status:      typed[model.QuotationStatus](r.Status),
		Note:        r.Note,
	}
	if r.Items != nil {
		items := make([]service.QuotationItemInput, 0, len(*r.Items))
		for _, it := range *r.Items {
			items = append(items, service.QuotationItemInput{
				Description: it.Description,
				Price:       it.Price,
				Quantity:    it.Quantity,
				Currency:    it.Currency,
			})
		}
		in.Items = &items
	}
	return in
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type quotationItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Currency    string          `json:"currency"`
}

type quotationResponse struct {
	ID          string                  `json:"id"`
	ClientName  string                  `json:"clientName"`
	ClientPhone string                  `json:"clientPhone"`
	Date        string                  `json:"date"`
	Items       []quotationItemResponse `json:"items"`
	Total       decimal.Decimal         `json:"total"`
	Currency    string                  `json:"currency"`
	Status      string                  `json:"status"`
	Note        string                  `json:"note"`
	CreatedAt   time.Time               `json:"createdAt"`
}

func toQuotationResponse(q model.Quotation) quotationResponse {
	items := make([]quotationItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, quotationItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Currency:    it.Currency,
		})
	}
	return quotationResponse{
		ID:          q.ID,
		ClientName:  q.ClientName,
		ClientPhone: q.ClientPhone,
		Date:        q.Date,
		Items:       items,
		Total:       q.Total,
		Currency:    q.Currency,
		Status:      string(q.Status),
		Note:        q.Note,
		CreatedAt:   q.CreatedAt,
	}
}

// ----- vouchers -----

type voucherRequest struct {
	Type        *string          `json:"type" binding:"omitempty,oneof=RECEIPT PAYMENT"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    *string          `json:"currency"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	PartyName   *string          `json:"partyName"`
	PartyPhone  *string          `json:"partyPhone"`
	Category    *string          `json:"category"`
}

func (r voucherRequest) input() service.VoucherInput {
	return service.VoucherInput{
		Type:        typed[model.VoucherType](r.Type),
		Amount:      r.Amount,
		Currency:    r.Currency,
		Date:        r.Date,
		Description: r.Description,
		PartyName:   r.PartyName,
		PartyPhone:  r.PartyPhone,
		Category:    typed[model.VoucherCategory](r.Category),
	}
}

type voucherResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	PartyName   string          `json:"partyName"`
	PartyPhone  string          `json:"partyPhone"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toVoucherResponse(v model.Voucher) voucherResponse {
	return voucherResponse{
		ID:          v.ID,
		Type:        string(v.Type),
		Amount:      v.Amount,
		Currency:    v.Currency,
		Date:        v.Date,
		Description: v.Description,
		PartyName:   v.PartyName,
		PartyPhone:  v.PartyPhone,
		Category:    string(v.Category),
		CreatedAt:   v.CreatedAt,
	}
}

// ----- contracts -----

type clauseRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type contractRequest struct {
	Date        *string          `json:"date"`
	PartyAName  *string          `json:"partyAName"`
	PartyATitle *string          `json:"partyATitle"`
	PartyBName  *string          `json:"partyBName"`
	PartyBTitle *string          `json:"partyBTitle"`
	Subject     *string          `json:"subject"`
	TotalValue  *decimal.Decimal `json:"totalValue"`
	Currency    *string          `json:"currency"`
	Status      *string          `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
	Clauses     *[]clauseRequest `json:"clauses" binding:"omitempty,dive"`
}

func (r contractRequest) input() service.ContractInput {
	in := service.ContractInput{
		Date:        r.Date,
		PartyAName:  r.PartyAName,
		PartyATitle: r.PartyATitle,
		PartyBName:  r.PartyBName,
		PartyBTitle: r.PartyBTitle,
		Subject:     r.Subject,
		TotalValue:  r.TotalValue,
		Currency:    r.Currency,
		Status:      typed[model.ContractStatus](r.Status),
	}
	if r.Clauses != nil {
		clauses := make([]service.ClauseInput, 0, len(*r.Clauses))
		for _, c := range *r.Clauses {
			clauses = append(clauses, service.ClauseInput{Title: c.Title, Content: c.Content})
		}
		in.Clauses = &clauses
	}
	return in
}

type clauseResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type contractResponse struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	PartyAName  string           `json:"partyAName"`
	PartyATitle string           `json:"partyATitle"`
	PartyBName  string           `json:"partyBName"`
	PartyBTitle string           `json:"partyBTitle"`
	Subject     string           `json:"subject"`
	TotalValue  decimal.Decimal  `json:"totalValue"`
	Currency    string           `json:"currency"`
	Clauses     []clauseResponse `json:"clauses"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func toContractResponse(c model.Contract) contractResponse {
	clauses := make([]clauseResponse, 0, len(c.Clauses))
	for _, cl := range c.Clauses {
		clauses = append(clauses, clauseResponse{ID: cl.ID, Title: cl.Title, Content: cl.Content})
	}
	return contractResponse{
		ID:          c.ID,
		Date:        c.Date,
		PartyAName:  c.PartyAName,
		PartyATitle: c.PartyATitle,
		PartyBName:  c.PartyBName,
		PartyBTitle: c.PartyBTitle,
		Subject:     c.Subject,
		TotalValue:  c.TotalValue,
		Currency:    c.Currency,
		Clauses:     clauses,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

// ----- freelancers -----

type freelancerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=PHOTOGRAPHER EDITOR"`
}

func (r freelancerRequest) input() service.FreelancerInput {
	return service.FreelancerInput{
		Name:  r.Name,
		Phone: r.Phone,
		Role:  typed[model.FreelancerRole](r.Role),
	}
}

type freelancerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func toFreelancerResponse(f model.Freelancer) freelancerResponse {
	return freelancerResponse{ID: f.ID, Name: f.Name, Phone: f.Phone, Role: string(f.Role)}
}

type freelanceWorkRequest struct {
	FreelancerID *string          `json:"freelancerId"`
	Description  *string          `json:"description"`
	Date         *string          `json:"date"`
	Price        *decimal.Decimal `json:"price"`
	Currency     *string          `json:"currency"`
	IsPaid       *bool            `json:"isPaid"`
	PaymentID    *string          `json:"paymentId"`
}

func (r freelanceWorkRequest) input() service.FreelanceWorkInput {
	return service.FreelanceWorkInput{
		FreelancerID: r.FreelancerID,
		Description:  r.Description,
		Date:         r.Date,
		Price:        r.Price,
		Currency:     r.Currency,
		IsPaid:       r.IsPaid,
		PaymentID:    r.PaymentID,
	}
}

type freelanceWorkResponse struct {
	ID           string          `json:"id"`
	FreelancerID string          `json:"freelancerId"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	IsPaid       bool            `json:"isPaid"`
	PaymentID    string          `json:"paymentId"`
}

func toFreelanceWorkResponse(w model.FreelanceWork) freelanceWorkResponse {
	return freelanceWorkResponse{
		ID:           w.ID,
		FreelancerID: w.FreelancerID,
		Description:  w.Description,
		Date:         w.Date,
		Price:        w.Price,
		Currency:     w.Currency,
		IsPaid:       w.IsPaid,
		PaymentID:    w.PaymentID,
	}
}

// ----- sms -----

type smsLogRequest struct {
	To     string `json:"to" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Status string `json:"status" binding:"required,oneof=SUCCESS FAILED"`
	Error  string `json:"error"`
}

type smsLogResponse struct {
	ID        string `json:"id"`
	To        string `json:"to"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

func toSMSLogResponse(l model.SMSLog) smsLogResponse {
	return smsLogResponse{
		ID:        l.ID,
		To:        l.To,
		Body:      l.Body,
		Status:    string(l.Status),
		Timestamp: l.Timestamp.UTC().Format(timestampLayout),
		Error:     l.Error,
	}
}

type sendSMSRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
