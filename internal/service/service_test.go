package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/auth"
	"github.com/pointdigital/manager-api/internal/config"
	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/repository"
	"github.com/pointdigital/manager-api/internal/testutil"
)

var (
	admin      = model.Principal{UserID: "US-000001", Username: "admin", Role: model.RoleAdmin}
	accountant = model.Principal{UserID: "US-000002", Username: "acc", Role: model.RoleAccountant}
)

func ptr[T any](v T) *T { return &v }

type fakeExcel struct {
	got []model.Voucher
}

func (f *fakeExcel) Vouchers(vouchers []model.Voucher, _ time.Time) ([]byte, error) {
	f.got = vouchers
	return []byte("xlsx"), nil
}

type fakePDF struct {
	agency *model.AgencySettings
}

func (f *fakePDF) Quotation(q model.Quotation, agency *model.AgencySettings) ([]byte, error) {
	f.agency = agency
	return []byte("%PDF " + q.ID), nil
}

type fakeSender struct {
	calls int
	to    string
	creds model.SMSCredentials
	sid   string
	err   error
}

func (f *fakeSender) Send(creds model.SMSCredentials, to, body string) (string, error) {
	f.calls++
	f.to = to
	f.creds = creds
	return f.sid, f.err
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

func TestQuotationService_TotalFromItems(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuotationService(repository.NewQuotationRepository(db), repository.NewSettingsRepository(db), &fakePDF{})
	ctx := context.Background()

	q, err := svc.Create(ctx, accountant, QuotationInput{
		ClientName: ptr("Acme"),
		Items: &[]QuotationItemInput{
			{Description: "Design", Price: decimal.NewFromInt(10), Quantity: ptr(2)},
			{Description: "Print", Price: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "QT-000001", q.ID)
	assert.Equal(t, model.DefaultCurrency, q.Currency)
	assert.Equal(t, model.QuotationStatusPending, q.Status)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(25)), "total %s", q.Total)
	assert.Equal(t, 1, q.Items[1].Quantity)

	updated, err := svc.Update(ctx, admin, q.ID, QuotationInput{
		Items: &[]QuotationItemInput{{Description: "Video", Price: decimal.RequireFromString("12.5"), Quantity: ptr(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.ClientName)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(25)))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(1), countRows(t, db, &model.QuotationItem{}))
}

func TestQuotationService_Policy(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuotationService(repository.NewQuotationRepository(db), repository.NewSettingsRepository(db), &fakePDF{})
	ctx := context.Background()

	q, err := svc.Create(ctx, accountant, QuotationInput{ClientName: ptr("Acme")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, accountant, q.ID, QuotationInput{Note: ptr("x")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, accountant, q.ID), ErrPermissionDenied)
	_, err = svc.SetStatus(ctx, accountant, q.ID, model.QuotationStatusAccepted)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Get(ctx, model.Principal{}, q.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Create(ctx, accountant, QuotationInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuotationService_SetStatus(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuotationService(repository.NewQuotationRepository(db), repository.NewSettingsRepository(db), &fakePDF{})
	ctx := context.Background()

	q, err := svc.Create(ctx, admin, QuotationInput{ClientName: ptr("Acme")})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, admin, q.ID, "DONE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	stored, err := svc.Get(ctx, admin, q.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusPending, stored.Status)

	got, err := svc.SetStatus(ctx, admin, q.ID, model.QuotationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusAccepted, got.Status)

	_, err = svc.SetStatus(ctx, admin, "QT-404404", model.QuotationStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuotationService_PDFUsesFirstSettings(t *testing.T) {
	db := testutil.NewDB(t)
	pdf := &fakePDF{}
	settings := repository.NewSettingsRepository(db)
	svc := NewQuotationService(repository.NewQuotationRepository(db), settings, pdf)
	ctx := context.Background()

	q, err := svc.Create(ctx, admin, QuotationInput{ClientName: ptr("Acme")})
	require.NoError(t, err)

	doc, err := svc.PDF(ctx, accountant, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "QT-000001.pdf", doc.FileName)
	assert.Nil(t, pdf.agency)

	require.NoError(t, settings.Create(ctx, &model.AgencySettings{Name: "Point", ExchangeRate: model.DefaultExchangeRate}))
	_, err = svc.PDF(ctx, accountant, q.ID)
	require.NoError(t, err)
	require.NotNil(t, pdf.agency)
	assert.Equal(t, "Point", pdf.agency.Name)
}

func voucherInput(category model.VoucherCategory) VoucherInput {
	return VoucherInput{
		Type:      ptr(model.VoucherTypePayment),
		Amount:    ptr(decimal.NewFromInt(100)),
		PartyName: ptr("Owner"),
		Category:  ptr(category),
	}
}

func TestVoucherService_OwnerWithdrawalRules(t *testing.T) {
	db := testutil.NewDB(t)
	excel := &fakeExcel{}
	svc := NewVoucherService(repository.NewVoucherRepository(db), excel)
	ctx := context.Background()

	_, err := svc.Create(ctx, accountant, voucherInput(model.VoucherCategoryOwnerWithdrawal))
	assert.ErrorIs(t, err, ErrForbiddenCategory)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Zero(t, countRows(t, db, &model.Voucher{}))

	owner, err := svc.Create(ctx, admin, voucherInput(model.VoucherCategoryOwnerWithdrawal))
	require.NoError(t, err)
	salary, err := svc.Create(ctx, accountant, voucherInput(model.VoucherCategorySalary))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCurrency, salary.Currency)

	list, total, err := svc.List(ctx, accountant, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, salary.ID, list[0].ID)

	_, err = svc.Get(ctx, accountant, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, total, err := svc.List(ctx, admin, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	doc, err := svc.Export(ctx, accountant)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), doc.Content)
	require.Len(t, excel.got, 1)
	assert.Equal(t, salary.ID, excel.got[0].ID)
}

func TestVoucherService_Validation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewVoucherService(repository.NewVoucherRepository(db), &fakeExcel{})
	ctx := context.Background()

	in := voucherInput("BONUS")
	_, err := svc.Create(ctx, admin, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = voucherInput(model.VoucherCategoryNone)
	in.Type = ptr(model.VoucherType("REFUND"))
	_, err = svc.Create(ctx, admin, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = voucherInput(model.VoucherCategoryNone)
	in.Amount = nil
	_, err = svc.Create(ctx, admin, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err := svc.Create(ctx, admin, voucherInput(model.VoucherCategoryNone))
	require.NoError(t, err)
	_, err = svc.Update(ctx, accountant, v.ID, VoucherInput{Description: ptr("x")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, admin, v.ID, VoucherInput{Description: ptr("rent")})
	require.NoError(t, err)
	assert.Equal(t, "rent", updated.Description)
	assert.Equal(t, "Owner", updated.PartyName)
}

func TestContractService_AccountantReadCreateOnly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewContractService(repository.NewContractRepository(db))
	ctx := context.Background()

	c, err := svc.Create(ctx, accountant, ContractInput{
		PartyAName: ptr("Point"),
		PartyBName: ptr("Client"),
		TotalValue: ptr(decimal.NewFromInt(1000)),
		Clauses:    &[]ClauseInput{{Title: "Scope", Content: "Posts"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusActive, c.Status)

	got, err := svc.Get(ctx, accountant, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Clauses, 1)

	_, err = svc.Update(ctx, accountant, c.ID, ContractInput{Subject: ptr("changed")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, accountant, c.ID), ErrPermissionDenied)

	updated, err := svc.Update(ctx, admin, c.ID, ContractInput{Status: ptr(model.ContractStatusArchived)})
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusArchived, updated.Status)
	require.Len(t, updated.Clauses, 1)

	require.NoError(t, svc.Delete(ctx, admin, c.ID))
	assert.Zero(t, countRows(t, db, &model.ContractClause{}))
}

func TestFreelanceWorkService_RequiresExistingFreelancer(t *testing.T) {
	db := testutil.NewDB(t)
	freelancers := repository.NewFreelancerRepository(db)
	works := NewFreelanceWorkService(repository.NewFreelanceWorkRepository(db), freelancers)
	people := NewFreelancerService(freelancers)
	ctx := context.Background()

	_, err := works.Create(ctx, accountant, FreelanceWorkInput{
		FreelancerID: ptr("FL-000009"), Description: ptr("shoot"), Price: ptr(decimal.NewFromInt(50)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f, err := people.Create(ctx, accountant, FreelancerInput{Name: ptr("Ali")})
	require.NoError(t, err)
	assert.Equal(t, model.FreelancerRolePhotographer, f.Role)

	w, err := works.Create(ctx, accountant, FreelanceWorkInput{
		FreelancerID: ptr(f.ID), Description: ptr("shoot"), Price: ptr(decimal.NewFromInt(50)),
	})
	require.NoError(t, err)
	assert.Equal(t, "WK-000001", w.ID)
	assert.False(t, w.IsPaid)

	_, err = works.Update(ctx, accountant, w.ID, FreelanceWorkInput{IsPaid: ptr(true)})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	paid, err := works.Update(ctx, admin, w.ID, FreelanceWorkInput{IsPaid: ptr(true), PaymentID: ptr("VC-000001")})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	list, _, err := works.List(ctx, accountant, f.ID, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func newNotification(t *testing.T, sender Sender) (*NotificationService, *repository.SettingsRepository, *gorm.DB) {
	db := testutil.NewDB(t)
	settings := repository.NewSettingsRepository(db)
	svc := NewNotificationService(settings, repository.NewSMSLogRepository(db), sender, "964", zerolog.Nop())
	return svc, settings, db
}

func TestNotificationService_ConfigFailuresAreNotLogged(t *testing.T) {
	sender := &fakeSender{sid: "SM1"}
	svc, settings, db := newNotification(t, sender)
	ctx := context.Background()

	_, err := svc.Send(ctx, accountant, "07701234567", "hi")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, settings.Create(ctx, &model.AgencySettings{
		Name:         "Point",
		ExchangeRate: model.DefaultExchangeRate,
		Twilio: map[string]interface{}{
			"accountSid": "AC1", "authToken": "tok", "fromNumber": "+15550001", "enabled": false,
		},
	}))
	_, err = svc.Send(ctx, accountant, "07701234567", "hi")
	var smsErr *SMSError
	require.True(t, errors.As(err, &smsErr))
	assert.Equal(t, "SMS sending is disabled in settings", smsErr.Reason)

	_, err = svc.Send(ctx, accountant, "", "hi")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, sender.calls)
	assert.Zero(t, countRows(t, db, &model.SMSLog{}))
}

func TestNotificationService_IncompleteCredentials(t *testing.T) {
	sender := &fakeSender{}
	svc, settings, db := newNotification(t, sender)
	ctx := context.Background()

	require.NoError(t, settings.Create(ctx, &model.AgencySettings{
		Name: "Point", ExchangeRate: model.DefaultExchangeRate,
		Twilio: map[string]interface{}{"account_sid": "AC1", "enabled": true},
	}))
	_, err := svc.Send(ctx, admin, "07701234567", "hi")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, sender.calls)
	assert.Zero(t, countRows(t, db, &model.SMSLog{}))
}

func TestNotificationService_SendAndLog(t *testing.T) {
	sender := &fakeSender{sid: "SM123"}
	svc, settings, db := newNotification(t, sender)
	ctx := context.Background()

	require.NoError(t, settings.Create(ctx, &model.AgencySettings{
		Name: "Point", ExchangeRate: model.DefaultExchangeRate,
		Twilio: map[string]interface{}{
			"account_sid": "AC1", "auth_token": "tok", "sender_name": "POINT", "enabled": true,
		},
	}))

	res, err := svc.Send(ctx, accountant, "0770 123 4567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "SM123", res.SID)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "+9647701234567", sender.to)
	assert.Equal(t, "POINT", sender.creds.SenderName)

	var entry model.SMSLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, model.SMSStatusSuccess, entry.Status)
	assert.Equal(t, "+9647701234567", entry.To)

	sender.err = errors.New("connection reset")
	_, err = svc.Send(ctx, accountant, "07701234567", "again")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 2, sender.calls)

	var failed model.SMSLog
	require.NoError(t, db.Where("status = ?", model.SMSStatusFailed).First(&failed).Error)
	assert.Equal(t, "connection reset", failed.Error)
	assert.Equal(t, int64(2), countRows(t, db, &model.SMSLog{}))
}

func newAuth(t *testing.T) (*AuthService, *UserService) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	jwt := auth.NewManager(config.AuthConfig{AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Hour, RefreshTTL: time.Hour})
	return NewAuthService(users, repository.NewTokenRepository(db), jwt, zerolog.Nop()),
		NewUserService(users, zerolog.Nop())
}

func TestAuthService_LoginAndRotate(t *testing.T) {
	authSvc, userSvc := newAuth(t)
	ctx := context.Background()

	require.NoError(t, userSvc.Bootstrap(ctx, "admin", "s3cret"))
	require.NoError(t, userSvc.Bootstrap(ctx, "other", "s3cret"))

	_, err := authSvc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = authSvc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	pair, err := authSvc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	p, err := authSvc.Authenticate(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, p.Role)
	assert.Equal(t, "US-000001", p.UserID)

	rotated, err := authSvc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, rotated.Refresh)

	_, err = authSvc.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = authSvc.Refresh(ctx, rotated.Refresh)
	assert.NoError(t, err)

	_, err = authSvc.Authenticate(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserService_Policy(t *testing.T) {
	_, svc := newAuth(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, accountant, CreateUserInput{Name: "Sara  Al Amin", Username: "sara", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAccountant, created.Role)
	assert.Equal(t, "Sara", created.FirstName)
	assert.Equal(t, "Al Amin", created.LastName)
	assert.NotEqual(t, "pw", created.PasswordHash)

	_, err = svc.Create(ctx, accountant, CreateUserInput{Username: "boss", Password: "pw", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, admin, CreateUserInput{Username: "sara", Password: "pw"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, accountant, created.ID, UpdateUserInput{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, accountant, created.ID), ErrPermissionDenied)

	updated, err := svc.Update(ctx, admin, created.ID, UpdateUserInput{Role: ptr(model.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "Sara Al Amin", updated.DisplayName())

	list, total, err := svc.List(ctx, accountant, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	_, err = svc.Get(ctx, admin, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsService_AdminOnlyAndServicesReplace(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, accountant, SettingsInput{Name: ptr("Point")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, _, err = svc.List(ctx, accountant, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	s, err := svc.Create(ctx, admin, SettingsInput{
		Name:     ptr("Point"),
		Services: &[]ServiceInput{{Name: "Ads"}, {Name: "Video"}},
	})
	require.NoError(t, err)
	assert.True(t, s.ExchangeRate.Equal(decimal.NewFromInt(1500)))

	updated, err := svc.Update(ctx, admin, s.ID, SettingsInput{Phone: ptr("0770")})
	require.NoError(t, err)
	assert.Len(t, updated.Services, 2)

	updated, err = svc.Update(ctx, admin, s.ID, SettingsInput{Services: &[]ServiceInput{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Services)
	assert.Zero(t, countRows(t, db, &model.AgencyService{}))
}

func TestVoucherService_CollidingIDIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewVoucherService(repository.NewVoucherRepository(db), &fakeExcel{})
	ctx := context.Background()

	// Another writer takes VC-000001 between allocation and insert.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:concurrent_voucher", func(tx *gorm.DB) {
		if v, ok := tx.Statement.Dest.(*model.Voucher); ok && v.ID == "VC-000001" {
			tx.Session(&gorm.Session{NewDB: true}).Exec(
				"INSERT INTO vouchers (id, type, amount, currency, party_name) VALUES (?, ?, ?, ?, ?)",
				v.ID, model.VoucherTypeReceipt, "1", "IQD", "concurrent",
			)
		}
	}))

	_, err := svc.Create(ctx, admin, voucherInput(model.VoucherCategoryGeneral))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_PasswordTooLong(t *testing.T) {
	_, svc := newAuth(t)
	ctx := context.Background()
	long := strings.Repeat("x", 73)

	_, err := svc.Create(ctx, admin, CreateUserInput{Username: "long", Password: long})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.Create(ctx, admin, CreateUserInput{Username: "short", Password: strings.Repeat("x", 72)})
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin, created.ID, UpdateUserInput{Password: ptr(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_AuthenticateUsesStoredRole(t *testing.T) {
	authSvc, userSvc := newAuth(t)
	ctx := context.Background()

	require.NoError(t, userSvc.Bootstrap(ctx, "admin", "s3cret"))
	pair, err := authSvc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	p, err := authSvc.Authenticate(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "US-000001", p.UserID)
	assert.Equal(t, model.RoleAdmin, p.Role)

	_, err = userSvc.Update(ctx, p, p.UserID, UpdateUserInput{Role: ptr(model.RoleAccountant)})
	require.NoError(t, err)
	p, err = authSvc.Authenticate(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAccountant, p.Role)
}
