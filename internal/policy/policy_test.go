package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointdigital/manager-api/internal/model"
)

var (
	admin      = model.Principal{UserID: "US-000001", Username: "admin", Role: model.RoleAdmin}
	accountant = model.Principal{UserID: "US-000002", Username: "acc", Role: model.RoleAccountant}
	anonymous  = model.Principal{}
)

func TestDecide_Unauthenticated(t *testing.T) {
	for _, r := range []Resource{ResourceUsers, ResourceSettings, ResourceVouchers, ResourceMessages} {
		assert.Equal(t, Unauthenticated, Decide(anonymous, ActionList, r))
	}
}

func TestDecide_AdminAllowedEverywhere(t *testing.T) {
	actions := []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionDelete, ActionSetStatus}
	resources := []Resource{ResourceUsers, ResourceSettings, ResourceQuotations, ResourceVouchers,
		ResourceContracts, ResourceFreelancers, ResourceFreelanceWorks, ResourceSMSLogs}
	for _, r := range resources {
		for _, a := range actions {
			assert.True(t, Decide(admin, a, r).Allowed(), "%s %s", a, r)
		}
	}
}

func TestDecide_Accountant(t *testing.T) {
	tests := []struct {
		resource Resource
		action   Action
		want     Decision
	}{
		{ResourceUsers, ActionList, Allow},
		{ResourceUsers, ActionRetrieve, Allow},
		{ResourceUsers, ActionCreate, Allow},
		{ResourceUsers, ActionMe, Allow},
		{ResourceUsers, ActionUpdate, Deny},
		{ResourceUsers, ActionDelete, Deny},

		{ResourceSettings, ActionList, Deny},
		{ResourceSettings, ActionRetrieve, Deny},
		{ResourceSettings, ActionCreate, Deny},
		{ResourceSettings, ActionUpdate, Deny},
		{ResourceSettings, ActionDelete, Deny},

		{ResourceContracts, ActionList, Allow},
		{ResourceContracts, ActionRetrieve, Allow},
		{ResourceContracts, ActionCreate, Allow},
		{ResourceContracts, ActionUpdate, Deny},
		{ResourceContracts, ActionDelete, Deny},

		{ResourceQuotations, ActionCreate, Allow},
		{ResourceQuotations, ActionUpdate, Deny},
		{ResourceQuotations, ActionSetStatus, Deny},
		{ResourceQuotations, ActionExport, Allow},

		{ResourceSMSLogs, ActionList, Allow},
		{ResourceSMSLogs, ActionDelete, Deny},

		{ResourceVouchers, ActionExport, Allow},
		{ResourceVouchers, ActionDelete, Deny},

		{ResourceMessages, ActionSend, Allow},
	}
	for _, tt := range tests {
		t.Run(string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(accountant, tt.action, tt.resource))
		})
	}
}

func TestDecide_UnknownRole(t *testing.T) {
	p := model.Principal{UserID: "US-000009", Role: "GUEST"}
	assert.Equal(t, Deny, Decide(p, ActionList, ResourceQuotations))
}

func TestDecideVoucherWrite(t *testing.T) {
	assert.Equal(t, DenyCategory, DecideVoucherWrite(accountant, ActionCreate, model.VoucherCategoryOwnerWithdrawal))
	assert.Equal(t, Allow, DecideVoucherWrite(accountant, ActionCreate, model.VoucherCategorySalary))
	assert.Equal(t, Allow, DecideVoucherWrite(accountant, ActionCreate, model.VoucherCategoryNone))
	assert.Equal(t, Deny, DecideVoucherWrite(accountant, ActionUpdate, model.VoucherCategorySalary))
	assert.Equal(t, Allow, DecideVoucherWrite(admin, ActionCreate, model.VoucherCategoryOwnerWithdrawal))
	assert.Equal(t, Unauthenticated, DecideVoucherWrite(anonymous, ActionCreate, model.VoucherCategoryGeneral))
}

func TestHiddenVoucherCategories(t *testing.T) {
	assert.Empty(t, HiddenVoucherCategories(admin))
	assert.Equal(t, []model.VoucherCategory{model.VoucherCategoryOwnerWithdrawal}, HiddenVoucherCategories(accountant))
	assert.False(t, CanSeeCategory(accountant, model.VoucherCategoryOwnerWithdrawal))
	assert.True(t, CanSeeCategory(accountant, model.VoucherCategoryFreelance))
}
