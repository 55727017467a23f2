// Package policy holds the role decision table for every API resource.
package policy

import "github.com/pointdigital/manager-api/internal/model"

type Action string

const (
	ActionList      Action = "list"
	ActionRetrieve  Action = "retrieve"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionMe        Action = "me"
	ActionSetStatus Action = "set_status"
	ActionExport    Action = "export"
	ActionSend      Action = "send"
)

type Resource string

const (
	ResourceUsers          Resource = "users"
	ResourceSettings       Resource = "settings"
	ResourceQuotations     Resource = "quotations"
	ResourceVouchers       Resource = "vouchers"
	ResourceContracts      Resource = "contracts"
	ResourceFreelancers    Resource = "freelancers"
	ResourceFreelanceWorks Resource = "freelance_works"
	ResourceSMSLogs        Resource = "sms_logs"
	ResourceMessages       Resource = "messages"
)

type Decision int

const (
	Deny Decision = iota
	Allow
	// DenyCategory rejects a voucher write because of its category alone.
	DenyCategory
	// Unauthenticated means there is no caller to evaluate.
	Unauthenticated
)

func (d Decision) Allowed() bool { return d == Allow }

var readCreate = map[Action]bool{
	ActionList:     true,
	ActionRetrieve: true,
	ActionCreate:   true,
	ActionExport:   true,
}

// accountantRules lists what an ACCOUNTANT may do per resource. ADMIN may do everything.
var accountantRules = map[Resource]map[Action]bool{
	ResourceUsers: {
		ActionList:     true,
		ActionRetrieve: true,
		ActionCreate:   true,
		ActionMe:       true,
	},
	ResourceSettings:       {},
	ResourceQuotations:     readCreate,
	ResourceVouchers:       readCreate,
	ResourceContracts:      readCreate,
	ResourceFreelancers:    readCreate,
	ResourceFreelanceWorks: readCreate,
	ResourceSMSLogs:        readCreate,
	ResourceMessages:       {ActionSend: true},
}

// Decide evaluates the table for one request.
func Decide(p model.Principal, action Action, resource Resource) Decision {
	if p.IsZero() {
		return Unauthenticated
	}
	switch p.Role {
	case model.RoleAdmin:
		return Allow
	case model.RoleAccountant:
		if accountantRules[resource][action] {
			return Allow
		}
	}
	return Deny
}

// DecideVoucherWrite adds the category rule on top of Decide for voucher creates and updates.
func DecideVoucherWrite(p model.Principal, action Action, category model.VoucherCategory) Decision {
	d := Decide(p, action, ResourceVouchers)
	if d != Allow {
		return d
	}
	if category == model.VoucherCategoryOwnerWithdrawal && !CanSeeCategory(p, category) {
		return DenyCategory
	}
	return Allow
}

// CanSeeCategory reports whether vouchers of category are visible to p.
func CanSeeCategory(p model.Principal, category model.VoucherCategory) bool {
	if category != model.VoucherCategoryOwnerWithdrawal {
		return true
	}
	return p.IsAdmin()
}

// HiddenVoucherCategories returns the categories to exclude from p's voucher reads.
func HiddenVoucherCategories(p model.Principal) []model.VoucherCategory {
	if p.IsAdmin() {
		return nil
	}
	return []model.VoucherCategory{model.VoucherCategoryOwnerWithdrawal}
}
