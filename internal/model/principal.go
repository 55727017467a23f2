package model

type Principal struct {
	UserID   string
	Username string
	Role     UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsAccountant() bool {
	return p.Role == RoleAccountant
}

func (p Principal) IsZero() bool {
	return p.UserID == ""
}
