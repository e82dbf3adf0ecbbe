package roles

// Role is the permission level attached to a user account.
type Role string

const (
	Employee  Role = "employee"
	ShopOwner Role = "shop_owner"
	Admin     Role = "admin"
)

var hierarchy = map[Role]int{
	Employee:  1,
	ShopOwner: 2,
	Admin:     3,
}

// AtLeast reports whether r carries the permissions of required.
func (r Role) AtLeast(required Role) bool {
	level, ok := hierarchy[r]
	requiredLevel, requiredOK := hierarchy[required]
	return ok && requiredOK && level >= requiredLevel
}

func Valid(r string) bool {
	_, ok := hierarchy[Role(r)]
	return ok
}
