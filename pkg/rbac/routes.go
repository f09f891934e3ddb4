package rbac

import (
	"strings"

	"learnhub_client/internal/model"
)

type routeRule struct {
	prefix string
	roles  []model.Role
}

// Ordered: the first matching prefix wins, so more specific prefixes are
// listed before the sections they live under.
var routeTable = []routeRule{
	{"/admin", []model.Role{model.RoleAdmin}},
	{"/instructor", []model.Role{model.RoleInstructor, model.RoleAdmin}},
	{"/partner", []model.Role{model.RolePartnerInstructor, model.RoleAdmin}},
	{"/guest", []model.Role{model.RoleGuest, model.RoleAdmin}},
	{"/courses/manage", []model.Role{model.RoleInstructor, model.RolePartnerInstructor, model.RoleAdmin}},
	{"/reports", []model.Role{model.RoleInstructor, model.RoleAdmin}},
}

var homeRoutes = map[model.Role]string{
	model.RoleAdmin:             "/admin",
	model.RoleInstructor:        "/instructor",
	model.RolePartnerInstructor: "/partner",
	model.RoleGuest:             "/guest",
	model.RoleStudent:           "/courses",
}

// CanAccessRoute matches the path against the route table. Paths with no
// matching prefix are open to any authenticated user.
func CanAccessRoute(user *model.UserRecord, routePath string) bool {
	if user == nil || user.Role == "" || user.Suspended() {
		return false
	}
	if user.Role == model.RoleGuest && IsGuestAccessExpired(user) {
		return false
	}
	for _, rule := range routeTable {
		if strings.HasPrefix(routePath, rule.prefix) {
			for _, r := range rule.roles {
				if user.Role == r {
					return true
				}
			}
			return false
		}
	}
	return true
}

// GetUserHomeRoute returns the role's default landing page, or /login when
// there is no usable role.
func GetUserHomeRoute(user *model.UserRecord) string {
	if user == nil {
		return "/login"
	}
	if home, ok := homeRoutes[user.Role]; ok {
		return home
	}
	return "/login"
}
