// Package access decides what a staff member may see and do based on their
// role and account status.
package access

import "fmt"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleAnalyst   Role = "analyst"
	RoleSales     Role = "sales"
)

// ParseRole rejects anything outside the closed role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleModerator, RoleAnalyst, RoleSales:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

const StatusActive = "active"

// Principal is the caller as seen by capability checks
type Principal struct {
	Role   Role
	Status string
}

type View struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	AdminOnly bool   `json:"-"`
}

var views = []View{
	{ID: "dashboard", Label: "Dashboard"},
	{ID: "analyze", Label: "Analyze Page"},
	{ID: "drafts", Label: "Drafts"},
	{ID: "campaigns", Label: "Campaigns"},
	{ID: "messages", Label: "Messages"},
	{ID: "minichat", Label: "Mini Chat"},
	{ID: "settings", Label: "Settings", AdminOnly: true},
}

// VisibleViews returns the navigation entries for role in display order.
func VisibleViews(role Role) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if v.AdminOnly && role != RoleAdmin {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Capability is a predicate over the caller
type Capability func(Principal) bool

func CanUse(p Principal) bool {
	return p.Status == StatusActive
}

func CanModerate(p Principal) bool {
	return CanUse(p) && (p.Role == RoleAdmin || p.Role == RoleModerator)
}

func CanManageCampaigns(p Principal) bool {
	return CanUse(p) && p.Role == RoleAdmin
}

func CanManageTeam(p Principal) bool {
	return CanUse(p) && p.Role == RoleAdmin
}

func CanEditSettings(p Principal) bool {
	return CanUse(p) && p.Role == RoleAdmin
}
