// Package access decides whether a signed-in principal may reach a
// protected surface. Every dashboard route goes through Decide so the
// blocked/onboarding/role precedence lives in one place instead of being
// re-derived per view.
package access

import "gropower-backend/internal/domain"

// Decision is the outcome of gating a protected view. The gate never
// errors; every branch resolves to a navigation outcome.
type Decision int

const (
	Allow Decision = iota
	RedirectHome
	RedirectOnboarding
	ShowBlockedScreen
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectHome:
		return "redirect-home"
	case RedirectOnboarding:
		return "redirect-onboarding"
	case ShowBlockedScreen:
		return "blocked"
	default:
		return "unknown"
	}
}

// Identity is the denormalized profile of the current viewer.
type Identity struct {
	UserID             int64
	Email              string
	Role               domain.UserRole
	Status             domain.UserStatus
	OnboardingComplete bool
}

// Capability names an action a view requires, so routes declare what they
// need instead of comparing role strings ad hoc.
type Capability int

const (
	// ManageStore covers the admin-only surfaces: user, product, task,
	// message and content CRUD, order status/balance edits, stats.
	ManageStore Capability = iota
	// PlaceOrders is held by the commercial roles that may check out.
	PlaceOrders
	// WorkTasks is held by staff working the task list.
	WorkTasks
)

var grants = map[Capability][]domain.UserRole{
	ManageStore: {domain.RoleAdmin},
	PlaceOrders: {domain.RoleAdmin, domain.RoleDealer, domain.RoleDistributor},
	WorkTasks:   {domain.RoleAdmin, domain.RoleStaff},
}

// Can reports whether the identity holds the capability. A nil identity
// holds nothing.
func Can(id *Identity, c Capability) bool {
	if id == nil {
		return false
	}
	for _, role := range grants[c] {
		if id.Role == role {
			return true
		}
	}
	return false
}

// Decide gates a protected view. Precedence is fixed: missing identity,
// then blocked status, then incomplete onboarding, then role. A blocked
// account is surfaced as blocked whatever its role; callers must also
// clear the session on ShowBlockedScreen.
func Decide(id *Identity, required ...Capability) Decision {
	if id == nil {
		return RedirectHome
	}
	if id.Status == domain.UserBlocked {
		return ShowBlockedScreen
	}
	if !id.OnboardingComplete {
		return RedirectOnboarding
	}
	for _, c := range required {
		if !Can(id, c) {
			return RedirectHome
		}
	}
	return Allow
}
