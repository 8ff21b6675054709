package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gropower-backend/internal/domain"
)

func ident(role domain.UserRole, status domain.UserStatus, onboarded bool) *Identity {
	return &Identity{
		UserID:             1,
		Email:              "user@example.com",
		Role:               role,
		Status:             status,
		OnboardingComplete: onboarded,
	}
}

func TestDecidePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		id       *Identity
		required []Capability
		want     Decision
	}{
		{
			name: "nil identity redirects home",
			id:   nil,
			want: RedirectHome,
		},
		{
			name: "blocked admin is still blocked",
			id:   ident(domain.RoleAdmin, domain.UserBlocked, true),
			want: ShowBlockedScreen,
		},
		{
			name: "blocked beats incomplete onboarding",
			id:   ident(domain.RoleDealer, domain.UserBlocked, false),
			want: ShowBlockedScreen,
		},
		{
			name: "incomplete onboarding beats role check",
			id:   ident(domain.RoleOther, domain.UserActive, false),
			want: RedirectOnboarding,
		},
		{
			name:     "role mismatch redirects home",
			id:       ident(domain.RoleMechanic, domain.UserActive, true),
			required: []Capability{PlaceOrders},
			want:     RedirectHome,
		},
		{
			name:     "dealer may place orders",
			id:       ident(domain.RoleDealer, domain.UserActive, true),
			required: []Capability{PlaceOrders},
			want:     Allow,
		},
		{
			name:     "distributor may place orders",
			id:       ident(domain.RoleDistributor, domain.UserActive, true),
			required: []Capability{PlaceOrders},
			want:     Allow,
		},
		{
			name:     "staff cannot manage the store",
			id:       ident(domain.RoleStaff, domain.UserActive, true),
			required: []Capability{ManageStore},
			want:     RedirectHome,
		},
		{
			name:     "admin holds every capability",
			id:       ident(domain.RoleAdmin, domain.UserActive, true),
			required: []Capability{ManageStore, PlaceOrders, WorkTasks},
			want:     Allow,
		},
		{
			name: "no required capabilities allows any active account",
			id:   ident(domain.RoleKekeDriver, domain.UserActive, true),
			want: Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.id, tt.required...))
		})
	}
}

func TestCanNilIdentity(t *testing.T) {
	assert.False(t, Can(nil, PlaceOrders))
}
