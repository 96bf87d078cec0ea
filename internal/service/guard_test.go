package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"course-choose-api/internal/domain"
)

func TestAuthorize(t *testing.T) {
	admin := &domain.User{ID: 1, Roles: domain.RolesOf(domain.RoleAdministrator)}
	client := &domain.User{ID: 2, Roles: domain.RolesOf(domain.RoleClient)}

	tests := []struct {
		name       string
		actor      *domain.User
		target     uint
		wantUpdate error
		wantDelete error
	}{
		{"admin on self", admin, 1, nil, nil},
		{"admin on other", admin, 2, nil, domain.ErrForbidden},
		{"client on self", client, 2, nil, domain.ErrForbidden},
		{"client on other", client, 1, domain.ErrForbidden, domain.ErrForbidden},
		{"anonymous", nil, 1, domain.ErrUnauthenticated, domain.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, AuthorizeUpdate(tt.actor, tt.target), tt.wantUpdate)
			assert.ErrorIs(t, AuthorizeDelete(tt.actor, tt.target), tt.wantDelete)
		})
	}
}
