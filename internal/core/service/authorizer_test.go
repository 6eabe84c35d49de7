package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

type fixedSession struct {
	loading bool
	sess    domain.Session
}

func (f fixedSession) Loading() bool { return f.loading }

func (f fixedSession) Current() (domain.Session, bool) { return f.sess, !f.sess.IsZero() }

func TestAuthorize(t *testing.T) {
	admin := domain.Session{Credential: "a", Role: domain.RoleAdmin}
	client := domain.Session{Credential: "c", Role: domain.RoleClient}

	tests := []struct {
		name     string
		reader   SessionReader
		required domain.Role
		want     Verdict
	}{
		{"nil reader", nil, domain.RoleAdmin, Redirect},
		{"loading", fixedSession{loading: true, sess: admin}, domain.RoleAdmin, Wait},
		{"no session", fixedSession{}, domain.RoleAdmin, Redirect},
		{"admin on admin", fixedSession{sess: admin}, domain.RoleAdmin, Permit},
		{"admin on client", fixedSession{sess: admin}, domain.RoleClient, Redirect},
		{"client on client", fixedSession{sess: client}, domain.RoleClient, Permit},
		{"client on admin", fixedSession{sess: client}, domain.RoleAdmin, Redirect},
		{"credential without role", fixedSession{sess: domain.Session{Credential: "x"}}, domain.RoleClient, Redirect},
		{"role without credential", fixedSession{sess: domain.Session{Role: domain.RoleAdmin}}, domain.RoleAdmin, Redirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.reader, tt.required))
		})
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, AdminHomePath, HomeFor(domain.RoleAdmin))
	assert.Equal(t, ClientHomePath, HomeFor(domain.RoleClient))
	assert.Equal(t, LoginPath, HomeFor("guest"))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "wait", Wait.String())
	assert.Equal(t, "permit", Permit.String())
	assert.Equal(t, "redirect", Redirect.String())
}
