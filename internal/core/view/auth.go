package view

import (
	"context"
	"fmt"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/core/service"
)

// SessionWriter is the part of the session store the auth forms write to.
type SessionWriter interface {
	Login(ctx context.Context, credential string, role domain.Role) error
}

// SignupForm is the registration form.
type SignupForm struct {
	Name     string `form:"name"     validate:"required"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role"     validate:"required,oneof=admin client"`
}

// SubmitLogin authenticates with the backend and records the session. It
// returns the path to land on. A response without a token, without a user
// or with an unknown role is treated as a failed login.
func SubmitLogin(ctx context.Context, api ports.AuthAPI, sw SessionWriter, email, password string) (string, error) {
	res, err := api.Login(ctx, ports.LoginInput{Email: email, Password: password})
	if err != nil {
		return "", failedWithRemote(MsgLoginFailed, err)
	}
	role, ok := authenticated(res)
	if !ok {
		return "", failed(MsgLoginFailed, domain.ErrMalformedLogin)
	}
	if err := sw.Login(ctx, res.Token, role); err != nil {
		return "", failed(MsgLoginFailed, err)
	}
	return service.HomeFor(role), nil
}

// SubmitSignup registers an account. When the backend answers with a usable
// token and role the user is logged in straight away; otherwise they are
// sent to the login page.
func SubmitSignup(ctx context.Context, api ports.AuthAPI, sw SessionWriter, f SignupForm) (string, error) {
	res, err := api.Register(ctx, ports.RegisterInput{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	})
	if err != nil {
		return "", failedWithRemote(MsgSignupFailed, err)
	}
	role, ok := authenticated(res)
	if !ok {
		return service.LoginPath, nil
	}
	if err := sw.Login(ctx, res.Token, role); err != nil {
		return "", failed(MsgSignupFailed, fmt.Errorf("signup: %w", err))
	}
	return service.HomeFor(role), nil
}

func authenticated(res *ports.AuthResult) (domain.Role, bool) {
	if res == nil || res.Token == "" || res.User == nil {
		return "", false
	}
	return domain.ParseRole(res.User.Role)
}
