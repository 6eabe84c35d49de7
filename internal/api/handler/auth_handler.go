package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/service"
	"github.com/shreebalaji/traders-console/internal/core/view"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Root sends visitors to the login page.
func (h *Console) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, service.LoginPath)
}

// LoginPage renders GET /login.
func (h *Console) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", Page{Title: "Login", Data: loginForm{}})
}

// Login handles POST /login: authenticate with the backend, record the
// session, land on the role's home.
func (h *Console) Login(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dest, err := view.SubmitLogin(r.ctx, r.api.Auth(), r.store, form.Email, form.Password)
	if err != nil {
		metrics.SessionEventsTotal.WithLabelValues("login_error").Inc()
		h.logFailure(c, err, "login failed")
		form.Password = ""
		return c.Render(http.StatusUnauthorized, "login.html", Page{
			Title: "Login",
			Error: actionMessage(err, view.MsgLoginFailed),
			Data:  form,
		})
	}

	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	h.workspaces.Drop(r.device)
	return c.Redirect(http.StatusSeeOther, dest)
}

// SignupPage renders GET /signup.
func (h *Console) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", Page{Title: "Sign Up", Data: view.SignupForm{Role: "client"}})
}

// Signup handles POST /signup.
func (h *Console) Signup(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	var form view.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if form.Role == "" {
		form.Role = "client"
	}
	if err := c.Validate(&form); err != nil {
		form.Password = ""
		return c.Render(http.StatusUnprocessableEntity, "signup.html", Page{Title: "Sign Up", Error: err.Error(), Data: form})
	}

	dest, err := view.SubmitSignup(r.ctx, r.api.Auth(), r.store, form)
	if err != nil {
		h.logFailure(c, err, "signup failed")
		form.Password = ""
		return c.Render(http.StatusBadRequest, "signup.html", Page{
			Title: "Sign Up",
			Error: actionMessage(err, view.MsgSignupFailed),
			Data:  form,
		})
	}
	if dest != service.LoginPath {
		metrics.SessionEventsTotal.WithLabelValues("login").Inc()
		h.workspaces.Drop(r.device)
	}
	return c.Redirect(http.StatusSeeOther, dest)
}

// Logout handles POST /logout. The device's view state goes with the
// session. If the durable record could not be cleared the session would
// come back on the next request, so the user is told instead of being
// redirected as if it worked.
func (h *Console) Logout(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	h.workspaces.Drop(r.device)
	if err := r.store.Logout(r.ctx); err != nil {
		metrics.SessionEventsTotal.WithLabelValues("logout_error").Inc()
		h.logFailure(c, err, "logout: durable record not cleared")
		return c.Render(http.StatusInternalServerError, "login.html", Page{
			Title: "Login",
			Error: view.MsgLogoutFailed,
			Data:  loginForm{},
		})
	}
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	return c.Redirect(http.StatusSeeOther, service.LoginPath)
}
