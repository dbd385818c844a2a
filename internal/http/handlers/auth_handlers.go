package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/seller-dashboard/internal/api"
	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

const registeredMessage = "Account created. Please log in."

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sc := SessionFromContext(r.Context()); sc != nil && sc.LoggedIn() {
		seeOther(w, r, "/dashboard")
		return
	}
	page := view.AuthPage{}
	if r.URL.Query().Get("registered") != "" {
		page.Message = registeredMessage
	}
	h.render(w, r, http.StatusOK, "pages/login.html", view.TemplateData{Title: "Log in", Data: page})
}

// LoginHandler exchanges the form credentials for a token and stores it in
// the browser's session.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	page := view.AuthPage{Email: form.Email}

	if errs := h.fieldErrors(form); errs != nil {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "pages/login.html", view.TemplateData{Title: "Log in", Data: page})
		return
	}

	res, err := h.client.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		logx.Warn().Err(err).Str("email", form.Email).Str("remote_ip", ClientIP(r)).Msg("login failed")
		page.Errors = map[string]string{"general": api.UserMessage(err, "Login failed")}
		h.render(w, r, http.StatusUnauthorized, "pages/login.html", view.TemplateData{Title: "Log in", Data: page})
		return
	}

	sc := SessionFromContext(r.Context())
	cur := sc.Current()
	if err := sc.Save(r.Context(), session.Session{
		Token:            res.Token,
		User:             res.User,
		Theme:            cur.Theme,
		SidebarCollapsed: cur.SidebarCollapsed,
	}); err != nil {
		logx.Error().Err(err).Msg("save session")
		h.renderError(w, r, http.StatusInternalServerError, api.GenericServerMessage)
		return
	}
	h.registry.Remove(sc.Key())
	logx.Info().Str("user_id", res.User.ID).Msg("seller logged in")
	seeOther(w, r, "/dashboard")
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/register.html", view.TemplateData{Title: "Create account", Data: view.AuthPage{}})
}

// RegisterHandler creates a seller account and sends the seller to log in.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := registerForm{
		FirstName: strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastName")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
	}
	page := view.AuthPage{Email: form.Email, FirstName: form.FirstName, LastName: form.LastName}

	if errs := h.fieldErrors(form); errs != nil {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "pages/register.html", view.TemplateData{Title: "Create account", Data: page})
		return
	}

	_, err := h.client.Signup(r.Context(), api.SignupInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		logx.Warn().Err(err).Str("email", form.Email).Msg("signup failed")
		page.Errors = map[string]string{"general": api.UserMessage(err, "Registration failed")}
		h.render(w, r, http.StatusBadRequest, "pages/register.html", view.TemplateData{Title: "Create account", Data: page})
		return
	}
	seeOther(w, r, "/login?registered=1")
}

// LogoutHandler forgets the session and its dashboard.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	if sc != nil {
		if err := sc.Clear(r.Context()); err != nil {
			logx.Error().Err(err).Msg("clear session")
		}
		h.registry.Remove(sc.Key())
	}
	seeOther(w, r, "/")
}
