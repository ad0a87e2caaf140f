package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auth-panel/internal/tokeninfo"
	"auth-panel/internal/validation"
)

const (
	msgLoginFailed    = "Não foi possível entrar. Verifique suas credenciais e tente novamente."
	msgRegisterFailed = "Não foi possível criar a conta. Tente novamente."
	msgRefreshFailed  = "Não foi possível atualizar seus dados agora."
)

func (h *Handler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginPage(validation.LoginInput{}, c.Query("from"), nil, ""))
}

func (h *Handler) submitLogin(c *gin.Context) {
	in := validation.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	from := c.PostForm("from")

	creds, errs := validation.Login(in)
	if errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "login.html", loginPage(in, from, errs, ""))
		return
	}

	if err := h.sessions.Login(c.Request.Context(), creds); err != nil {
		h.requestLog(c).WithField("username", creds.Username).Warnf("login failed: %v", err)
		c.HTML(http.StatusOK, "login.html", loginPage(in, from, nil, msgLoginFailed))
		return
	}

	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func loginPage(in validation.LoginInput, from string, errs validation.Errors, formError string) gin.H {
	return gin.H{
		"Title":     "Entrar",
		"Username":  in.Username,
		"From":      from,
		"Errors":    errs,
		"FormError": formError,
	}
}

func (h *Handler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", registerPage(validation.RegisterInput{}, nil, ""))
}

func (h *Handler) submitRegister(c *gin.Context) {
	in := validation.RegisterInput{
		LoginInput: validation.LoginInput{
			Username: c.PostForm("username"),
			Password: c.PostForm("password"),
		},
		FullName:        c.PostForm("full_name"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}

	reg, errs := validation.Register(in)
	if errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "register.html", registerPage(in, errs, ""))
		return
	}

	if err := h.sessions.Register(c.Request.Context(), reg); err != nil {
		h.requestLog(c).WithField("username", reg.Username).Warnf("registration failed: %v", err)
		c.HTML(http.StatusOK, "register.html", registerPage(in, nil, msgRegisterFailed))
		return
	}

	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func registerPage(in validation.RegisterInput, errs validation.Errors, formError string) gin.H {
	return gin.H{
		"Title":     "Criar conta",
		"Username":  in.Username,
		"FullName":  in.FullName,
		"Errors":    errs,
		"FormError": formError,
	}
}

func (h *Handler) showDashboard(c *gin.Context) {
	h.renderDashboard(c, "")
}

func (h *Handler) renderDashboard(c *gin.Context, refreshError string) {
	st := stateFrom(c, h.sessions)
	data := gin.H{
		"Title":        "Painel",
		"User":         st.User,
		"RefreshError": refreshError,
	}
	if info, err := tokeninfo.Inspect(st.Token); err == nil {
		data["Token"] = info
		data["TokenExpired"] = info.Expired(h.now())
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (h *Handler) refreshDashboard(c *gin.Context) {
	if err := h.sessions.Refresh(c.Request.Context()); err != nil {
		h.requestLog(c).Warnf("refresh failed: %v", err)
		st := h.sessions.Snapshot()
		if !st.Authenticated {
			c.Redirect(http.StatusSeeOther, LoginPath)
			return
		}
		c.Set(stateKey, st)
		h.renderDashboard(c, msgRefreshFailed)
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.requestLog(c).Warnf("logout: %v", err)
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
}
