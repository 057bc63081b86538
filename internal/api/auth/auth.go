package auth

import (
	"errors"
	"net/http"
	"slices"

	"gacha_backend/internal/api"
	"gacha_backend/internal/api/dto"
	"gacha_backend/internal/middleware"
	"gacha_backend/internal/model"
	"gacha_backend/internal/service"
	"gacha_backend/internal/view"
	"gacha_backend/pkg/req"
	"gacha_backend/pkg/resp"

	"github.com/rs/zerolog/log"
)

type HandlerDeps struct {
	Serv         service.AuthService
	Renderer     api.Renderer
	SecureCookie bool
}

type Handler struct {
	serv         service.AuthService
	renderer     api.Renderer
	secureCookie bool
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:         deps.Serv,
		renderer:     deps.Renderer,
		secureCookie: deps.SecureCookie,
	}
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	api.RenderPage(w, r, h.renderer, http.StatusOK, view.PageRegister, dto.AuthPage{})
}

// Register создаёт аккаунт и отправляет на страницу входа
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	// Пустой никнейм допустим: сервис подставит имя пользователя
	form, ok := requiredForm(w, r, []string{"username", "password", "nickname"}, "nickname")
	if !ok {
		return
	}

	_, err := h.serv.Register(r.Context(), &model.NewAccount{
		Username: form["username"],
		Password: form["password"],
		Nickname: form["nickname"],
	})
	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		resp.WriteText(w, http.StatusConflict, "username already exists")
		return
	case errors.Is(err, model.ErrPasswordTooLong):
		resp.WriteText(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Ctx(r.Context()).Error().Err(err).Msg("register failed")
		resp.WriteText(w, http.StatusInternalServerError, "registration error: "+err.Error())
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	api.RenderPage(w, r, h.renderer, http.StatusOK, view.PageLogin, dto.AuthPage{})
}

// Login открывает сессию и кладет подписанный токен в cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form, ok := requiredForm(w, r, []string{"username", "password"})
	if !ok {
		return
	}

	data, err := h.serv.Login(r.Context(), form["username"], form["password"])
	if errors.Is(err, model.ErrInvalidCredentials) {
		resp.WriteText(w, http.StatusUnauthorized, "login failed: wrong username or password")
		return
	}
	if err != nil {
		api.InternalError(w, r, err, "login failed")
		return
	}

	middleware.SetSessionCookie(w, data.SessionToken, data.ExpiresAt, h.secureCookie)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout закрывает сессию. Cookie стирается в любом случае
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.serv.Logout(r.Context(), c.Value); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("logout failed")
		}
	}

	middleware.ClearSessionCookie(w, h.secureCookie)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// requiredForm читает поля формы; отсутствующее поле - 400, пустое - тоже, если его нет в allowEmpty
func requiredForm(w http.ResponseWriter, r *http.Request, fields []string, allowEmpty ...string) (map[string]string, bool) {
	form, err := req.Form(r, fields...)
	if err != nil {
		if errors.Is(err, req.ErrMissingField) {
			resp.WriteText(w, http.StatusBadRequest, err.Error())
		} else {
			resp.WriteText(w, http.StatusBadRequest, "invalid form")
		}
		return nil, false
	}

	for _, field := range fields {
		if form[field] == "" && !slices.Contains(allowEmpty, field) {
			resp.WriteText(w, http.StatusBadRequest, "missing field: "+field)
			return nil, false
		}
	}
	return form, true
}
