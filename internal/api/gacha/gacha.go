package gacha

import (
	"errors"
	"net/http"

	"gacha_backend/internal/api"
	"gacha_backend/internal/converter"
	"gacha_backend/internal/middleware"
	"gacha_backend/internal/model"
	"gacha_backend/internal/service"
	"gacha_backend/internal/view"
	"gacha_backend/pkg/req"
	"gacha_backend/pkg/resp"

	"github.com/rs/zerolog/log"
)

const insufficientFundsMessage = "not enough gold"

type HandlerDeps struct {
	Serv         service.GachaService
	Renderer     api.Renderer
	SecureCookie bool
}

type Handler struct {
	serv         service.GachaService
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

// Index показывает баланс и профиль
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	account, err := h.serv.Overview(r.Context(), accountID)
	if errors.Is(err, model.ErrAccountNotFound) {
		middleware.RejectSession(w, r, h.secureCookie)
		return
	}
	if err != nil {
		api.InternalError(w, r, err, "overview failed")
		return
	}

	api.RenderPage(w, r, h.renderer, http.StatusOK, view.PageIndex, converter.ToIndexPage(account))
}

// Draw проводит розыгрыш из поля формы type (one или ten)
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	form, err := req.Form(r, "type")
	if err != nil {
		resp.WriteText(w, http.StatusBadRequest, "invalid draw request")
		return
	}

	result, drawErr := h.serv.Draw(r.Context(), accountID, form["type"])
	switch {
	case errors.Is(drawErr, model.ErrInvalidDrawKind):
		resp.WriteText(w, http.StatusBadRequest, "invalid draw request")
		return
	case errors.Is(drawErr, model.ErrAccountNotFound):
		middleware.RejectSession(w, r, h.secureCookie)
		return
	case drawErr != nil && !errors.Is(drawErr, model.ErrInsufficientFunds):
		api.InternalError(w, r, drawErr, "draw failed")
		return
	}

	account, err := h.serv.Overview(r.Context(), accountID)
	if errors.Is(err, model.ErrAccountNotFound) {
		middleware.RejectSession(w, r, h.secureCookie)
		return
	}
	if err != nil {
		api.InternalError(w, r, err, "overview failed")
		return
	}

	page := converter.ToIndexPage(account)
	if drawErr != nil {
		log.Ctx(r.Context()).Debug().Int("account_id", accountID).Msg("draw rejected: insufficient funds")
		page.Message = insufficientFundsMessage
	} else {
		page.Result = converter.ToDrawView(result)
	}

	api.RenderPage(w, r, h.renderer, http.StatusOK, view.PageIndex, page)
}

// EarnGold начисляет золото и возвращает на главную
func (h *Handler) EarnGold(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	if err := h.serv.Earn(r.Context(), accountID); err != nil {
		api.InternalError(w, r, err, "earn failed")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
