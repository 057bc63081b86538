package profile

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
)

// formOverhead - запас на текстовые поля multipart-формы сверх размера файла
const formOverhead = 1 << 20

type HandlerDeps struct {
	Serv           service.ProfileService
	Renderer       api.Renderer
	SecureCookie   bool
	MaxAvatarBytes int64
}

type Handler struct {
	serv           service.ProfileService
	renderer       api.Renderer
	secureCookie   bool
	maxAvatarBytes int64
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:           deps.Serv,
		renderer:       deps.Renderer,
		secureCookie:   deps.SecureCookie,
		maxAvatarBytes: deps.MaxAvatarBytes,
	}
}

func (h *Handler) MyPage(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	account, err := h.serv.Get(r.Context(), accountID)
	if errors.Is(err, model.ErrAccountNotFound) {
		middleware.RejectSession(w, r, h.secureCookie)
		return
	}
	if err != nil {
		api.InternalError(w, r, err, "get profile failed")
		return
	}

	api.RenderPage(w, r, h.renderer, http.StatusOK, view.PageMyPage, converter.ToMyPage(account))
}

// UpdateMyPage сохраняет ник, описание и, если передан, новый аватар
func (h *Handler) UpdateMyPage(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	form, err := req.MultipartForm(w, r, h.maxAvatarBytes+formOverhead, "nickname", "intro")
	if err != nil {
		// Тело обрезано по лимиту - значит, слишком большой файл
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, req.ErrMissingField):
			resp.WriteText(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &tooLarge):
			resp.WriteText(w, http.StatusBadRequest, model.ErrInvalidAvatar.Error())
		default:
			resp.WriteText(w, http.StatusBadRequest, "invalid form")
		}
		return
	}

	upd := model.ProfileUpdate{
		Nickname: form["nickname"],
		Bio:      form["intro"],
	}

	filename, content, err := req.File(r, "profile_image", h.maxAvatarBytes)
	if err != nil {
		resp.WriteText(w, http.StatusBadRequest, model.ErrInvalidAvatar.Error())
		return
	}
	if filename != "" {
		upd.Avatar = &model.AvatarUpload{
			Filename: filename,
			Size:     int64(len(content)),
			Content:  content,
		}
	}

	err = h.serv.Update(r.Context(), accountID, upd)
	switch {
	case errors.Is(err, model.ErrInvalidAvatar):
		resp.WriteText(w, http.StatusBadRequest, model.ErrInvalidAvatar.Error())
		return
	case errors.Is(err, model.ErrAccountNotFound):
		middleware.RejectSession(w, r, h.secureCookie)
		return
	case err != nil:
		api.InternalError(w, r, err, "update profile failed")
		return
	}

	http.Redirect(w, r, "/mypage", http.StatusSeeOther)
}
