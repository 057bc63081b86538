// Package api содержит общие для HTTP-хендлеров части.
package api

import (
	"net/http"

	"gacha_backend/pkg/resp"

	"github.com/rs/zerolog/log"
)

// Renderer отрисовывает HTML-страницу
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

// InternalError логирует причину и отдает пользователю обезличенный ответ
func InternalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	resp.WriteText(w, http.StatusInternalServerError, "internal server error")
}

// RenderPage отрисовывает страницу, ошибка шаблона превращается в 500
func RenderPage(w http.ResponseWriter, r *http.Request, renderer Renderer, status int, page string, data any) {
	if err := renderer.Render(w, status, page, data); err != nil {
		InternalError(w, r, err, "render page")
	}
}
