package stats

import (
	"net/http"

	"gacha_backend/internal/converter"
	"gacha_backend/internal/service"
	"gacha_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GachaService
}

type Handler struct {
	serv service.GachaService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Stats отдает статистику розыгрышей с момента запуска
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}
