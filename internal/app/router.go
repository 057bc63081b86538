package app

import (
	"net/http"
	"strings"

	authAPI "gacha_backend/internal/api/auth"
	gachaAPI "gacha_backend/internal/api/gacha"
	profileAPI "gacha_backend/internal/api/profile"
	statsAPI "gacha_backend/internal/api/stats"
	"gacha_backend/internal/converter"
	"gacha_backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type routes struct {
	gacha     *gachaAPI.Handler
	auth      *authAPI.Handler
	profile   *profileAPI.Handler
	stats     *statsAPI.Handler
	gate      func(http.Handler) http.Handler
	logger    zerolog.Logger
	uploadDir string
}

func newRouter(rt routes) chi.Router {
	r := chi.NewRouter()

	r.Use(chimid.RequestID)
	r.Use(middleware.AccessLog(rt.logger))
	r.Use(chimid.Recoverer)

	// Статистика читается сторонними дашбордами
	r.With(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	})).Get("/stats", rt.stats.Stats)

	// Аватары
	r.Handle(converter.AvatarPrefix+"*", http.StripPrefix(converter.AvatarPrefix, noListing(http.FileServer(http.Dir(rt.uploadDir)))))

	// Вход и регистрация
	r.Get("/register", rt.auth.RegisterPage)
	r.Post("/register", rt.auth.Register)
	r.Get("/login", rt.auth.LoginPage)
	r.Post("/login", rt.auth.Login)
	r.Get("/logout", rt.auth.Logout)

	// Страницы только для вошедших
	r.Group(func(rr chi.Router) {
		rr.Use(rt.gate)

		rr.Get("/", rt.gacha.Index)
		rr.Post("/", rt.gacha.Draw)
		rr.Post("/earn_gold", rt.gacha.EarnGold)
		rr.Get("/mypage", rt.profile.MyPage)
		rr.Post("/mypage", rt.profile.UpdateMyPage)
	})

	return r
}

// noListing не отдает содержимое каталогов
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
