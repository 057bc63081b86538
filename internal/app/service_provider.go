package app

import (
	"context"

	authAPI "gacha_backend/internal/api/auth"
	gachaAPI "gacha_backend/internal/api/gacha"
	profileAPI "gacha_backend/internal/api/profile"
	statsAPI "gacha_backend/internal/api/stats"
	"gacha_backend/internal/config"
	"gacha_backend/internal/config/env"
	"gacha_backend/internal/middleware"
	"gacha_backend/internal/repository"
	"gacha_backend/internal/repository/account_repo"
	"gacha_backend/internal/repository/draw_stats_repo"
	"gacha_backend/internal/repository/session_repo"
	"gacha_backend/internal/service"
	"gacha_backend/internal/service/auth"
	"gacha_backend/internal/service/gacha"
	"gacha_backend/internal/service/profile"
	"gacha_backend/internal/view"
	"gacha_backend/pkg/sampler"
	"gacha_backend/pkg/upload"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Config
	logCfg     config.LogConfig
	sessionCfg config.SessionConfig
	uploadCfg  config.UploadConfig

	// Account bits
	accountRepo repository.AccountRepository
	uploadStore *upload.Store
	profileServ service.ProfileService
	profileHand *profileAPI.Handler

	// Session bits
	sessionRepo repository.SessionRepository
	authServ    service.AuthService
	authHand    *authAPI.Handler

	// Gacha bits
	gachaCfg  config.GachaConfig
	sampler   *sampler.Sampler
	statsRepo repository.DrawStatsRepository
	gachaServ service.GachaService
	gachaHand *gachaAPI.Handler
	statsHand *statsAPI.Handler

	// Pages
	renderer *view.Renderer

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) UploadCfg() config.UploadConfig {
	if sp.uploadCfg == nil {
		cfg, err := env.NewUploadConfig()
		if err != nil {
			panic("failed to get upload config: " + err.Error())
		}
		sp.uploadCfg = cfg
	}
	return sp.uploadCfg
}

func (sp *ServiceProvider) AccountRepo(ctx context.Context) repository.AccountRepository {
	if sp.accountRepo == nil {
		sp.accountRepo = account_repo.NewAccountRepository(sp.DBClient(ctx))
	}
	return sp.accountRepo
}

func (sp *ServiceProvider) UploadStore() *upload.Store {
	if sp.uploadStore == nil {
		sp.uploadStore = upload.NewStore(sp.UploadCfg().Dir(), sp.UploadCfg().MaxBytes())
	}
	return sp.uploadStore
}

func (sp *ServiceProvider) ProfileService(ctx context.Context) service.ProfileService {
	if sp.profileServ == nil {
		sp.profileServ = profile.NewService(sp.TXManager(ctx), sp.AccountRepo(ctx), sp.UploadStore())
	}
	return sp.profileServ
}

func (sp *ServiceProvider) ProfileHandler(ctx context.Context) *profileAPI.Handler {
	if sp.profileHand == nil {
		sp.profileHand = profileAPI.NewHandler(profileAPI.HandlerDeps{
			Serv:           sp.ProfileService(ctx),
			Renderer:       sp.Renderer(),
			SecureCookie:   sp.SessionCfg().SecureCookie(),
			MaxAvatarBytes: sp.UploadCfg().MaxBytes(),
		})
	}
	return sp.profileHand
}

func (sp *ServiceProvider) SessionRepo(ctx context.Context) repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.DBClient(ctx))
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(
			sp.TXManager(ctx),
			sp.AccountRepo(ctx),
			sp.SessionRepo(ctx),
			sp.SessionCfg(),
			sp.UploadCfg().DefaultAvatar(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:         sp.AuthService(ctx),
			Renderer:     sp.Renderer(),
			SecureCookie: sp.SessionCfg().SecureCookie(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) GachaCfg() config.GachaConfig {
	if sp.gachaCfg == nil {
		cfg, err := env.NewGachaConfigFromYAML(env.GachaConfigPath())
		if err != nil {
			panic("failed to get gacha config: " + err.Error())
		}
		sp.gachaCfg = cfg
	}
	return sp.gachaCfg
}

func (sp *ServiceProvider) Sampler() *sampler.Sampler {
	if sp.sampler == nil {
		sp.sampler = sampler.NewSampler(sp.GachaCfg().Table(), nil)
	}
	return sp.sampler
}

func (sp *ServiceProvider) DrawStatsRepository() repository.DrawStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = draw_stats_repo.NewDrawStatsRepository(sp.GachaCfg().Table())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) GachaService(ctx context.Context) service.GachaService {
	if sp.gachaServ == nil {
		sp.gachaServ = gacha.NewService(sp.TXManager(ctx), sp.Sampler(), sp.AccountRepo(ctx), sp.DrawStatsRepository())
	}
	return sp.gachaServ
}

func (sp *ServiceProvider) GachaHandler(ctx context.Context) *gachaAPI.Handler {
	if sp.gachaHand == nil {
		sp.gachaHand = gachaAPI.NewHandler(gachaAPI.HandlerDeps{
			Serv:         sp.GachaService(ctx),
			Renderer:     sp.Renderer(),
			SecureCookie: sp.SessionCfg().SecureCookie(),
		})
	}
	return sp.gachaHand
}

func (sp *ServiceProvider) StatsHandler(ctx context.Context) *statsAPI.Handler {
	if sp.statsHand == nil {
		sp.statsHand = statsAPI.NewHandler(statsAPI.HandlerDeps{Serv: sp.GachaService(ctx)})
	}
	return sp.statsHand
}

func (sp *ServiceProvider) Renderer() *view.Renderer {
	if sp.renderer == nil {
		r, err := view.New()
		if err != nil {
			panic("failed to parse templates: " + err.Error())
		}
		sp.renderer = r
	}
	return sp.renderer
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = newRouter(routes{
			gacha:     sp.GachaHandler(ctx),
			auth:      sp.AuthHandler(ctx),
			profile:   sp.ProfileHandler(ctx),
			stats:     sp.StatsHandler(ctx),
			gate:      middleware.SessionGate(sp.AuthService(ctx), sp.SessionCfg().SecureCookie()),
			logger:    log.Logger,
			uploadDir: sp.UploadCfg().Dir(),
		})
	}

	return sp.router
}
