package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/cache"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/config"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/repository"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/utils"
)

type SimulationRunner interface {
	Run(ctx context.Context, params domain.SimulationParameters, trigger domain.SimulationTrigger) (*domain.SimulationRun, error)
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	runner     SimulationRunner
	runCache   *cache.RunCache // 可以为 nil

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, runner SimulationRunner, runCache *cache.RunCache) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := utils.RegisterCustomValidations(validate); err != nil {
		return nil, err
	}

	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := utils.RegisterCustomTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		runner:     runner,
		runCache:   runCache,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/simulate", h.Simulate)
		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", h.GetSimulationRuns)
			r.Get("/{id}", h.GetSimulationRun)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", h.CreateDriver)
			r.Get("/", h.GetAllDrivers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.driver)
				r.Get("/", h.GetDriver)
				r.Patch("/", h.UpdateDriver)
				r.Delete("/", h.DeleteDriver)
			})
		})

		r.Route("/routes", func(r chi.Router) {
			r.Post("/", h.CreateRoute)
			r.Get("/", h.GetAllRoutes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.route)
				r.Get("/", h.GetRoute)
				r.Patch("/", h.UpdateRoute)
				r.Delete("/", h.DeleteRoute)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/", h.GetAllOrders)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.order)
				r.Get("/", h.GetOrder)
				r.Patch("/", h.UpdateOrder)
				r.Delete("/", h.DeleteOrder)
			})
		})
	})
}
