package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/smart-maple/roster-calendar/backend/internal/config"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/smart-maple/roster-calendar/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mqChannel   *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mqCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mqChannel:   mqCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/profile", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetProfile)
			r.Patch("/language", h.UpdateProfileLanguage)
		})

		// 日历的所有操作都在会话状态上进行，由 calendarSession 负责装载和落盘
		r.Route("/calendar", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.calendarSession)

			r.Get("/", h.GetCalendar)
			r.Post("/staff-selection", h.SelectStaff)
			r.Post("/visible-range", h.VisibleRange)
			r.Post("/multi-select/toggle", h.ToggleMultiSelect)

			r.Route("/events", func(r chi.Router) {
				r.Post("/bulk-delete", h.DeleteSelectedEvents)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/move", h.MoveEvent)
					r.Post("/click", h.ClickEvent)
					r.Delete("/", h.DeleteEvent)
				})
			})
			r.Post("/detail/close", h.CloseDetail)

			r.Post("/custom-assignments", h.CreateCustomAssignment)

			r.Route("/staffs", func(r chi.Router) {
				r.Post("/", h.AddStaff)
				r.Delete("/{id}", h.RemoveStaff)
			})

			r.Post("/suggestions/apply", h.ApplySuggestion)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", h.SaveRequest)
				// 只有排班负责人和管理员能够流转请求状态
				r.With(h.RequiredRole([]domain.Role{domain.RolePlanner, domain.RoleAdmin})).Patch("/{id}/status", h.SetRequestStatus)
			})
			r.Route("/request", func(r chi.Router) {
				r.Post("/time", h.ApplyRequestTime)
				r.Post("/mail", h.ComposeRequestMail)
			})
		})
	})
}
