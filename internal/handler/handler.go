package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/gastrohub-dev/gastrohub/backend/internal/config"
	"github.com/gastrohub-dev/gastrohub/backend/internal/repository"
	"github.com/gastrohub-dev/gastrohub/backend/internal/scheduling"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	checker       *scheduling.Checker
	allocator     *subdomain.Allocator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		checker:       scheduling.NewChecker(repo, repo),
		allocator:     subdomain.NewAllocator(repo),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/businesses", func(r chi.Router) {
			r.Post("/", h.CreateBusiness)
			r.Get("/", h.GetMyBusinesses)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.business)
				r.Get("/", h.GetBusiness)
				r.Patch("/", h.UpdateBusiness)
				r.Route("/staff", func(r chi.Router) {
					r.Post("/", h.CreateStaffMember)
					r.Get("/", h.GetStaffMembers)
					r.Patch("/{staffID}", h.UpdateStaffMember)
				})
				r.Route("/absences", func(r chi.Router) {
					r.Post("/", h.CreateAbsence)
					r.Get("/", h.GetAbsences)
					r.Patch("/{absenceID}/status", h.UpdateAbsenceStatus)
				})
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Get("/", h.GetShifts)
			r.Post("/conflicts/check", h.CheckShiftConflicts)
			r.Patch("/{id}", h.RescheduleShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Route("/subdomains", func(r chi.Router) {
			r.Post("/validate", h.ValidateSubdomain)
			r.Post("/reserve", h.ReserveSubdomain)
		})

		r.Route("/configurations", func(r chi.Router) {
			r.Post("/", h.CreateConfiguration)
			r.Get("/", h.GetMyConfigurations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.configuration)
				r.Get("/", h.GetConfiguration)
				r.Post("/publish", h.PublishConfiguration)
				r.Post("/archive", h.ArchiveConfiguration)
			})
		})
	})
}
