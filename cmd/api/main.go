package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/infra/database"
	"github.com/caioaot/atelier-backend/internal/infra/http/handlers"
	"github.com/caioaot/atelier-backend/internal/infra/http/middleware"
	"github.com/caioaot/atelier-backend/internal/infra/integration/listmonk"
	"github.com/caioaot/atelier-backend/internal/infra/integration/msgraph"
	"github.com/caioaot/atelier-backend/internal/infra/integration/recaptcha"
	"github.com/caioaot/atelier-backend/internal/infra/mail"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
	"github.com/caioaot/atelier-backend/internal/infra/tokencache"
	"github.com/caioaot/atelier-backend/internal/logger"
	"github.com/caioaot/atelier-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.LevelError, "text").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// RabbitMQ is optional: without it contact submissions are stored but no
	// notification email goes out.
	var (
		rabbitConn *amqp091.Connection
		producer   *queue.Producer
	)
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("rabbitmq connection failed", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Ch)

		if cfg.SMTP.Complete() {
			sender, err := mail.NewSender(cfg.SMTP)
			if err != nil {
				log.Error("mail templates failed to parse", "error", err)
				os.Exit(1)
			}
			worker := queue.NewWorker(rabbitMQ.Ch, sender, log)
			go func() {
				if err := worker.Start(queue.QueueName); err != nil {
					log.Error("notification worker stopped", "error", err)
				}
			}()
		} else {
			log.Warn("smtp not configured, contact notifications will stay queued")
		}
	} else {
		log.Warn("rabbitmq not configured, contact notifications disabled")
	}

	// Repositories
	projectRepo := database.NewProjectRepository(db)
	testimonialRepo := database.NewTestimonialRepository(db)
	contactRepo := database.NewContactRepository(db)
	subscriberRepo := database.NewSubscriberRepository(db)

	// Gateways
	tokens := tokencache.NewMemory()
	bookingGateway := msgraph.NewClient(cfg.Microsoft, tokens, log)
	newsletterGateway := listmonk.NewClient(cfg.Listmonk, log)
	recaptchaClient := recaptcha.NewClient(cfg.Recaptcha, log)

	// UseCases
	var notifications usecase.NotificationProducer
	if producer != nil {
		notifications = producer
	}
	submitContactUC := usecase.NewSubmitContactUseCase(contactRepo, recaptchaClient, notifications, log)
	subscribeUC := usecase.NewSubscribeNewsletterUseCase(subscriberRepo, newsletterGateway, log)
	unsubscribeUC := usecase.NewUnsubscribeNewsletterUseCase(subscriberRepo, newsletterGateway, log)

	// Handlers
	projectHandler := handlers.NewProjectHandler(projectRepo, log)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialRepo, log)
	contactHandler := handlers.NewContactHandler(submitContactUC, log)
	newsletterHandler := handlers.NewNewsletterHandler(subscribeUC, unsubscribeUC, log)
	bookingHandler := handlers.NewBookingHandler(bookingGateway, log)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", projectHandler.List)
		r.Get("/projects/category/{category}", projectHandler.ListByCategory)
		r.Get("/projects/technology/{technology}", projectHandler.ListByTechnology)
		r.Get("/projects/{slug}", projectHandler.Show)

		r.Get("/testimonials", testimonialHandler.List)
		r.Get("/testimonials/featured", testimonialHandler.Featured)

		r.Post("/contact", contactHandler.Submit)

		r.Post("/newsletter/subscribe", newsletterHandler.HandleSubscribe)
		r.Post("/newsletter/unsubscribe", newsletterHandler.HandleUnsubscribe)

		r.Get("/bookings/availability", bookingHandler.Availability)
		r.Post("/bookings/schedule", bookingHandler.Schedule)
	})

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Info("server listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
