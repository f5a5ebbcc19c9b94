package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/roi-leads/internal/infra/database"
	"github.com/xavierca1/roi-leads/internal/infra/http/handlers"
	apimiddleware "github.com/xavierca1/roi-leads/internal/infra/http/middleware"
	"github.com/xavierca1/roi-leads/internal/infra/mail"
	"github.com/xavierca1/roi-leads/internal/infra/queue"
	"github.com/xavierca1/roi-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Queue + mail are optional: without them the service runs in
	// capture-only mode.
	var producer usecase.LeadProducerInterface
	var rabbitConn *amqp.Connection

	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"),
			os.Getenv("RABBITMQ_PASS"),
			host,
			os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		var mailSender *mail.EmailSender
		if os.Getenv("MAIL_HOST") != "" {
			mailSender = mail.NewEmailSender(
				os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			)
		}

		// 3. Worker (consumes lead-captured events, alerts sales)
		var alerter queue.LeadAlertSender
		if mailSender != nil {
			alerter = mailSender
		}
		worker := queue.NewWorker(rabbitMQ.Ch, alerter, os.Getenv("SALES_ALERT_TO"))
		go worker.Start(queue.QueueName)
	} else {
		log.Println("RABBITMQ_HOST not set, lead events disabled")
	}

	// 4. UseCases
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, producer)
	listUC := usecase.NewListLeadsUseCase(leadRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(submitUC, listUC, leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(apimiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ROI Calculator API is running"))
	})
	r.Post("/api/leads", leadHandler.SubmitLead)
	r.Get("/api/leads", leadHandler.ListLeads)
	r.Get("/api/leads/{email}", leadHandler.GetLeadByEmail)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 ROI leads API running on port %s", port)
	http.ListenAndServe(":"+port, r)
}
