// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quartzline/b2bmailer-backend/internal/config"
	"github.com/quartzline/b2bmailer-backend/internal/controller"
	"github.com/quartzline/b2bmailer-backend/internal/db"
	"github.com/quartzline/b2bmailer-backend/internal/handler"
	"github.com/quartzline/b2bmailer-backend/internal/logger"
	"github.com/quartzline/b2bmailer-backend/internal/mailer"
	"github.com/quartzline/b2bmailer-backend/internal/queue"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	slogger := logger.New(cfg.LogFormat)

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to DB: ", err)
	}
	defer conn.Close()
	log.Println("✅ Connected to database")

	var sender mailer.EmailSender
	if cfg.PostmarkServerToken != "" {
		sender, err = mailer.NewPostmarkSender(cfg)
		if err != nil {
			log.Fatal("failed to init mailer: ", err)
		}
	} else {
		log.Println("⚠️ No Postmark token configured, using dev sender")
		sender = mailer.NewDevSender(slogger)
	}

	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL, slogger)
		if err != nil {
			log.Fatal("failed to connect to AMQP: ", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		log.Println("⚠️ No AMQP_URL configured, async dispatch runs in-process")
		q = queue.NewInMemoryQueue(slogger)
	}

	campaignRepo := &repository.CampaignRepository{DB: conn}
	templateRepo := &repository.TemplateRepository{DB: conn}
	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	inquiryRepo := &repository.InquiryRepository{DB: conn}

	compiler := render.New()

	templateService := &service.TemplateService{
		TemplateRepo: templateRepo,
		CampaignRepo: campaignRepo,
		Compiler:     compiler,
		Log:          slogger,
	}
	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		TemplateRepo: templateRepo,
	}
	dispatchService := &service.DispatchService{
		CampaignRepo:   campaignRepo,
		TemplateRepo:   templateRepo,
		SubscriberRepo: subscriberRepo,
		Sender:         sender,
		Compiler:       compiler,
		Log:            slogger,
		BaseURL:        cfg.AppBaseURL,
		BatchSize:      cfg.DispatchBatchSize,
	}
	inquiryService := &service.InquiryService{
		InquiryRepo: inquiryRepo,
		Sender:      sender,
		Log:         slogger,
		CompanyName: cfg.CompanyName,
	}

	queue.StartDispatchSubscriber(q, slogger, func(campaignID int) error {
		result := dispatchService.Dispatch(context.Background(), campaignID)
		if !result.Success {
			slogger.Error("queued dispatch failed", "campaign_id", campaignID, "error", result.Error)
		}
		return nil
	})

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		DispatchService: dispatchService,
		TemplateService: templateService,
		Queue:           q,
		Log:             slogger,
	}
	templateHandler := &handler.TemplateHandler{Service: templateService}
	inquiryHandler := &handler.InquiryHandler{Repo: inquiryRepo, Service: inquiryService}
	subscriberHandler := &handler.SubscriberHandler{Repo: subscriberRepo}

	r := chi.NewRouter()

	// Template routes
	r.Post("/templates", templateHandler.CreateTemplate)
	r.Get("/templates", templateHandler.ListTemplates)
	r.Get("/templates/presets", templateHandler.ListPresets)
	r.Post("/templates/preview", templateHandler.PreviewTemplate)
	r.Get("/templates/{id}", templateHandler.GetTemplate)
	r.Put("/templates/{id}", templateHandler.UpdateTemplate)
	r.Delete("/templates/{id}", templateHandler.DeleteTemplate)

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Post("/campaigns/{id}/dispatch", campaignController.DispatchCampaign)
	r.Post("/campaigns/{id}/test-send", campaignController.TestSendCampaign)
	r.Get("/campaigns/{id}/preview", campaignController.PreviewCampaign)

	// Inquiry routes
	r.Post("/inquiries", inquiryHandler.CreateInquiry)
	r.Get("/inquiries", inquiryHandler.ListInquiries)
	r.Get("/inquiries/{id}", inquiryHandler.GetInquiry)
	r.Post("/inquiries/{id}/reply", inquiryHandler.ReplyToInquiry)
	r.Post("/inquiries/{id}/quote", inquiryHandler.SendQuote)

	// Subscriber routes
	r.Post("/subscribers", subscriberHandler.CreateSubscriber)
	r.Get("/subscribers", subscriberHandler.ListSubscribers)
	r.Get("/unsubscribe", subscriberHandler.Unsubscribe)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
