// cmd/worker/main.go
package main

import (
	"context"
	"log"

	"github.com/quartzline/b2bmailer-backend/internal/config"
	"github.com/quartzline/b2bmailer-backend/internal/db"
	"github.com/quartzline/b2bmailer-backend/internal/logger"
	"github.com/quartzline/b2bmailer-backend/internal/mailer"
	"github.com/quartzline/b2bmailer-backend/internal/queue"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

// The worker consumes campaign dispatch jobs from the broker so long-running
// sends do not tie up API server request handlers.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}
	slogger := logger.New(cfg.LogFormat)

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to DB: ", err)
	}
	defer conn.Close()

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

	amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL, slogger)
	if err != nil {
		log.Fatal("failed to connect to AMQP: ", err)
	}
	defer amqpQueue.Close()

	dispatchService := &service.DispatchService{
		CampaignRepo:   &repository.CampaignRepository{DB: conn},
		TemplateRepo:   &repository.TemplateRepository{DB: conn},
		SubscriberRepo: &repository.SubscriberRepository{DB: conn},
		Sender:         sender,
		Compiler:       render.New(),
		Log:            slogger,
		BaseURL:        cfg.AppBaseURL,
		BatchSize:      cfg.DispatchBatchSize,
	}

	// One job at a time: Dispatch already fans out per batch internally.
	jobChan := make(chan int)
	worker := service.NewWorker(dispatchService, jobChan, slogger)
	go worker.Start(context.Background())

	if err := amqpQueue.Subscribe(queue.TopicCampaignDispatch, func(payload any) error {
		id, err := queue.CampaignID(payload)
		if err != nil {
			slogger.Error("dropping dispatch job", "err", err)
			return nil
		}
		jobChan <- id
		return nil
	}); err != nil {
		log.Fatal("failed to subscribe: ", err)
	}

	log.Println("Worker running, waiting for dispatch jobs...")
	select {}
}
