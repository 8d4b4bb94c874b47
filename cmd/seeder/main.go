//cmd/seeder/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quartzline/b2bmailer-backend/internal/block"
	"github.com/quartzline/b2bmailer-backend/internal/config"
	"github.com/quartzline/b2bmailer-backend/internal/db"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/preset"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

// Seeds the built-in template presets and a handful of sample subscribers
// into an empty database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to DB: ", err)
	}
	defer conn.Close()

	templateRepo := &repository.TemplateRepository{DB: conn}
	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	compiler := render.New()

	for _, p := range preset.All() {
		content, err := block.EncodeDocument(p.Blocks)
		if err != nil {
			log.Fatalf("failed to encode preset %s: %v", p.Key, err)
		}
		t := &model.Template{
			Name:        p.Name,
			Subject:     p.Subject,
			Content:     json.RawMessage(content),
			HTMLContent: compiler.Compile(p.Blocks, p.Name),
		}
		if err := templateRepo.Create(t); err != nil {
			log.Fatalf("failed to seed template %s: %v", p.Key, err)
		}
		fmt.Printf("Seeded template: %s (id=%d)\n", p.Name, t.ID)
	}

	samples := []model.Subscriber{
		{Email: "alice@example.com", Name: "Alice Smith"},
		{Email: "bob@example.com", Name: "Bob Jones"},
		{Email: "carol@example.com", Name: ""},
	}
	for i := range samples {
		if err := subscriberRepo.Create(&samples[i]); err != nil {
			log.Fatalf("failed to seed subscriber %s: %v", samples[i].Email, err)
		}
		fmt.Printf("Seeded subscriber: %s\n", samples[i].Email)
	}

	fmt.Println("Database seeding completed successfully!")
}
