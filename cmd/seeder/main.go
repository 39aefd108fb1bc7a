// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nubac/wasender-backend/internal/config"
	"github.com/nubac/wasender-backend/internal/db"
	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/repository"
)

// Seeds a demo tenant with contacts, a campaign, and a due schedule so the
// worker loop can be exercised locally.
func main() {
	uid := flag.String("uid", "demo-user", "tenant id to seed under")
	contacts := flag.Int("contacts", 10, "number of contacts to create")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("failed to connect to MongoDB:", err)
	}

	contactRepo := repository.NewContactRepository(database)
	campaignRepo := repository.NewCampaignRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)

	now := time.Now()
	for i := 0; i < *contacts; i++ {
		c := &model.Contact{
			ID:        uuid.NewString(),
			UID:       *uid,
			Name:      fmt.Sprintf("Contacto %d", i+1),
			PhoneE164: fmt.Sprintf("+5215500%06d", i+1),
			Tags:      []string{"demo"},
			Status:    model.ContactStatusActive,
		}
		// every other contact has a fresh inbound, so both policy branches run
		if i%2 == 0 {
			t := now.Add(-1 * time.Hour)
			c.LastInboundAt = &t
		}
		if err := contactRepo.Create(ctx, c); err != nil {
			log.Fatalf("failed to seed contact %d: %v", i+1, err)
		}
	}
	fmt.Printf("Seeded: %d contacts\n", *contacts)

	campaign := &model.Campaign{
		ID:         uuid.NewString(),
		UID:        *uid,
		Title:      "Campaña demo",
		TeaserText: "Hola, ¿te interesa nuestra promoción? Responde 1 para detalles o 2 para no recibir más.",
		DetailText: "Detalles aquí",
		RejectText: "Listo 👍",
		ErrorText:  "No entendí 😅 Responde 1 o 2.",
	}
	if err := campaignRepo.Create(ctx, campaign); err != nil {
		log.Fatal("failed to seed campaign:", err)
	}
	fmt.Println("Seeded: campaign", campaign.ID)

	schedule := &model.Schedule{
		ID:          uuid.NewString(),
		UID:         *uid,
		CampaignID:  campaign.ID,
		Target:      model.ScheduleTarget{Type: model.TargetTypeAll},
		ScheduledAt: now,
		Status:      model.ScheduleStatusPending,
	}
	if err := scheduleRepo.Create(ctx, schedule); err != nil {
		log.Fatal("failed to seed schedule:", err)
	}
	fmt.Println("Seeded: schedule", schedule.ID)

	fmt.Println("Database seeding completed successfully!")
}
