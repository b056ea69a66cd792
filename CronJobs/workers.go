package CronJobs

import (
	"log"
	"time"

	"OdontAll/Models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// SettlementGenerator creates draft settlements for the closed month so
// administrators find them ready to calculate.
type SettlementGenerator struct {
	DB *gorm.DB
}

func NewSettlementGenerator(db *gorm.DB) *SettlementGenerator {
	return &SettlementGenerator{
		DB: db,
	}
}

// StartGenerationCron runs on the first day of each month.
func (sg *SettlementGenerator) StartGenerationCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Month(1).At("03:00").Do(func() {
		log.Println("Running monthly settlement generation...")
		if err := sg.GenerateForPreviousMonth(); err != nil {
			log.Printf("Error generating monthly settlements: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Settlement generation cron job started")

	return scheduler
}

func (sg *SettlementGenerator) GenerateForPreviousMonth() error {
	now := time.Now()
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	periodEnd := firstOfThisMonth.AddDate(0, 0, -1)
	periodStart := time.Date(periodEnd.Year(), periodEnd.Month(), 1, 0, 0, 0, 0, time.Local)

	settlements, created, err := Models.GenerateForPeriod(
		sg.DB,
		periodStart.Format("2006-01-02"),
		periodEnd.Format("2006-01-02"),
		nil,
	)
	if err != nil {
		return err
	}

	log.Printf("Monthly settlement generation: %d drafts created, %d professionals covered", created, len(settlements))
	return nil
}
