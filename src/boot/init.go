package boot

import (
	"log"
	"time"
	"vrb/src/common"
	"vrb/src/db"
	"vrb/src/lib"
	"vrb/src/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Host{},
		&models.Property{},
		&models.SeasonalRule{},
		&models.DateOverride{},
		&models.PriceCalendarMonth{},
		&models.Booking{},
		&models.PaymentEvent{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the process-local cadence: an hourly sweep that
// releases expired holds and completes finished stays. The sweep takes
// an explicit clock reading; overlapping firings are safe because
// release is idempotent per booking.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			resp := common.ReleaseExpired(time.Now().UTC())
			log.Printf("[sweep] processed=%d released=%d errored=%d completed=%d\n",
				resp.Processed, resp.Released, resp.Errored, resp.Completed)
		}),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}
