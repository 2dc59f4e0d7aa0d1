package progressController

import (
	"lms/database"
	"lms/models"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the nightly reconciliation of the
// denormalized enrollment progress cache
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running nightly progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 3 AM")
}

// ReconcileEnrollmentProgress recomputes every live enrollment's cached
// counters from the authoritative progress and chapter row counts
func ReconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	corrected := 0
	for i := range enrollments {
		before := enrollments[i]
		if err := RecomputeEnrollment(db, &enrollments[i]); err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error reconciling enrollment %d: %v", enrollments[i].ID, err)
			continue
		}
		if before.CompletedChapters != enrollments[i].CompletedChapters ||
			before.TotalChapters != enrollments[i].TotalChapters ||
			before.Percentage != enrollments[i].Percentage {
			corrected++
		}
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciled %d enrollments, corrected %d", len(enrollments), corrected)
}
