package utils

import (
	"lms/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendCompletionWebhook notifies the configured endpoint that a student
// finished a course. Fire and forget; delivery failures are only logged.
func SendCompletionWebhook(studentID, courseID uint, completedChapters int) {
	webhookURL := config.AppConfig.CompletionWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":              "course.completed",
			"student_id":         studentID,
			"course_id":          courseID,
			"completed_chapters": completedChapters,
			"completed_at":       time.Now(),
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Error sending completion webhook for student %d course %d: %v", studentID, courseID, err)
		return
	}

	if resp.StatusCode() >= 300 {
		log.Printf("Completion webhook for student %d course %d answered %d", studentID, courseID, resp.StatusCode())
	}
}
