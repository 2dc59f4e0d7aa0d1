// Package testutil bootstraps a full application instance over an
// in-memory database for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	mentorRoutes "lms/routers/mentorRoutes"
	progressRoutes "lms/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupApp builds a fiber app with all routes over a fresh in-memory
// sqlite database and points the global database instance at it
func SetupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:            "0",
		JWTKey:          "test-secret",
		TokenTTLMinutes: 60,
		SaltRound:       bcrypt.MinCost,
		AllowOrigins:    "*",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	mentorRoutes.SetupMentorRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	return app, db
}

// CreateUser inserts a user with a bcrypt-hashed password
func CreateUser(t *testing.T, db *gorm.DB, name, email, password, role string, approved bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Approved: approved,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// Token mints a signed bearer token for the user
func Token(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// CreateCourse inserts a course owned by the mentor
func CreateCourse(t *testing.T, db *gorm.DB, mentorID uint, title string, totalChapters int) models.Course {
	t.Helper()

	course := models.Course{
		Title:         title,
		Description:   title + " description",
		TotalChapters: totalChapters,
		MentorID:      mentorID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// CreateChapters inserts n chapters with sequence positions 1..n
func CreateChapters(t *testing.T, db *gorm.DB, courseID uint, n int) []models.Chapter {
	t.Helper()

	chapters := make([]models.Chapter, 0, n)
	for i := 1; i <= n; i++ {
		chapter := models.Chapter{
			CourseID:      courseID,
			Title:         fmt.Sprintf("Chapter %d", i),
			SequenceOrder: i,
		}
		if err := db.Create(&chapter).Error; err != nil {
			t.Fatalf("failed to create chapter: %v", err)
		}
		chapters = append(chapters, chapter)
	}
	return chapters
}

// Enroll inserts an enrollment row directly
func Enroll(t *testing.T, db *gorm.DB, courseID, studentID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
		Status:    models.EnrollmentEnrolled,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to create enrollment: %v", err)
	}
	return enrollment
}

// Request performs an HTTP request against the app. A non-nil body is
// JSON-encoded; a non-empty token is sent as a bearer credential.
func Request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// APIResponse is the shared handler response envelope
type APIResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode parses the response envelope
func Decode(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()

	defer resp.Body.Close()
	var out APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

// DecodeData parses the response envelope and unmarshals its data field
func DecodeData(t *testing.T, resp *http.Response, target interface{}) APIResponse {
	t.Helper()

	out := Decode(t, resp)
	if len(out.Data) > 0 && string(out.Data) != "null" {
		if err := json.Unmarshal(out.Data, target); err != nil {
			t.Fatalf("failed to decode response data: %v", err)
		}
	}
	return out
}
