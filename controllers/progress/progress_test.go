package progressController_test

import (
	"fmt"
	"net/http"
	"testing"

	"lms/models"
	"lms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completePath(chapterID uint) string {
	return fmt.Sprintf("/progress/%d/complete", chapterID)
}

func TestCompleteChapterSequential(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 3)
	chapters := testutil.CreateChapters(t, db, course.ID, 3)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	// Chapter 2 is locked until chapter 1 is done
	resp := testutil.Request(t, app, http.MethodPost, completePath(chapters[1].ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&models.Progress{}).Where("student_id = ?", student.ID).Count(&count)
	assert.Zero(t, count, "a rejected completion persists nothing")

	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[1].ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Chapter 3 is still gated on chapter 2, not on course order of calls
	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[2].ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCompleteChapterDuplicate(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 2)
	chapters := testutil.CreateChapters(t, db, course.ID, 2)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	resp := testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Completing the same chapter again is an error, not a no-op
	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	db.Model(&models.Progress{}).
		Where("student_id = ? AND chapter_id = ?", student.ID, chapters[0].ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteChapterGuards(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 2)
	chapters := testutil.CreateChapters(t, db, course.ID, 2)
	token := testutil.Token(t, student)

	resp := testutil.Request(t, app, http.MethodPost, completePath(9999), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Not enrolled yet
	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Mentors have no business completing chapters
	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), testutil.Token(t, mentor), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompletionUpdatesEnrollment(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 2)
	chapters := testutil.CreateChapters(t, db, course.ID, 2)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	resp := testutil.Request(t, app, http.MethodPost, completePath(chapters[0].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("course_id = ? AND student_id = ?", course.ID, student.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentInProgress, enrollment.Status)
	assert.Equal(t, 1, enrollment.CompletedChapters)
	assert.Equal(t, 2, enrollment.TotalChapters)
	assert.Equal(t, 50, enrollment.Percentage)
	assert.Nil(t, enrollment.CompletedAt)

	resp = testutil.Request(t, app, http.MethodPost, completePath(chapters[1].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.Where("course_id = ? AND student_id = ?", course.ID, student.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.Percentage)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestMyProgressPercentages(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	token := testutil.Token(t, student)

	type progressBody struct {
		CompletedChapters int `json:"completedChapters"`
		TotalChapters     int `json:"totalChapters"`
		Percentage        int `json:"percentage"`
	}

	fetch := func(courseID uint) progressBody {
		var body progressBody
		resp := testutil.Request(t, app, http.MethodGet, fmt.Sprintf("/progress/my?course_id=%d", courseID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testutil.DecodeData(t, resp, &body)
		return body
	}

	// 2 of 5 chapters is floored to 40
	five := testutil.CreateCourse(t, db, mentor.ID, "Five", 5)
	fiveChapters := testutil.CreateChapters(t, db, five.ID, 5)
	testutil.Enroll(t, db, five.ID, student.ID)
	for _, ch := range fiveChapters[:2] {
		resp := testutil.Request(t, app, http.MethodPost, completePath(ch.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	body := fetch(five.ID)
	assert.Equal(t, 2, body.CompletedChapters)
	assert.Equal(t, 5, body.TotalChapters)
	assert.Equal(t, 40, body.Percentage)

	// 1 of 3 is floored to 33, never rounded up
	three := testutil.CreateCourse(t, db, mentor.ID, "Three", 3)
	threeChapters := testutil.CreateChapters(t, db, three.ID, 3)
	testutil.Enroll(t, db, three.ID, student.ID)
	resp := testutil.Request(t, app, http.MethodPost, completePath(threeChapters[0].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = fetch(three.ID)
	assert.Equal(t, 33, body.Percentage)

	// A course with no chapters yet reports zero percent
	empty := testutil.CreateCourse(t, db, mentor.ID, "Empty", 4)
	testutil.Enroll(t, db, empty.ID, student.ID)
	body = fetch(empty.ID)
	assert.Zero(t, body.TotalChapters)
	assert.Zero(t, body.Percentage)
}

func TestMyProgressRequiresCourseID(t *testing.T) {
	app, db := testutil.SetupApp(t)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	token := testutil.Token(t, student)

	resp := testutil.Request(t, app, http.MethodGet, "/progress/my", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodGet, "/progress/my?course_id=9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompletedChaptersOrdering(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 3)
	chapters := testutil.CreateChapters(t, db, course.ID, 3)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	for _, ch := range chapters {
		resp := testutil.Request(t, app, http.MethodPost, completePath(ch.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var ids []uint
	resp := testutil.Request(t, app, http.MethodGet, "/progress/completed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, resp, &ids)
	require.Len(t, ids, 3)
	assert.Equal(t, []uint{chapters[0].ID, chapters[1].ID, chapters[2].ID}, ids)
}

func TestCertificateGating(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 2)
	chapters := testutil.CreateChapters(t, db, course.ID, 2)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	path := fmt.Sprintf("/certificates/%d", course.ID)

	resp := testutil.Request(t, app, http.MethodGet, "/certificates/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.Request(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	for _, ch := range chapters {
		resp = testutil.Request(t, app, http.MethodPost, completePath(ch.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var cert struct {
		CertificateNumber string `json:"certificate_number"`
		CourseID          uint   `json:"course_id"`
		CourseTitle       string `json:"course_title"`
	}
	resp = testutil.Request(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeData(t, resp, &cert)
	assert.NotEmpty(t, cert.CertificateNumber)
	assert.Equal(t, course.ID, cert.CourseID)
	assert.Equal(t, "Go Basics", cert.CourseTitle)
}

func TestCertificateDeclaredTarget(t *testing.T) {
	app, db := testutil.SetupApp(t)
	mentor := testutil.CreateUser(t, db, "Morgan", "morgan@example.com", "secret123", models.RoleMentor, true)
	student := testutil.CreateUser(t, db, "Jamie", "jamie@example.com", "secret123", models.RoleStudent, true)

	// Only 2 of the declared 3 chapters exist. Finishing both is full
	// progress against what is published, but not against the target.
	course := testutil.CreateCourse(t, db, mentor.ID, "Go Basics", 3)
	chapters := testutil.CreateChapters(t, db, course.ID, 2)
	testutil.Enroll(t, db, course.ID, student.ID)
	token := testutil.Token(t, student)

	for _, ch := range chapters {
		resp := testutil.Request(t, app, http.MethodPost, completePath(ch.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := testutil.Request(t, app, http.MethodGet, fmt.Sprintf("/certificates/%d", course.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
