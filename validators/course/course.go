package courseValidator

import (
	"lms/middleware"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseRequest is the validated body for course create/update
type CourseRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	TotalChapters int    `json:"total_chapters" validate:"required,min=1"`
}

// ChapterRequest is the validated body for chapter creation
type ChapterRequest struct {
	Title         string `json:"title" validate:"required"`
	VideoURL      string `json:"video_url"`
	ImageURL      string `json:"image_url"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"sequence_order" validate:"required,min=1"`
}

// AssignStudentsRequest is the validated body for bulk student assignment
type AssignStudentsRequest struct {
	StudentIDs []uint `json:"student_ids" validate:"required,min=1"`
}

// CourseBody validates the course create/update payload
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing fields!", nil)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ChapterBody validates the chapter creation payload
func ChapterBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing fields!", nil)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// AssignStudentsBody validates the bulk assignment payload
func AssignStudentsBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignStudentsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No students provided!", nil)
		}

		c.Locals("validatedAssignStudents", reqData)
		return c.Next()
	}
}

// IDParam validates a positive integer route parameter and stores it
// in Locals under the given key
func IDParam(param, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}

		c.Locals(localsKey, id)
		return c.Next()
	}
}
