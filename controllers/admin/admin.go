package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ListUsers returns every user for the admin dashboard
func ListUsers(c *fiber.Ctx) error {
	type userRow struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Approved bool   `json:"approved"`
	}

	var users []userRow
	if err := database.Database.Db.Model(&models.User{}).
		Select("id, name, email, role, approved").
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Scan(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// ApproveUser sets a user's approval flag and notifies them by mail
func ApproveUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("approved", true).Error; err != nil {
		log.Printf("Error approving user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve user!", nil)
	}

	go utils.SendApprovalEmail(user.Email, user.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User approved!", nil)
}

// RejectUser clears a user's approval flag
func RejectUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("approved", false).Error; err != nil {
		log.Printf("Error rejecting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User rejected!", nil)
}

// DeleteUser removes a user
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted!", nil)
}

// ChangeRole updates a user's role
func ChangeRole(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	reqData := new(struct {
		Role string `json:"role" validate:"required,oneof=student mentor admin"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing role!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		log.Printf("Error changing role for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated!", nil)
}

// DisapproveAllMentors clears the approval flag on every mentor
func DisapproveAllMentors(c *fiber.Ctx) error {
	if err := database.Database.Db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleMentor, false).
		Update("approved", false).Error; err != nil {
		log.Printf("Error disapproving mentors: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to disapprove mentors!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All mentors set to not approved!", nil)
}
