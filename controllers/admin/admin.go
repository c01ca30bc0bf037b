package admincontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peermart/marketplace-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AddUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// createUser handles the shared duplicate-check and hashing logic.
// Admin-created accounts skip the verification flow.
func createUser(db *gorm.DB, req AddUserRequest, role models.Role) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, errors.New("email already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Verified:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// POST /api/admin/add-users
// AddUser creates a user or moderator account.
func AddUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role := models.RoleUser
		switch req.Role {
		case "", string(models.RoleUser):
		case string(models.RoleModerator):
			role = models.RoleModerator
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be user or moderator"})
			return
		}

		user, err := createUser(db, req, role)
		if err != nil {
			if err.Error() == "email already in use" {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// POST /api/admin/register
func RegisterAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := createUser(db, req, models.RoleAdmin)
		if err != nil {
			if err.Error() == "email already in use" {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// PUT /api/admin/users/:id/ban
func BanUser(db *gorm.DB) gin.HandlerFunc {
	return setBanned(db, true, "User banned")
}

// PUT /api/admin/users/:id/unban
func UnbanUser(db *gorm.DB) gin.HandlerFunc {
	return setBanned(db, false, "User unbanned")
}

func setBanned(db *gorm.DB, banned bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Model(&models.User{}).
			Where("id = ?", c.Param("id")).
			Update("banned", banned)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// DELETE /api/admin/users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.User{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
