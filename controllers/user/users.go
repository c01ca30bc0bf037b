package usercontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/auth"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// GET /api/user/me
func GetMe(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	c.JSON(http.StatusOK, user)
}

// PUT /api/user/update
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Location != nil {
			updates["location"] = *input.Location
		}
		if input.Bio != nil {
			updates["bio"] = *input.Bio
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}

// GET /api/user/refresh
// RefreshToken re-issues a bearer token for the resolved identity.
func RefreshToken(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	token, err := auth.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "image", "role", "verified", "banned", "rating",
				"total_purchased", "total_sold", "created_at").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
