package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

type attributeCreateRequest struct {
	CategoryID     uint   `json:"category_id"`
	AttributeName  string `json:"attribute_name"`
	AttributeValue string `json:"attribute_value"`
}

type attributeResponse struct {
	ID             uint      `json:"id"`
	CategoryName   string    `json:"categoryName"`
	AttributeName  string    `json:"attributeName"`
	AttributeValue string    `json:"attributeValue"`
	CreatedAt      time.Time `json:"createdAt"`
}

/*
POST /admin/attributes
*/
func CreateAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/attributes"
		defer handlePanic(c, route)

		var req attributeCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if req.CategoryID == 0 || strings.TrimSpace(req.AttributeName) == "" || strings.TrimSpace(req.AttributeValue) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing required fields: category_id, attribute_name, attribute_value",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		attribute := models.Attribute{
			CategoryID:     req.CategoryID,
			AttributeName:  strings.TrimSpace(req.AttributeName),
			AttributeValue: strings.TrimSpace(req.AttributeValue),
		}

		if err := db.WithContext(ctx).Create(&attribute).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error. Could not add attribute.")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"id":      attribute.ID,
			"message": "Attribute added successfully",
		})
	}
}

/*
GET /attributes
- joined with the category name for the admin table view
*/
func GetAttributes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /attributes"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var attributes []attributeResponse
		err := db.WithContext(ctx).
			Table("attributes").
			Select("attributes.id, categories.name AS category_name, attributes.attribute_name, attributes.attribute_value, attributes.created_at").
			Joins("JOIN categories ON categories.id = attributes.category_id").
			Order("attributes.id DESC").
			Scan(&attributes).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error. Could not retrieve attributes.")
			return
		}

		c.JSON(http.StatusOK, attributes)
	}
}

/*
DELETE /admin/attributes/:id
*/
func DeleteAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/attributes/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res := db.WithContext(ctx).Delete(&models.Attribute{}, id)
		if res.Error != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error. Could not delete attribute.")
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "attribute not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attribute deleted successfully"})
	}
}
