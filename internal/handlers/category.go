package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

type categoryCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	DataItem string `json:"data_item"`
	Icon     string `json:"icon" binding:"required"`
	Sale     int    `json:"sale"`
}

/*
GET /categories
- storefront listing, active only
*/
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var categories []models.Category
		err := db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("id DESC").
			Find(&categories).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, categories)
	}
}

/*
POST /admin/categories
- duplicate names rejected
- data_item falls back to the slugified name
*/
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/categories"
		defer handlePanic(c, route)

		var req categoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and icon are required"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and icon are required"})
			return
		}

		dataItem := strings.TrimSpace(req.DataItem)
		if dataItem == "" {
			dataItem = slugify(name)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var count int64
		if err := db.WithContext(ctx).Model(&models.Category{}).
			Where("name = ?", name).Count(&count).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}

		category := models.Category{
			Name:     name,
			DataItem: dataItem,
			Icon:     strings.TrimSpace(req.Icon),
			Sale:     req.Sale,
			IsActive: true,
		}

		if err := db.WithContext(ctx).Create(&category).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Category added successfully!",
			"data":    category,
		})
	}
}

/*
DELETE /admin/categories/:id
*/
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/categories/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err := db.WithContext(ctx).First(&category, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := db.WithContext(ctx).Delete(&category).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!"})
	}
}
