package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/cache"
	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

type productCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug"`
	Price       float64  `json:"price"`
	OriginPrice float64  `json:"origin_price"`
	OnSale      bool     `json:"on_sale"`
	IsNew       bool     `json:"is_new"`
	Quantity    int      `json:"quantity"`
	Rate        float64  `json:"rate"`
	Sizes       []string `json:"sizes"`
	Category    string   `json:"category" binding:"required"`
	Image       string   `json:"image"`
}

type productUpdateRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Price       *float64 `json:"price"`
	OriginPrice *float64 `json:"origin_price"`
	OnSale      *bool    `json:"on_sale"`
	IsNew       *bool    `json:"is_new"`
	Quantity    *int     `json:"quantity"`
	Rate        *float64 `json:"rate"`
	Sizes       []string `json:"sizes"`
	Image       *string  `json:"image"`
	IsActive    *bool    `json:"is_active"`
}

/*
GET /admin/products
- full catalog for the admin panel, inactive included, paginated
*/
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var total int64
		if err := db.WithContext(ctx).Model(&models.Product{}).
			Where("is_deleted = ?", false).Count(&total).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var products []models.Product
		err = db.WithContext(ctx).
			Where("is_deleted = ?", false).
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

/*
POST /admin/products
*/
func CreateProduct(db *gorm.DB, rdb *goredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product name and category are required"})
			return
		}

		if err := validateSalePricing(req.Price, req.OnSale, req.OriginPrice); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err := db.WithContext(ctx).Where("name = ?", strings.TrimSpace(req.Category)).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		slug := strings.TrimSpace(req.Slug)
		if slug == "" {
			slug = slugify(req.Name)
		}

		product := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Slug:        slug,
			Price:       req.Price,
			OriginPrice: req.OriginPrice,
			OnSale:      req.OnSale,
			IsNew:       req.IsNew,
			Quantity:    req.Quantity,
			Rate:        req.Rate,
			Sizes:       models.StringList(req.Sizes),
			CategoryID:  category.ID,
			Image:       strings.TrimSpace(req.Image),
			IsActive:    true,
		}

		if err := db.WithContext(ctx).Create(&product).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := cache.InvalidateProductList(ctx, rdb); err != nil {
			log.Printf("[%s] cache invalidation failed: %v", route, err)
		}

		log.Printf("[%s] product %d created", route, product.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Product added successfully!", "productId": product.ID})
	}
}

/*
PUT /admin/products/:id
*/
func UpdateProduct(db *gorm.DB, rdb *goredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if req.Name != nil {
			product.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			product.Slug = strings.TrimSpace(*req.Slug)
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.OriginPrice != nil {
			product.OriginPrice = *req.OriginPrice
		}
		if req.OnSale != nil {
			product.OnSale = *req.OnSale
		}
		if req.IsNew != nil {
			product.IsNew = *req.IsNew
		}
		if req.Quantity != nil {
			product.Quantity = *req.Quantity
		}
		if req.Rate != nil {
			product.Rate = *req.Rate
		}
		if req.Sizes != nil {
			product.Sizes = models.StringList(req.Sizes)
		}
		if req.Image != nil {
			product.Image = strings.TrimSpace(*req.Image)
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}

		if err := validateSalePricing(product.Price, product.OnSale, product.OriginPrice); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.WithContext(ctx).Save(&product).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := cache.InvalidateProductList(ctx, rdb); err != nil {
			log.Printf("[%s] cache invalidation failed: %v", route, err)
		}

		c.JSON(http.StatusOK, product)
	}
}

/*
DELETE /admin/products/:id
- soft delete so historical order snapshots keep a resolvable reference
*/
func DeleteProduct(db *gorm.DB, rdb *goredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res := db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"is_active":  false,
				"deleted_at": &now,
			})
		if res.Error != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if err := cache.InvalidateProductList(ctx, rdb); err != nil {
			log.Printf("[%s] cache invalidation failed: %v", route, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
