package handlers

import (
	"context"
	"encoding/json"
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

/*
GET /products
- pagination is OPTIONAL: without page+limit the full active listing returns
- the unfiltered listing is served from the Redis cache when possible
*/
func GetProducts(db *gorm.DB, rdb *goredis.Client, cacheTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		category := strings.TrimSpace(c.Query("category"))
		search := strings.TrimSpace(c.Query("search"))
		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		unfiltered := category == "" && search == "" && pageStr == "" && limitStr == ""

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if unfiltered {
			if cached, err := cache.GetProductList(ctx, rdb); err == nil {
				log.Printf("[%s] cache hit", route)
				c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
				return
			}
		}

		query := db.WithContext(ctx).
			Where("is_active = ? AND is_deleted = ?", true, false).
			Order("created_at DESC")

		if category != "" {
			query = query.Where("category_id IN (?)",
				db.Model(&models.Category{}).Select("id").Where("name = ? OR data_item = ?", category, category))
		}
		if search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}

		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			query = query.Offset((page - 1) * limit).Limit(limit)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if unfiltered {
			if data, err := json.Marshal(products); err == nil {
				if err := cache.SetProductList(ctx, rdb, json.RawMessage(data), cacheTTL); err != nil {
					log.Printf("[%s] cache write failed: %v", route, err)
				}
			}
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}
