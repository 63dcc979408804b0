package mockstore

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
)

// NewRouter creates and configures the Gin router for the mock backend. The
// token maps to a single buyer; cart and order routes are scoped to them.
func NewRouter(store *Store, token, buyerID string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(authMiddleware(token))

	router.GET("/products/display/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.AllProducts())
	})

	router.GET("/products/display/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.SearchProducts(c.Query("searchTerm")))
	})

	router.GET("/products/:id", func(c *gin.Context) {
		product, ok := store.Product(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	})

	router.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.ProductsByStore(c.Query("storeId")))
	})

	router.GET("/stores/:id", func(c *gin.Context) {
		st, ok := store.StoreByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "store not found"})
			return
		}
		c.JSON(http.StatusOK, st)
	})

	router.GET("/buyer/:id", func(c *gin.Context) {
		buyer, ok := store.Buyer(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "buyer not found"})
			return
		}
		c.JSON(http.StatusOK, buyer)
	})

	router.PUT("/buyer/:id/favorite-stores", func(c *gin.Context) {
		var req struct {
			StoreID string `json:"storeId" binding:"required"`
			IsAdd   bool   `json:"isAdd"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if err := store.UpdateFavoriteStore(c.Param("id"), req.StoreID, req.IsAdd); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.PUT("/buyer/:id/location", func(c *gin.Context) {
		var req struct {
			Longitude float64 `json:"longitude"`
			Latitude  float64 `json:"latitude"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if err := store.UpdateLocation(c.Param("id"), req.Longitude, req.Latitude); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Cart(buyerID))
	})

	router.POST("/cart/items", func(c *gin.Context) {
		var req struct {
			ItemID string `json:"itemId" binding:"required"`
			Amount int    `json:"amount" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		store.AddCartItem(buyerID, req.ItemID, req.Amount)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.PUT("/cart/items", func(c *gin.Context) {
		var req struct {
			ItemID string `json:"itemId" binding:"required"`
			Amount int    `json:"amount" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if err := store.UpdateCartItem(buyerID, req.ItemID, req.Amount); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.DELETE("/cart/items/:itemId", func(c *gin.Context) {
		if err := store.RemoveCartItem(buyerID, c.Param("itemId")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.DELETE("/cart", func(c *gin.Context) {
		store.ClearCart(buyerID)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/orders", func(c *gin.Context) {
		var draft domain.OrderDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, store.CreateOrder(draft))
	})

	router.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Orders(buyerID))
	})

	router.GET("/orders/:id", func(c *gin.Context) {
		order, ok := store.Order(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	})

	router.PUT("/orders/:id/cancel", func(c *gin.Context) {
		order, err := store.CancelOrder(c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	})

	return router
}

// authMiddleware rejects requests without the expected bearer token.
func authMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || got != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
