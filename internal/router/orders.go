package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openshelf/bookstore-api/pkg/logger"
	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

func (a *API) PlaceOrder(c *gin.Context) {
	user := currentUser(c)

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := a.Checkout.Checkout(c.Request.Context(), user.ID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	ordersPlacedTotal.Inc()

	// Stock just changed for every purchased title.
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.BookID)
	}
	if err := redis.InvalidateBooks(c.Request.Context(), ids); err != nil {
		logger.L().Warn("failed to invalidate book cache after checkout", zap.Error(err))
	}

	c.JSON(http.StatusCreated, order)
}

func (a *API) ListOrders(c *gin.Context) {
	user := currentUser(c)

	orders, err := a.Checkout.ListOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (a *API) GetOrder(c *gin.Context) {
	user := currentUser(c)

	orderID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	order, err := a.Checkout.GetOrder(c.Request.Context(), user.ID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
