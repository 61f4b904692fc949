package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
)

func (a *API) GetCart(c *gin.Context) {
	user := currentUser(c)

	cart, err := a.Cart.Get(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (a *API) AddToCart(c *gin.Context) {
	user := currentUser(c)

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bookID, err := bson.ObjectIDFromHex(req.BookID)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			global.NewErrorBody(http.StatusBadRequest, "Invalid book id", c.Request.URL.Path, nil))
		return
	}

	item, err := a.Cart.Add(c.Request.Context(), user.ID, bookID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateCartItem(c *gin.Context) {
	user := currentUser(c)

	itemID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := a.Cart.Update(c.Request.Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (a *API) RemoveCartItem(c *gin.Context) {
	user := currentUser(c)

	itemID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.Cart.Remove(c.Request.Context(), user.ID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *API) ClearCart(c *gin.Context) {
	user := currentUser(c)

	if err := a.Cart.Clear(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
