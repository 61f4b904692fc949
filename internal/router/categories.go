package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/mongo"
)

func (a *API) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := a.Categories.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := make([]models.CategoryDTO, 0, len(categories))
	for i := range categories {
		count, err := a.Books.CountByCategory(ctx, categories[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		dtos = append(dtos, categories[i].ToDTO(count))
	}

	c.JSON(http.StatusOK, dtos)
}

func (a *API) GetCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	category, err := a.Categories.GetByID(ctx, id)
	if err != nil {
		respondError(c, mapCategoryErr(err))
		return
	}

	count, err := a.Books.CountByCategory(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category.ToDTO(count))
}

func (a *API) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	category.SetTimestamps()

	if err := a.Categories.Insert(c.Request.Context(), category); err != nil {
		respondError(c, mapCategoryWriteErr(err))
		return
	}

	c.JSON(http.StatusCreated, category.ToDTO(0))
}

func (a *API) UpdateCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	category, err := a.Categories.GetByID(ctx, id)
	if err != nil {
		respondError(c, mapCategoryErr(err))
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.SetTimestamps()

	if err := a.Categories.Update(ctx, category); err != nil {
		respondError(c, mapCategoryWriteErr(err))
		return
	}

	count, err := a.Books.CountByCategory(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category.ToDTO(count))
}

func (a *API) DeleteCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	count, err := a.Books.CountByCategory(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if count > 0 {
		respondError(c, global.BadRequest("Cannot delete a category that still has books"))
		return
	}

	if err := a.Categories.Delete(ctx, id); err != nil {
		respondError(c, mapCategoryErr(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func mapCategoryWriteErr(err error) error {
	if errors.Is(err, mongo.ErrDuplicateCategory) {
		return global.BadRequest("A category with this name already exists")
	}
	return err
}
