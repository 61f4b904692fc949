package router

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/openshelf/bookstore-api/pkg/commerce"
	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/logger"
	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/mongo"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

const maxPageSize = 100

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	if size < 1 {
		size = 10
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (a *API) ListBooks(c *gin.Context) {
	page, size := pageParams(c)

	sortField := c.DefaultQuery("sortBy", "title")
	switch sortField {
	case "title", "author", "price_cents", "created_at":
	default:
		sortField = "title"
	}
	sortDir := 1
	if c.DefaultQuery("sortDir", "asc") == "desc" {
		sortDir = -1
	}

	books, total, err := a.Books.List(c.Request.Context(), page, size, sortField, sortDir)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a.pagedBooks(c.Request.Context(), books, page, size, total))
}

func (a *API) SearchBooks(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest,
			global.NewErrorBody(http.StatusBadRequest, "keyword query parameter is required", c.Request.URL.Path, nil))
		return
	}
	page, size := pageParams(c)

	books, total, err := a.Books.Search(c.Request.Context(), keyword, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a.pagedBooks(c.Request.Context(), books, page, size, total))
}

func (a *API) ListBooksByCategory(c *gin.Context) {
	categoryID, ok := parseObjectID(c, "categoryId")
	if !ok {
		return
	}
	page, size := pageParams(c)

	if _, err := a.Categories.GetByID(c.Request.Context(), categoryID); err != nil {
		respondError(c, mapCategoryErr(err))
		return
	}

	books, total, err := a.Books.ListByCategory(c.Request.Context(), categoryID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a.pagedBooks(c.Request.Context(), books, page, size, total))
}

// GetBook serves a single book, cache first.
func (a *API) GetBook(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	book, err := redis.GetBookFromCache(ctx, id.Hex())
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, a.bookDTO(ctx, book))
		return
	}
	if !errors.Is(err, redisclient.Nil) {
		logger.L().Warn("book cache read failed", zap.Error(err))
	}

	book, err = a.Books.GetBook(ctx, id)
	if err != nil {
		respondError(c, mapBookErr(err))
		return
	}

	if err := redis.CacheBook(ctx, book); err != nil {
		logger.L().Warn("book cache write failed", zap.Error(err))
	}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, a.bookDTO(ctx, book))
}

func (a *API) CreateBook(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := a.bookFromRequest(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.Books.Insert(c.Request.Context(), book); err != nil {
		respondError(c, mapBookWriteErr(err))
		return
	}

	c.JSON(http.StatusCreated, a.bookDTO(c.Request.Context(), book))
}

func (a *API) UpdateBook(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	book, err := a.Books.GetBook(ctx, id)
	if err != nil {
		respondError(c, mapBookErr(err))
		return
	}

	updated, err := a.bookFromRequest(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	updated.ID = book.ID
	updated.CreatedAt = book.CreatedAt

	if err := a.Books.Update(ctx, updated); err != nil {
		respondError(c, mapBookWriteErr(err))
		return
	}

	if err := redis.InvalidateBook(ctx, id.Hex()); err != nil {
		logger.L().Warn("book cache invalidation failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, a.bookDTO(ctx, updated))
}

func (a *API) DeleteBook(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.Books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, mapBookErr(err))
		return
	}

	if err := redis.InvalidateBook(c.Request.Context(), id.Hex()); err != nil {
		logger.L().Warn("book cache invalidation failed", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// bookFromRequest builds the entity, resolving and checking the category
// reference when one is given.
func (a *API) bookFromRequest(c *gin.Context, req *models.BookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		PriceCents:    models.DecimalToCents(req.Price),
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if book.PriceCents <= 0 {
		return nil, global.BadRequest("Price must be greater than zero")
	}

	if req.CategoryID != "" {
		categoryID, err := bson.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			return nil, global.BadRequest("Invalid category id")
		}
		if _, err := a.Categories.GetByID(c.Request.Context(), categoryID); err != nil {
			return nil, mapCategoryErr(err)
		}
		book.CategoryID = &categoryID
	}

	book.SetTimestamps()
	return book, nil
}

func (a *API) pagedBooks(ctx context.Context, books []models.Book, page, size int, total int64) models.PagedBooks {
	names := a.categoryNames(ctx, books)

	content := make([]models.BookDTO, 0, len(books))
	for i := range books {
		name := ""
		if books[i].CategoryID != nil {
			name = names[*books[i].CategoryID]
		}
		content = append(content, books[i].ToDTO(name))
	}

	totalPages := total / int64(size)
	if total%int64(size) != 0 {
		totalPages++
	}
	return models.PagedBooks{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// categoryNames resolves each distinct category referenced by the page once.
func (a *API) categoryNames(ctx context.Context, books []models.Book) map[bson.ObjectID]string {
	names := make(map[bson.ObjectID]string)
	for i := range books {
		id := books[i].CategoryID
		if id == nil {
			continue
		}
		if _, seen := names[*id]; seen {
			continue
		}
		category, err := a.Categories.GetByID(ctx, *id)
		if err != nil {
			names[*id] = ""
			continue
		}
		names[*id] = category.Name
	}
	return names
}

func (a *API) bookDTO(ctx context.Context, book *models.Book) models.BookDTO {
	name := ""
	if book.CategoryID != nil {
		if category, err := a.Categories.GetByID(ctx, *book.CategoryID); err == nil {
			name = category.Name
		}
	}
	return book.ToDTO(name)
}

func mapBookErr(err error) error {
	if errors.Is(err, commerce.ErrBookNotFound) {
		return global.NotFound("Book not found")
	}
	return err
}

func mapBookWriteErr(err error) error {
	if errors.Is(err, mongo.ErrDuplicateISBN) {
		return global.BadRequest("A book with this ISBN already exists")
	}
	return err
}

func mapCategoryErr(err error) error {
	if errors.Is(err, mongo.ErrCategoryNotFound) {
		return global.NotFound("Category not found")
	}
	return err
}
