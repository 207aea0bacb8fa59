package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/services"
)

type BooksController struct {
	books BookManager
}

func NewBooksController(books BookManager) *BooksController {
	return &BooksController{books: books}
}

func (controller *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := controller.books.AddBook(c.Request.Context(), services.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		Genre:       req.Genre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "book added successfully", book)
}

// GetAllBooks lists the catalog filtered by the author, genre and year
// query parameters.
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	filter := entities.BookFilter{
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Status:  statusFailed,
				Message: "invalid query parameters",
				Errors:  []services.FieldError{{Field: "year", Message: "year must be an integer"}},
			})
			return
		}
		filter.Year = &year
	}

	result, err := controller.books.ListBooks(c.Request.Context(), filter, parsePage(c))
	if err != nil {
		respondListError(c, err)
		return
	}
	respondPage(c, result)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.books.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	var req updateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := controller.books.UpdateBook(c.Request.Context(), c.Param("id"), entities.BookChanges{
		Title:       req.Title,
		Author:      req.Author,
		PublishYear: req.PublishYear,
		Genre:       req.Genre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "book details updated successfully", book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	if err := controller.books.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "book deleted successfully", nil)
}
