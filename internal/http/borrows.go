package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BorrowsController struct {
	borrows BorrowManager
}

func NewBorrowsController(borrows BorrowManager) *BorrowsController {
	return &BorrowsController{borrows: borrows}
}

func (controller *BorrowsController) BorrowBook(c *gin.Context) {
	var req borrowRequest
	if !bindJSON(c, &req) {
		return
	}

	borrow, err := controller.borrows.BorrowBook(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "book borrowed successfully", borrow)
}

func (controller *BorrowsController) ListBorrows(c *gin.Context) {
	result, err := controller.borrows.ListBorrows(c.Request.Context(), parsePage(c))
	if err != nil {
		respondListError(c, err)
		return
	}
	respondPage(c, result)
}

func (controller *BorrowsController) ReturnBook(c *gin.Context) {
	var req borrowRequest
	if !bindJSON(c, &req) {
		return
	}

	borrow, err := controller.borrows.ReturnBook(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "book returned successfully", borrow)
}
