package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.CustomRecovery(recoverPanic))
	router.Use(auth.SecurityHeaders())

	requireToken := cfg.AuthMiddleware.RequireToken()

	health := NewHealthController(cfg.Store, cfg.Version)
	users := NewUsersController(cfg.Users)
	books := NewBooksController(cfg.Books)
	borrows := NewBorrowsController(cfg.Borrows)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	userRoutes := api.Group("/users")
	userRoutes.POST("/register", users.Register)
	userRoutes.POST("/login", users.Login)
	userRoutes.GET("", requireToken, users.ListUsers)
	userRoutes.GET("/:id", requireToken, users.GetUser)
	userRoutes.PUT("/:id", requireToken, users.UpdateUser)
	userRoutes.DELETE("/:id", requireToken, users.DeleteUser)

	bookRoutes := api.Group("/books")
	bookRoutes.POST("/add", requireToken, books.AddBook)
	bookRoutes.GET("/allBooks", books.GetAllBooks)
	bookRoutes.GET("/:id", requireToken, books.GetBook)
	bookRoutes.PUT("/:id", requireToken, books.UpdateBook)
	bookRoutes.DELETE("/:id", requireToken, books.DeleteBook)

	borrowRoutes := api.Group("/borrow", requireToken)
	borrowRoutes.POST("", borrows.BorrowBook)
	borrowRoutes.GET("", borrows.ListBorrows)
	borrowRoutes.POST("/return", borrows.ReturnBook)

	router.NoRoute(func(c *gin.Context) {
		respondFailure(c, http.StatusNotFound, "route not found")
	})

	return router
}
