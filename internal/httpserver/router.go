package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	VoucherHandler *VoucherHTTP
	BooksHandler   *BooksHTTP
	Session        *middleware.SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/register", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)

	profile := users.Group("/profile", d.Session.RequireSession)
	profile.GET("", d.AuthHandler.GetProfile)
	profile.PUT("", d.AuthHandler.UpdateProfile)

	books := api.Group("/books")
	books.GET("/search", d.BooksHandler.Search)
	books.GET("/:id", d.BooksHandler.Volume)

	cart := api.Group("/cart", d.Session.RequireSession)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.PUT("/:bookId", d.CartHandler.UpdateItem)
	cart.DELETE("/:bookId", d.CartHandler.RemoveItem)

	vouchers := api.Group("/vouchers", d.Session.RequireSession)
	vouchers.POST("", d.VoucherHandler.Create)
	vouchers.GET("/active", d.VoucherHandler.ListActive)
	vouchers.GET("/expired", d.VoucherHandler.ListExpired)
	vouchers.POST("/validate", d.VoucherHandler.Validate)
	vouchers.POST("/apply", d.VoucherHandler.Apply)
}
