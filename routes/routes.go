package routes

import (
	"bookstore/controllers"
	"bookstore/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth         *controllers.AuthController
	Books        *controllers.BookController
	Cart         *controllers.CartController
	Orders       *controllers.OrderController
	Sales        *controllers.SalesController
	BookRequests *controllers.BookRequestController
	Health       *controllers.HealthController
}

func RegisterRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	r.GET("/", h.Health.Alive)
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/sign-in", h.Auth.SignIn)

		api.GET("/get-all-books", h.Books.GetAllBooks)
		api.GET("/get-recent-books", h.Books.GetRecentBooks)
		api.GET("/get-book-by-id/:id", h.Books.GetBookByID)
		api.GET("/search", h.Books.Search)

		protected := api.Group("/")
		protected.Use(auth)
		{
			protected.POST("/logout", h.Auth.Logout)
			protected.GET("/get-user-info", h.Auth.GetUserInfo)
			protected.PUT("/update-address", h.Auth.UpdateAddress)

			protected.PUT("/add-to-cart", h.Cart.AddToCart)
			protected.PUT("/remove-from-cart/:bookid", h.Cart.RemoveFromCart)
			protected.GET("/get-cart-books", h.Cart.GetCart)
			protected.PUT("/add-to-favourite", h.Cart.AddFavourite)
			protected.PUT("/remove-from-favourite", h.Cart.RemoveFavourite)
			protected.GET("/get-favourites-books", h.Cart.GetFavourites)

			protected.POST("/create-checkout-session", h.Orders.CreateCheckoutSession)
			protected.POST("/place-order", h.Orders.PlaceOrder)
			protected.GET("/get-order-history", h.Orders.GetOrderHistory)
			protected.POST("/send-invoice", h.Orders.SendInvoice)
			protected.GET("/sales-report", h.Sales.SalesReport)

			protected.POST("/request-book", h.BookRequests.RequestBook)
			protected.GET("/user-requests", h.BookRequests.UserRequests)

			admin := protected.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/add-book", h.Books.AddBook)
				admin.PUT("/update-book/:id", h.Books.UpdateBook)
				admin.DELETE("/delete-book/:id", h.Books.DeleteBook)

				admin.GET("/get-all-orders", h.Orders.GetAllOrders)
				admin.PUT("/update-status/:id", h.Orders.UpdateStatus)

				admin.GET("/admin/requests", h.BookRequests.AllRequests)
				admin.PATCH("/admin/request/:id", h.BookRequests.UpdateRequestStatus)
			}
		}
	}
}
