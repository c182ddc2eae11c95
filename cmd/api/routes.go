package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/navyap013/bookhub/internal/interface/http/handler"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// registerRoutes 注册全部路由
// 路由分三层：公开接口、登录接口（RequireAuth）、管理接口（RequireAuth+RequireAdmin）
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	ebookHandler *handler.EBookHandler,
	reviewHandler *handler.ReviewHandler,
	forumHandler *handler.ForumHandler,
	exchangeHandler *handler.ExchangeHandler,
	searchHandler *handler.SearchHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（http://localhost:8080/swagger/index.html）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 个人信息
		v1.GET("/profile", authMiddleware.RequireAuth(), userHandler.GetProfile)
		v1.PUT("/profile", authMiddleware.RequireAuth(), userHandler.UpdateProfile)

		// 图书模块（公开；列表接口可选登录，登录后搜索记录归属到用户）
		books := v1.Group("/books")
		{
			books.GET("", authMiddleware.OptionalAuth(), catalogHandler.ListBooks)
			books.GET("/curated", catalogHandler.CuratedBooks)
			books.GET("/:id", catalogHandler.GetBook)
			books.GET("/:id/reviews", reviewHandler.ListBookReviews)
		}

		// 教材模块
		studentBooks := v1.Group("/student-books")
		{
			studentBooks.GET("", authMiddleware.OptionalAuth(), catalogHandler.ListStudentBooks)
			studentBooks.GET("/:id", catalogHandler.GetStudentBook)
			studentBooks.GET("/:id/reviews", reviewHandler.ListStudentBookReviews)
		}

		// 购物车模块（需要登录）
		cart := v1.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)
		}

		// 订单模块（需要登录）
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.Checkout)
			orders.GET("", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/pay", orderHandler.PayOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}

		// 电子书模块（列表公开，解锁/下载/书架需要登录）
		ebooks := v1.Group("/ebooks")
		{
			ebooks.GET("", ebookHandler.ListEBooks)
			ebooks.GET("/library", authMiddleware.RequireAuth(), ebookHandler.Library)
			ebooks.GET("/:id/access", authMiddleware.RequireAuth(), ebookHandler.CheckAccess)
			ebooks.POST("/:id/unlock", authMiddleware.RequireAuth(), ebookHandler.Unlock)
			ebooks.GET("/:id/download", authMiddleware.RequireAuth(), ebookHandler.Download)
		}

		// 评价模块（写操作需要登录）
		reviews := v1.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			reviews.POST("", reviewHandler.SubmitReview)
			reviews.PUT("/:id", reviewHandler.EditReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// 收藏模块（需要登录）
		favourites := v1.Group("/favourites")
		favourites.Use(authMiddleware.RequireAuth())
		{
			favourites.POST("", reviewHandler.AddFavourite)
			favourites.GET("", reviewHandler.ListFavourites)
			favourites.GET("/check", reviewHandler.CheckFavourite)
			favourites.DELETE("/:id", reviewHandler.RemoveFavourite)
		}

		// 论坛模块（浏览公开，发帖/评论/投票需要登录）
		forum := v1.Group("/forum/posts")
		{
			forum.GET("", forumHandler.ListPosts)
			forum.GET("/:id", forumHandler.GetPost)
			forum.POST("", authMiddleware.RequireAuth(), forumHandler.CreatePost)
			forum.DELETE("/:id", authMiddleware.RequireAuth(), forumHandler.DeletePost)
			forum.POST("/:id/comments", authMiddleware.RequireAuth(), forumHandler.AddComment)
			forum.POST("/:id/vote", authMiddleware.RequireAuth(), forumHandler.Vote)
		}

		// 二手交换模块（浏览公开，发布/感兴趣/私信需要登录）
		exchange := v1.Group("/exchange")
		{
			exchange.GET("/listings", exchangeHandler.ListListings)
			exchange.GET("/listings/:id", authMiddleware.OptionalAuth(), exchangeHandler.GetListing)

			authed := exchange.Group("")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.POST("/listings", exchangeHandler.CreateListing)
				authed.PUT("/listings/:id", exchangeHandler.UpdateListing)
				authed.DELETE("/listings/:id", exchangeHandler.RemoveListing)
				authed.GET("/my-listings", exchangeHandler.MyListings)
				authed.POST("/listings/:id/interest", exchangeHandler.ToggleInterest)
				authed.POST("/listings/:id/sold", exchangeHandler.MarkSold)
				authed.POST("/listings/:id/messages", exchangeHandler.SendMessage)
				authed.GET("/listings/:id/messages/:user_id", exchangeHandler.GetConversation)
				authed.GET("/messages/unread", exchangeHandler.UnreadCount)
			}
		}

		// 搜索与推荐
		search := v1.Group("/search")
		{
			search.GET("/suggest", searchHandler.Suggest)
			search.GET("/trending", searchHandler.Trending)
		}
		v1.GET("/recommendations", authMiddleware.RequireAuth(), searchHandler.Recommendations)

		// 管理模块
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.POST("/books", adminHandler.CreateBook)
			admin.PUT("/books/:id", adminHandler.UpdateBook)
			admin.DELETE("/books/:id", adminHandler.DeleteBook)

			admin.POST("/student-books", adminHandler.CreateStudentBook)
			admin.PUT("/student-books/:id", adminHandler.UpdateStudentBook)
			admin.DELETE("/student-books/:id", adminHandler.DeleteStudentBook)

			admin.POST("/ebooks", adminHandler.CreateEBook)
			admin.PUT("/ebooks/:id", adminHandler.UpdateEBook)
			admin.DELETE("/ebooks/:id", adminHandler.DeleteEBook)

			admin.GET("/orders", adminHandler.ListAllOrders)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		}
	}
}
