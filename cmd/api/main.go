package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	appcart "github.com/navyap013/bookhub/internal/application/cart"
	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	appebook "github.com/navyap013/bookhub/internal/application/ebook"
	appexchange "github.com/navyap013/bookhub/internal/application/exchange"
	appfavourite "github.com/navyap013/bookhub/internal/application/favourite"
	appforum "github.com/navyap013/bookhub/internal/application/forum"
	apporder "github.com/navyap013/bookhub/internal/application/order"
	apprecommend "github.com/navyap013/bookhub/internal/application/recommendation"
	appreview "github.com/navyap013/bookhub/internal/application/review"
	appsearch "github.com/navyap013/bookhub/internal/application/search"
	appuser "github.com/navyap013/bookhub/internal/application/user"
	"github.com/navyap013/bookhub/internal/domain/catalog"
	"github.com/navyap013/bookhub/internal/domain/ebook"
	"github.com/navyap013/bookhub/internal/domain/exchange"
	"github.com/navyap013/bookhub/internal/domain/forum"
	"github.com/navyap013/bookhub/internal/domain/review"
	"github.com/navyap013/bookhub/internal/domain/user"
	"github.com/navyap013/bookhub/internal/infrastructure/config"
	"github.com/navyap013/bookhub/internal/infrastructure/payment"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/mysql"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/redis"
	"github.com/navyap013/bookhub/internal/interface/http/handler"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/jwt"
	"github.com/navyap013/bookhub/pkg/metrics"
	"github.com/navyap013/bookhub/pkg/mq"
	"github.com/navyap013/bookhub/pkg/tracing"
)

// @title           BookHub API
// @version         1.0
// @description     图书电商与读者社区平台：图书/教材商城、电子书解锁、评价、论坛、二手交换
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire配置，运行wire gen可生成自动装配代码）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化指标与链路追踪
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(tracing.Config{
			ServiceName: "bookhub-api",
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化消息队列（可选依赖，连不上只降级论坛通知，不阻塞启动）
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Printf("初始化RabbitMQ失败，论坛通知事件将被跳过: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// 6. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	studentReader := mysql.NewStudentReader(db)
	bookRepo := mysql.NewBookRepository(db)
	studentBookRepo := mysql.NewStudentBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	ebookRepo := mysql.NewEBookRepository(db)
	accessRepo := mysql.NewAccessRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	favouriteRepo := mysql.NewFavouriteRepository(db)
	forumRepo := mysql.NewForumRepository(db)
	exchangeRepo := mysql.NewExchangeRepository(db)
	searchRepo := mysql.NewSearchRepository(db)
	txManager := mysql.NewTxManager(db)

	sessionStore := redis.NewSessionStore(redisClient)
	trendingCache := redis.NewTrendingStore(redisClient)

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	gateway := payment.NewGateway(cfg)

	// 领域层
	userService := user.NewService(userRepo)
	catalogService := catalog.NewService(bookRepo, studentBookRepo)
	ebookService := ebook.NewService(ebookRepo, accessRepo, orderRepo, studentReader)
	reviewService := review.NewService(reviewRepo, bookRepo, studentBookRepo)
	forumService := forum.NewService(forumRepo)
	exchangeService := exchange.NewService(exchangeRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService, jwtManager, sessionStore)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	refreshTokenUseCase := appuser.NewRefreshTokenUseCase(userRepo, jwtManager)
	getProfileUseCase := appuser.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := appuser.NewUpdateProfileUseCase(userRepo)

	listBooksUseCase := appcatalog.NewListBooksUseCase(bookRepo)
	getBookUseCase := appcatalog.NewGetBookUseCase(bookRepo)
	curatedBooksUseCase := appcatalog.NewCuratedBooksUseCase(bookRepo)
	listStudentBooksUseCase := appcatalog.NewListStudentBooksUseCase(studentBookRepo)
	getStudentBookUseCase := appcatalog.NewGetStudentBookUseCase(studentBookRepo)
	adminBookUseCase := appcatalog.NewAdminBookUseCase(catalogService, bookRepo)
	adminStudentBookUseCase := appcatalog.NewAdminStudentBookUseCase(catalogService, studentBookRepo)

	manageCartUseCase := appcart.NewManageCartUseCase(cartRepo, bookRepo, studentBookRepo)

	checkoutUseCase := apporder.NewCheckoutUseCase(orderRepo, cartRepo, bookRepo, studentBookRepo, txManager, gateway)
	payOrderUseCase := apporder.NewPayOrderUseCase(orderRepo, gateway)
	listMyOrdersUseCase := apporder.NewListMyOrdersUseCase(orderRepo)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo)
	listAllOrdersUseCase := apporder.NewListAllOrdersUseCase(orderRepo)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo)

	listEBooksUseCase := appebook.NewListEBooksUseCase(ebookRepo)
	checkAccessUseCase := appebook.NewCheckAccessUseCase(ebookService, ebookRepo)
	unlockUseCase := appebook.NewUnlockUseCase(ebookService)
	downloadUseCase := appebook.NewDownloadUseCase(ebookService)
	libraryUseCase := appebook.NewLibraryUseCase(ebookService)
	adminEBookUseCase := appebook.NewAdminEBookUseCase(ebookRepo)

	reviewUseCase := appreview.NewReviewUseCase(reviewService, reviewRepo)
	favouriteUseCase := appfavourite.NewFavouriteUseCase(favouriteRepo, bookRepo, studentBookRepo)

	listPostsUseCase := appforum.NewListPostsUseCase(forumRepo)
	getPostUseCase := appforum.NewGetPostUseCase(forumRepo)
	createPostUseCase := appforum.NewCreatePostUseCase(forumRepo)
	deletePostUseCase := appforum.NewDeletePostUseCase(forumRepo)
	interactUseCase := appforum.NewInteractUseCase(forumService, forumRepo, publisher)

	listListingsUseCase := appexchange.NewListListingsUseCase(exchangeRepo)
	getListingUseCase := appexchange.NewGetListingUseCase(exchangeRepo)
	manageListingUseCase := appexchange.NewManageListingUseCase(exchangeRepo)
	interestUseCase := appexchange.NewInterestUseCase(exchangeService)
	markSoldUseCase := appexchange.NewMarkSoldUseCase(exchangeService)
	messagingUseCase := appexchange.NewMessagingUseCase(exchangeService, exchangeRepo)

	suggestUseCase := appsearch.NewSuggestUseCase(bookRepo, studentBookRepo)
	trendingUseCase := appsearch.NewTrendingUseCase(searchRepo, trendingCache)
	logSearchUseCase := appsearch.NewLogSearchUseCase(searchRepo, trendingCache)
	recommendUseCase := apprecommend.NewRecommendUseCase(bookRepo, studentBookRepo, orderRepo, favouriteRepo, studentReader)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase,
		refreshTokenUseCase, getProfileUseCase, updateProfileUseCase)
	catalogHandler := handler.NewCatalogHandler(listBooksUseCase, getBookUseCase, curatedBooksUseCase,
		listStudentBooksUseCase, getStudentBookUseCase, logSearchUseCase)
	cartHandler := handler.NewCartHandler(manageCartUseCase)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, payOrderUseCase, listMyOrdersUseCase,
		getOrderUseCase, cancelOrderUseCase)
	ebookHandler := handler.NewEBookHandler(listEBooksUseCase, checkAccessUseCase, unlockUseCase,
		downloadUseCase, libraryUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase, favouriteUseCase)
	forumHandler := handler.NewForumHandler(listPostsUseCase, getPostUseCase, createPostUseCase,
		deletePostUseCase, interactUseCase)
	exchangeHandler := handler.NewExchangeHandler(listListingsUseCase, getListingUseCase,
		manageListingUseCase, interestUseCase, markSoldUseCase, messagingUseCase)
	searchHandler := handler.NewSearchHandler(suggestUseCase, trendingUseCase, recommendUseCase)
	adminHandler := handler.NewAdminHandler(adminBookUseCase, adminStudentBookUseCase,
		adminEBookUseCase, listAllOrdersUseCase, updateStatusUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}

	// 8. 注册路由
	registerRoutes(r, userHandler, catalogHandler, cartHandler, orderHandler, ebookHandler,
		reviewHandler, forumHandler, exchangeHandler, searchHandler, adminHandler, authMiddleware)

	// 9. 启动服务（优雅关闭：收到SIGINT/SIGTERM后等在途请求处理完再退出）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Println("收到退出信号，开始关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("关闭服务失败: %v", err)
	}
	log.Println("服务已退出")
}
