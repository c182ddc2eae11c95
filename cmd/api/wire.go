//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
//   wire gen ./cmd/api
// 生成wire_gen.go后，main.go可改为调用InitializeApp()。
// 当前main.go仍使用手动装配，本文件与其保持同一依赖图。

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

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
	"github.com/navyap013/bookhub/internal/domain/order"
	"github.com/navyap013/bookhub/internal/domain/review"
	"github.com/navyap013/bookhub/internal/domain/user"
	"github.com/navyap013/bookhub/internal/infrastructure/config"
	"github.com/navyap013/bookhub/internal/infrastructure/payment"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/mysql"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/redis"
	"github.com/navyap013/bookhub/internal/interface/http/handler"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/jwt"
	"github.com/navyap013/bookhub/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	payment.NewGateway,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewStudentReader,
	mysql.NewBookRepository,
	mysql.NewStudentBookRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewEBookRepository,
	mysql.NewAccessRepository,
	mysql.NewReviewRepository,
	mysql.NewFavouriteRepository,
	mysql.NewForumRepository,
	mysql.NewExchangeRepository,
	mysql.NewSearchRepository,
	mysql.NewTxManager,
	redis.NewSessionStore,
	redis.NewTrendingStore,
)

// domainSet 领域层依赖
// review服务的两个RatingWriter参数类型相同，Wire无法区分，走自定义Provider
var domainSet = wire.NewSet(
	user.NewService,
	catalog.NewService,
	forum.NewService,
	exchange.NewService,
	provideEBookService,
	provideReviewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewUpdateProfileUseCase,

	appcatalog.NewListBooksUseCase,
	appcatalog.NewGetBookUseCase,
	appcatalog.NewCuratedBooksUseCase,
	appcatalog.NewListStudentBooksUseCase,
	appcatalog.NewGetStudentBookUseCase,
	appcatalog.NewAdminBookUseCase,
	appcatalog.NewAdminStudentBookUseCase,

	appcart.NewManageCartUseCase,

	apporder.NewCheckoutUseCase,
	apporder.NewPayOrderUseCase,
	apporder.NewListMyOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewListAllOrdersUseCase,
	apporder.NewUpdateStatusUseCase,

	appebook.NewListEBooksUseCase,
	appebook.NewCheckAccessUseCase,
	appebook.NewUnlockUseCase,
	appebook.NewDownloadUseCase,
	appebook.NewLibraryUseCase,
	appebook.NewAdminEBookUseCase,

	appreview.NewReviewUseCase,
	appfavourite.NewFavouriteUseCase,

	appforum.NewListPostsUseCase,
	appforum.NewGetPostUseCase,
	appforum.NewCreatePostUseCase,
	appforum.NewDeletePostUseCase,
	appforum.NewInteractUseCase,

	appexchange.NewListListingsUseCase,
	appexchange.NewGetListingUseCase,
	appexchange.NewManageListingUseCase,
	appexchange.NewInterestUseCase,
	appexchange.NewMarkSoldUseCase,
	appexchange.NewMessagingUseCase,

	appsearch.NewSuggestUseCase,
	appsearch.NewTrendingUseCase,
	appsearch.NewLogSearchUseCase,
	apprecommend.NewRecommendUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewCatalogHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewEBookHandler,
	handler.NewReviewHandler,
	handler.NewForumHandler,
	handler.NewExchangeHandler,
	handler.NewSearchHandler,
	handler.NewAdminHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// providePublisher 创建RabbitMQ发布者
// 可选依赖：连接失败返回nil，论坛通知事件降级为跳过
func providePublisher(cfg *config.Config) *mq.Publisher {
	if cfg.MQ.URL == "" {
		return nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		log.Printf("初始化RabbitMQ失败，论坛通知事件将被跳过: %v", err)
		return nil
	}
	return publisher
}

// provideEBookService 组装电子书领域服务
// purchase解锁需要查询订单，订单仓储以窄接口ebook.PurchaseChecker注入
func provideEBookService(
	ebookRepo ebook.Repository,
	accessRepo ebook.AccessRepository,
	orderRepo order.Repository,
	studentReader ebook.StudentReader,
) ebook.Service {
	return ebook.NewService(ebookRepo, accessRepo, orderRepo, studentReader)
}

// provideReviewService 组装评价领域服务
// 图书与教材仓储分别作为两个评分写回口注入
func provideReviewService(
	reviewRepo review.Repository,
	bookRepo catalog.BookRepository,
	studentBookRepo catalog.StudentBookRepository,
) review.Service {
	return review.NewService(reviewRepo, bookRepo, studentBookRepo)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
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
) *gin.Engine {
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

	registerRoutes(r, userHandler, catalogHandler, cartHandler, orderHandler, ebookHandler,
		reviewHandler, forumHandler, exchangeHandler, searchHandler, adminHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖关系生成完整的初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
