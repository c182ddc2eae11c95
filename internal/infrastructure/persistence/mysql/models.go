package mysql

import (
	"time"

	"gorm.io/gorm"
)

// GORM数据模型
// 设计说明：
// 1. 数据模型与领域实体分离：模型带GORM tag，实体不依赖ORM
// 2. 各仓储负责模型<->实体的双向转换
// 3. 钱一律int64（paise），评分平均值decimal存float64
// 4. 唯一业务约束全部落在数据库索引上（邮箱、发票号、(用户,电子书)等），
//    应用层检查只是快路径，并发窗口由索引兜底

// UserModel 用户表
type UserModel struct {
	ID         uint           `gorm:"primaryKey"`
	Email      string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password   string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name       string         `gorm:"size:50;not null;comment:姓名"`
	Role       string         `gorm:"size:20;not null;default:customer;comment:角色(admin/student/customer)"`
	ClassLevel int            `gorm:"type:tinyint;default:0;comment:学生班级(1-12)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

// BookModel 图书表
type BookModel struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"index:idx_books_search;size:200;not null;comment:书名"`
	Author        string         `gorm:"index:idx_books_search;size:100;not null;comment:作者"`
	Description   string         `gorm:"type:text;comment:描述"`
	Category      string         `gorm:"index;size:50;comment:分类"`
	Language      string         `gorm:"size:30;comment:语言"`
	Price         int64          `gorm:"index:idx_books_list;not null;comment:现价(paise)"`
	OriginalPrice int64          `gorm:"comment:原价(paise)"`
	Discount      int            `gorm:"comment:折扣百分比"`
	Stock         int            `gorm:"default:0;comment:库存"`
	CoverURL      string         `gorm:"size:500;comment:封面URL"`
	RatingAvg     float64        `gorm:"index;default:0;comment:平均评分"`
	RatingCount   int            `gorm:"default:0;comment:评价数"`
	Featured      bool           `gorm:"index;default:false;comment:精选位"`
	Trending      bool           `gorm:"index;default:false;comment:热门位"`
	RecentlyAdded bool           `gorm:"index;default:false;comment:新书位"`
	CreatedAt     time.Time      `gorm:"index:idx_books_list"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (BookModel) TableName() string { return "books" }

// StudentBookModel 学生教材表
type StudentBookModel struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"index:idx_sbooks_search;size:200;not null;comment:书名"`
	Author        string         `gorm:"index:idx_sbooks_search;size:100;not null;comment:作者"`
	Description   string         `gorm:"type:text"`
	Subject       string         `gorm:"index;size:50;not null;comment:科目"`
	ClassLevel    int            `gorm:"index;type:tinyint;not null;comment:适用班级(1-12)"`
	Language      string         `gorm:"size:30"`
	Price         int64          `gorm:"not null;comment:现价(paise)"`
	OriginalPrice int64
	Discount      int
	Stock         int            `gorm:"default:0"`
	CoverURL      string         `gorm:"size:500"`
	RatingAvg     float64        `gorm:"default:0"`
	RatingCount   int            `gorm:"default:0"`
	Featured      bool           `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (StudentBookModel) TableName() string { return "student_books" }

// EBookModel 电子书表
type EBookModel struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"size:200;not null"`
	Author        string    `gorm:"size:100"`
	Description   string    `gorm:"type:text"`
	BookID        uint      `gorm:"index;default:0;comment:关联图书ID"`
	StudentBookID uint      `gorm:"index;default:0;comment:关联教材ID"`
	ClassLevel    int       `gorm:"type:tinyint;default:0;comment:class解锁的目标班级"`
	FileURL       string    `gorm:"size:500;not null;comment:文件地址"`
	FileSize      int64     `gorm:"comment:文件大小(字节)"`
	Format        string    `gorm:"size:10;comment:pdf/epub"`
	UnlockMethod  string    `gorm:"size:20;not null;comment:解锁方式(purchase/class/free)"`
	IsFree        bool      `gorm:"default:false"`
	Price         int64     `gorm:"comment:展示价(paise)"`
	CoverURL      string    `gorm:"size:500"`
	DownloadCount int       `gorm:"default:0;comment:全局下载次数"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EBookModel) TableName() string { return "ebooks" }

// EBookAccessModel 电子书授权记录表
// (user_id, ebook_id)唯一：记录存在即授权
type EBookAccessModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"uniqueIndex:uk_user_ebook;not null"`
	EBookID       uint      `gorm:"uniqueIndex:uk_user_ebook;index;not null"`
	AccessMethod  string    `gorm:"size:20;not null;comment:授权方式快照"`
	UnlockedAt    time.Time `gorm:"not null"`
	LastAccessed  time.Time `gorm:"not null"`
	DownloadCount int       `gorm:"default:0;comment:该用户下载次数"`
}

func (EBookAccessModel) TableName() string { return "ebook_accesses" }

// CartModel 购物车表（每用户一个）
type CartModel struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"uniqueIndex;not null"`
	TotalPrice int64           `gorm:"not null;default:0;comment:总价(paise),冗余"`
	Items      []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartModel) TableName() string { return "carts" }

// CartItemModel 购物车行项表
type CartItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	CartID        uint   `gorm:"index;not null"`
	BookID        uint   `gorm:"default:0"`
	StudentBookID uint   `gorm:"default:0"`
	Name          string `gorm:"size:200;comment:名称快照"`
	Image         string `gorm:"size:500;comment:图片快照"`
	Price         int64  `gorm:"not null;comment:加入时单价(paise)"`
	Quantity      int    `gorm:"not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// OrderModel 订单表
type OrderModel struct {
	ID            uint             `gorm:"primaryKey"`
	InvoiceNo     string           `gorm:"uniqueIndex;size:40;not null;comment:发票号"`
	UserID        uint             `gorm:"index;not null"`
	PaymentMethod string           `gorm:"size:20;not null;comment:Razorpay/COD"`
	ItemsPrice    int64            `gorm:"not null"`
	ShippingPrice int64            `gorm:"not null"`
	TaxPrice      int64            `gorm:"not null"`
	TotalPrice    int64            `gorm:"not null"`
	IsPaid        bool             `gorm:"index;default:false"`
	PaidAt        *time.Time
	PaymentID     string           `gorm:"size:100;comment:网关支付ID"`
	GatewayOrder  string           `gorm:"size:100;comment:网关订单ID"`
	PaySignature  string           `gorm:"size:200;comment:网关签名"`
	PayStatus     string           `gorm:"size:20;comment:captured/failed"`
	Status        string           `gorm:"index;size:20;not null;default:Pending"`
	TrackingNo    string           `gorm:"size:60"`
	IsDelivered   bool             `gorm:"default:false"`
	DeliveredAt   *time.Time
	ShipName      string           `gorm:"size:50;comment:收货人"`
	ShipPhone     string           `gorm:"size:20"`
	ShipAddress   string           `gorm:"size:300"`
	ShipCity      string           `gorm:"size:60"`
	ShipState     string           `gorm:"size:60"`
	ShipPincode   string           `gorm:"size:10"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表（下单时刻的价格快照）
type OrderItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	OrderID       uint   `gorm:"index;not null"`
	BookID        uint   `gorm:"index;default:0"`
	StudentBookID uint   `gorm:"index;default:0"`
	Name          string `gorm:"size:200"`
	Image         string `gorm:"size:500"`
	Price         int64  `gorm:"not null;comment:下单时单价(paise)"`
	Quantity      int    `gorm:"not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// ReviewModel 评价表
// 同一用户对同一商品最多一条。book_id与student_book_id恰好一个有值，
// 另一个必须存NULL：MySQL唯一索引跳过NULL行，存0会让同类商品互相撞索引
type ReviewModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"uniqueIndex:uk_user_book;uniqueIndex:uk_user_sbook;not null"`
	UserName      string    `gorm:"size:50"`
	BookID        *uint     `gorm:"uniqueIndex:uk_user_book;index"`
	StudentBookID *uint     `gorm:"uniqueIndex:uk_user_sbook;index"`
	Rating        int       `gorm:"type:tinyint;not null"`
	Comment       string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReviewModel) TableName() string { return "reviews" }

// FavouriteModel 收藏表
// 商品列同评价表：未使用的一列存NULL，唯一索引才只约束同一商品
type FavouriteModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"uniqueIndex:uk_fav_book;uniqueIndex:uk_fav_sbook;index;not null"`
	BookID        *uint     `gorm:"uniqueIndex:uk_fav_book"`
	StudentBookID *uint     `gorm:"uniqueIndex:uk_fav_sbook"`
	CreatedAt     time.Time
}

func (FavouriteModel) TableName() string { return "favourites" }

// ForumPostModel 论坛帖子表
type ForumPostModel struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"index;not null"`
	UserName     string    `gorm:"size:50"`
	Title        string    `gorm:"size:200;not null"`
	Content      string    `gorm:"type:text;not null"`
	Genre        string    `gorm:"index;size:50"`
	BookClub     string    `gorm:"index;size:50"`
	Upvotes      int       `gorm:"default:0"`
	Downvotes    int       `gorm:"default:0"`
	CommentCount int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (ForumPostModel) TableName() string { return "forum_posts" }

// ForumCommentModel 论坛评论表（扁平结构）
// parent_comment_id为NULL是一级评论，否则是回复；post_id冗余方便单查取全树
type ForumCommentModel struct {
	ID              uint      `gorm:"primaryKey"`
	PostID          uint      `gorm:"index;not null"`
	ParentCommentID *uint     `gorm:"index"`
	UserID          uint      `gorm:"index;not null"`
	UserName        string    `gorm:"size:50"`
	Content         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time
}

func (ForumCommentModel) TableName() string { return "forum_comments" }

// PostVoteModel 帖子投票表，(post_id, user_id)唯一
type PostVoteModel struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"uniqueIndex:uk_post_user;not null"`
	UserID    uint      `gorm:"uniqueIndex:uk_post_user;not null"`
	Value     int       `gorm:"type:tinyint;not null;comment:1赞/-1踩"`
	CreatedAt time.Time
}

func (PostVoteModel) TableName() string { return "post_votes" }

// ListingModel 二手挂牌表
type ListingModel struct {
	ID          uint      `gorm:"primaryKey"`
	SellerID    uint      `gorm:"index;not null"`
	SellerName  string    `gorm:"size:50"`
	Title       string    `gorm:"index:idx_listings_search;size:200;not null"`
	Author      string    `gorm:"index:idx_listings_search;size:100"`
	Category    string    `gorm:"index;size:50"`
	ClassLevel  int       `gorm:"index;type:tinyint;default:0"`
	Condition   string    `gorm:"size:20;not null"`
	Price       int64     `gorm:"index;not null"`
	Description string    `gorm:"type:text"`
	Images      []string  `gorm:"serializer:json;type:json;comment:图片URL数组"`
	Status      string    `gorm:"index;size:20;not null;default:active"`
	SoldToID    uint      `gorm:"default:0"`
	Views       int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (ListingModel) TableName() string { return "exchange_listings" }

// ListingInterestModel 感兴趣集合，(listing_id, user_id)唯一
type ListingInterestModel struct {
	ID        uint      `gorm:"primaryKey"`
	ListingID uint      `gorm:"uniqueIndex:uk_listing_user;not null"`
	UserID    uint      `gorm:"uniqueIndex:uk_listing_user;index;not null"`
	CreatedAt time.Time
}

func (ListingInterestModel) TableName() string { return "listing_interests" }

// ListingMessageModel 挂牌留言表
type ListingMessageModel struct {
	ID         uint       `gorm:"primaryKey"`
	ListingID  uint       `gorm:"index;not null"`
	SenderID   uint       `gorm:"index;not null"`
	ReceiverID uint       `gorm:"index;not null"`
	Body       string     `gorm:"type:text;not null"`
	IsRead     bool       `gorm:"index;default:false"`
	ReadAt     *time.Time
	CreatedAt  time.Time  `gorm:"index"`
}

func (ListingMessageModel) TableName() string { return "listing_messages" }

// SearchHistoryModel 搜索历史表
type SearchHistoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;default:0;comment:0为匿名"`
	Query       string    `gorm:"index;size:200;not null;comment:归一化后的查询词"`
	ResultCount int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"index"`
}

func (SearchHistoryModel) TableName() string { return "search_histories" }
