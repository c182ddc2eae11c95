package catalog

import (
	"context"
)

// ListParams 图书列表查询参数
// 过滤条件均为可选：零值表示不过滤
type ListParams struct {
	Category  string   // 分类精确匹配
	Author    string   // 作者子串匹配（不区分大小写）
	Language  string   // 语言精确匹配
	MinPrice  int64    // 价格下限（paise），0表示不限
	MaxPrice  int64    // 价格上限（paise），0表示不限
	MinRating float64  // 最低评分
	MaxRating float64  // 最高评分，0表示不限
	Featured  *bool    // 运营位过滤（nil不过滤）
	Trending  *bool
	Recent    *bool
	Keyword   string   // 搜索标题/作者/描述
	SortBy    string   // price-low | price-high | rating | newest
	Page      int      // 页码（从1开始）
	PageSize  int
}

// StudentListParams 教材列表查询参数
type StudentListParams struct {
	ClassLevel int    // 班级过滤，0表示不限
	Subject    string
	Keyword    string
	SortBy     string
	Page       int
	PageSize   int
}

// RecommendParams 按购买/收藏画像推荐的查询参数
// 从用户历史提取分类与作者集合，排除已购ID，按评分倒序取前N
type RecommendParams struct {
	Categories []string
	Authors    []string
	ExcludeIDs []uint
	Limit      int
}

// BookRepository 普通图书仓储接口
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id uint) (*Book, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)
	Update(ctx context.Context, book *Book) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// List 分页查询（过滤+排序+总数）
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// UpdateStock 原子扣减/增加库存
	// delta为负数时内部用`stock + delta >= 0`条件保护，不足返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// SetRating 写回聚合评分（评价聚合器专用）
	SetRating(ctx context.Context, id uint, average float64, count int) error

	// FindFeatured / FindTrending / FindRecent 首页运营位列表
	FindFeatured(ctx context.Context, limit int) ([]*Book, error)
	FindTrending(ctx context.Context, limit int) ([]*Book, error)
	FindRecent(ctx context.Context, limit int) ([]*Book, error)

	// FindPopular 高分热门（平均分>=minAvg且评价数>=minCount）
	FindPopular(ctx context.Context, minAvg float64, minCount, limit int) ([]*Book, error)

	// FindByProfile 按分类/作者画像推荐
	FindByProfile(ctx context.Context, params RecommendParams) ([]*Book, error)

	// SearchTitleAuthor 标题/作者子串搜索（搜索联想用）
	SearchTitleAuthor(ctx context.Context, keyword string, limit int) ([]*Book, error)
}

// StudentBookRepository 学生教材仓储接口
type StudentBookRepository interface {
	Create(ctx context.Context, sb *StudentBook) error
	FindByID(ctx context.Context, id uint) (*StudentBook, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*StudentBook, error)
	Update(ctx context.Context, sb *StudentBook) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params StudentListParams) ([]*StudentBook, int64, error)

	UpdateStock(ctx context.Context, id uint, delta int) error
	SetRating(ctx context.Context, id uint, average float64, count int) error

	// FindByClass 某班级教材，评分倒序、运营位优先
	FindByClass(ctx context.Context, classLevel, limit int) ([]*StudentBook, error)

	SearchTitleAuthor(ctx context.Context, keyword string, limit int) ([]*StudentBook, error)
}
