package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navyap013/bookhub/internal/domain/exchange"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// exchangeRepository 二手交换仓储实现（MySQL）
type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository 创建二手交换仓储
func NewExchangeRepository(db *gorm.DB) exchange.Repository {
	return &exchangeRepository{db: db}
}

// CreateListing 创建挂牌
func (r *exchangeRepository) CreateListing(ctx context.Context, l *exchange.Listing) error {
	model := toListingModel(l)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建挂牌失败")
	}
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// FindListingByID 查找挂牌（含感兴趣用户集合）
func (r *exchangeRepository) FindListingByID(ctx context.Context, id uint) (*exchange.Listing, error) {
	db := getDB(ctx, r.db)

	var model ListingModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exchange.ErrListingNotFound
		}
		return nil, apperrors.Wrap(err, "查询挂牌失败")
	}

	var interests []ListingInterestModel
	if err := db.Where("listing_id = ?", id).Find(&interests).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询兴趣集合失败")
	}

	listing := toListingEntity(&model)
	listing.InterestedUserIDs = make([]uint, len(interests))
	for i, in := range interests {
		listing.InterestedUserIDs[i] = in.UserID
	}
	return listing, nil
}

// UpdateListing 更新挂牌
func (r *exchangeRepository) UpdateListing(ctx context.Context, l *exchange.Listing) error {
	result := getDB(ctx, r.db).Model(&ListingModel{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"title":       l.Title,
			"author":      l.Author,
			"category":    l.Category,
			"class_level": l.ClassLevel,
			"condition":   string(l.Condition),
			"price":       l.Price,
			"description": l.Description,
			"images":      toListingModel(l).Images,
			"status":      string(l.Status),
			"sold_to_id":  l.SoldToID,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新挂牌失败")
	}
	if result.RowsAffected == 0 {
		return exchange.ErrListingNotFound
	}
	return nil
}

// ListListings 挂牌列表
func (r *exchangeRepository) ListListings(ctx context.Context, params exchange.ListParams) ([]*exchange.Listing, int64, error) {
	var models []ListingModel
	var total int64

	query := getDB(ctx, r.db).Model(&ListingModel{})

	status := params.Status
	if status == "" {
		status = exchange.StatusActive
	}
	query = query.Where("status = ?", string(status))

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.ClassLevel > 0 {
		query = query.Where("class_level = ?", params.ClassLevel)
	}
	if params.Condition != "" {
		query = query.Where("`condition` = ?", string(params.Condition))
	}
	if params.MinPrice > 0 {
		query = query.Where("price >= ?", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		query = query.Where("price <= ?", params.MaxPrice)
	}
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询挂牌总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("created_at DESC").Limit(params.PageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询挂牌列表失败")
	}

	listings := make([]*exchange.Listing, len(models))
	for i := range models {
		listings[i] = toListingEntity(&models[i])
	}
	return listings, total, nil
}

// ListBySeller 卖家的全部挂牌（含已售/已下架）
func (r *exchangeRepository) ListBySeller(ctx context.Context, sellerID uint) ([]*exchange.Listing, error) {
	var models []ListingModel
	err := getDB(ctx, r.db).Where("seller_id = ?", sellerID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询我的挂牌失败")
	}
	listings := make([]*exchange.Listing, len(models))
	for i := range models {
		listings[i] = toListingEntity(&models[i])
	}
	return listings, nil
}

// IncrViews 浏览计数+1
func (r *exchangeRepository) IncrViews(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Model(&ListingModel{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return apperrors.Wrap(err, "更新浏览计数失败")
	}
	return nil
}

// AddInterest 加入感兴趣集合（幂等）
func (r *exchangeRepository) AddInterest(ctx context.Context, listingID, userID uint) error {
	model := &ListingInterestModel{ListingID: listingID, UserID: userID}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "记录兴趣失败")
	}
	return nil
}

// RemoveInterest 移出感兴趣集合
func (r *exchangeRepository) RemoveInterest(ctx context.Context, listingID, userID uint) error {
	err := getDB(ctx, r.db).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Delete(&ListingInterestModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "取消兴趣失败")
	}
	return nil
}

// CreateMessage 创建留言
func (r *exchangeRepository) CreateMessage(ctx context.Context, msg *exchange.Message) error {
	model := &ListingMessageModel{
		ListingID:  msg.ListingID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Body:       msg.Body,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建留言失败")
	}
	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

// Conversation 某挂牌下两人之间的全部留言，时间升序
func (r *exchangeRepository) Conversation(ctx context.Context, listingID, userA, userB uint) ([]*exchange.Message, error) {
	var models []ListingMessageModel
	err := getDB(ctx, r.db).
		Where("listing_id = ?", listingID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询会话失败")
	}

	msgs := make([]*exchange.Message, len(models))
	for i := range models {
		msgs[i] = toMessageEntity(&models[i])
	}
	return msgs, nil
}

// MarkConversationRead 把发给userID的未读留言标记为已读
func (r *exchangeRepository) MarkConversationRead(ctx context.Context, listingID, userID uint) error {
	err := getDB(ctx, r.db).Model(&ListingMessageModel{}).
		Where("listing_id = ? AND receiver_id = ? AND is_read = ?", listingID, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()}).Error
	if err != nil {
		return apperrors.Wrap(err, "标记已读失败")
	}
	return nil
}

// CountUnread 用户的未读留言总数
func (r *exchangeRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ListingMessageModel{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未读留言失败")
	}
	return count, nil
}

// toListingModel 领域实体 -> GORM模型
func toListingModel(l *exchange.Listing) *ListingModel {
	return &ListingModel{
		SellerID:    l.SellerID,
		SellerName:  l.SellerName,
		Title:       l.Title,
		Author:      l.Author,
		Category:    l.Category,
		ClassLevel:  l.ClassLevel,
		Condition:   string(l.Condition),
		Price:       l.Price,
		Description: l.Description,
		Images:      l.Images,
		Status:      string(l.Status),
		SoldToID:    l.SoldToID,
		Views:       l.Views,
	}
}

// toListingEntity GORM模型 -> 领域实体（不含兴趣集合）
func toListingEntity(model *ListingModel) *exchange.Listing {
	return &exchange.Listing{
		ID:          model.ID,
		SellerID:    model.SellerID,
		SellerName:  model.SellerName,
		Title:       model.Title,
		Author:      model.Author,
		Category:    model.Category,
		ClassLevel:  model.ClassLevel,
		Condition:   exchange.Condition(model.Condition),
		Price:       model.Price,
		Description: model.Description,
		Images:      model.Images,
		Status:      exchange.ListingStatus(model.Status),
		SoldToID:    model.SoldToID,
		Views:       model.Views,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// toMessageEntity GORM模型 -> 领域实体
func toMessageEntity(model *ListingMessageModel) *exchange.Message {
	return &exchange.Message{
		ID:         model.ID,
		ListingID:  model.ListingID,
		SenderID:   model.SenderID,
		ReceiverID: model.ReceiverID,
		Body:       model.Body,
		IsRead:     model.IsRead,
		ReadAt:     model.ReadAt,
		CreatedAt:  model.CreatedAt,
	}
}
