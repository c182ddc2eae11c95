package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navyap013/bookhub/internal/domain/forum"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// forumRepository 论坛仓储实现（MySQL）
type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository 创建论坛仓储
func NewForumRepository(db *gorm.DB) forum.Repository {
	return &forumRepository{db: db}
}

// CreatePost 创建帖子
func (r *forumRepository) CreatePost(ctx context.Context, p *forum.Post) error {
	model := &ForumPostModel{
		UserID:   p.UserID,
		UserName: p.UserName,
		Title:    p.Title,
		Content:  p.Content,
		Genre:    p.Genre,
		BookClub: p.BookClub,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建帖子失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindPostByID 根据ID查找帖子
func (r *forumRepository) FindPostByID(ctx context.Context, id uint) (*forum.Post, error) {
	var model ForumPostModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forum.ErrPostNotFound
		}
		return nil, apperrors.Wrap(err, "查询帖子失败")
	}
	return toPostEntity(&model), nil
}

// UpdatePost 更新帖子内容
func (r *forumRepository) UpdatePost(ctx context.Context, p *forum.Post) error {
	result := getDB(ctx, r.db).Model(&ForumPostModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":     p.Title,
			"content":   p.Content,
			"genre":     p.Genre,
			"book_club": p.BookClub,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新帖子失败")
	}
	if result.RowsAffected == 0 {
		return forum.ErrPostNotFound
	}
	return nil
}

// DeletePost 删除帖子及其评论与投票
func (r *forumRepository) DeletePost(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&ForumPostModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除帖子失败")
	}
	if result.RowsAffected == 0 {
		return forum.ErrPostNotFound
	}
	if err := db.Where("post_id = ?", id).Delete(&ForumCommentModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除帖子评论失败")
	}
	if err := db.Where("post_id = ?", id).Delete(&PostVoteModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除帖子投票失败")
	}
	return nil
}

// ListPosts 帖子列表
func (r *forumRepository) ListPosts(ctx context.Context, params forum.ListParams) ([]*forum.Post, int64, error) {
	var models []ForumPostModel
	var total int64

	query := getDB(ctx, r.db).Model(&ForumPostModel{})
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}
	if params.BookClub != "" {
		query = query.Where("book_club = ?", params.BookClub)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询帖子总数失败")
	}

	switch params.SortBy {
	case "popular":
		query = query.Order("(upvotes - downvotes) DESC, created_at DESC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询帖子列表失败")
	}

	posts := make([]*forum.Post, len(models))
	for i := range models {
		posts[i] = toPostEntity(&models[i])
	}
	return posts, total, nil
}

// CreateComment 创建评论/回复
func (r *forumRepository) CreateComment(ctx context.Context, c *forum.Comment) error {
	model := &ForumCommentModel{
		PostID:          c.PostID,
		ParentCommentID: c.ParentCommentID,
		UserID:          c.UserID,
		UserName:        c.UserName,
		Content:         c.Content,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建评论失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// FindCommentByID 根据ID查找评论
func (r *forumRepository) FindCommentByID(ctx context.Context, id uint) (*forum.Comment, error) {
	var model ForumCommentModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forum.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "查询评论失败")
	}
	return toCommentEntity(&model), nil
}

// ListComments 帖子的全部评论（含回复），创建时间升序
func (r *forumRepository) ListComments(ctx context.Context, postID uint) ([]*forum.Comment, error) {
	var models []ForumCommentModel
	err := getDB(ctx, r.db).Where("post_id = ?", postID).
		Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评论列表失败")
	}
	comments := make([]*forum.Comment, len(models))
	for i := range models {
		comments[i] = toCommentEntity(&models[i])
	}
	return comments, nil
}

// CountComments 帖子评论数
func (r *forumRepository) CountComments(ctx context.Context, postID uint) (int, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ForumCommentModel{}).
		Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计评论数失败")
	}
	return int(count), nil
}

// FindVote 查用户对帖子的投票，不存在返回(nil, nil)
func (r *forumRepository) FindVote(ctx context.Context, postID, userID uint) (*forum.Vote, error) {
	var model PostVoteModel
	err := getDB(ctx, r.db).Where("post_id = ? AND user_id = ?", postID, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询投票失败")
	}
	return &forum.Vote{
		ID:        model.ID,
		PostID:    model.PostID,
		UserID:    model.UserID,
		Value:     forum.VoteValue(model.Value),
		CreatedAt: model.CreatedAt,
	}, nil
}

// SaveVote 写入投票（冲突时更新方向，实现改票）
func (r *forumRepository) SaveVote(ctx context.Context, v *forum.Vote) error {
	model := &PostVoteModel{
		ID:     v.ID,
		PostID: v.PostID,
		UserID: v.UserID,
		Value:  int(v.Value),
	}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "写入投票失败")
	}
	v.ID = model.ID
	return nil
}

// DeleteVote 删除投票（取消）
func (r *forumRepository) DeleteVote(ctx context.Context, postID, userID uint) error {
	err := getDB(ctx, r.db).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&PostVoteModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除投票失败")
	}
	return nil
}

// CountVotes 帖子的赞/踩数
func (r *forumRepository) CountVotes(ctx context.Context, postID uint) (int, int, error) {
	type voteCount struct {
		Value int
		Cnt   int64
	}
	var rows []voteCount
	err := getDB(ctx, r.db).Model(&PostVoteModel{}).
		Select("value, COUNT(*) AS cnt").
		Where("post_id = ?", postID).
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计投票失败")
	}

	var up, down int
	for _, row := range rows {
		if row.Value > 0 {
			up = int(row.Cnt)
		} else {
			down = int(row.Cnt)
		}
	}
	return up, down, nil
}

// SetPostCounters 写回冗余计数
func (r *forumRepository) SetPostCounters(ctx context.Context, postID uint, upvotes, downvotes, comments int) error {
	result := getDB(ctx, r.db).Model(&ForumPostModel{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"upvotes":       upvotes,
			"downvotes":     downvotes,
			"comment_count": comments,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新帖子计数失败")
	}
	if result.RowsAffected == 0 {
		return forum.ErrPostNotFound
	}
	return nil
}

// toPostEntity GORM模型 -> 领域实体
func toPostEntity(model *ForumPostModel) *forum.Post {
	return &forum.Post{
		ID:           model.ID,
		UserID:       model.UserID,
		UserName:     model.UserName,
		Title:        model.Title,
		Content:      model.Content,
		Genre:        model.Genre,
		BookClub:     model.BookClub,
		Upvotes:      model.Upvotes,
		Downvotes:    model.Downvotes,
		CommentCount: model.CommentCount,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// toCommentEntity GORM模型 -> 领域实体
func toCommentEntity(model *ForumCommentModel) *forum.Comment {
	return &forum.Comment{
		ID:              model.ID,
		PostID:          model.PostID,
		ParentCommentID: model.ParentCommentID,
		UserID:          model.UserID,
		UserName:        model.UserName,
		Content:         model.Content,
		CreatedAt:       model.CreatedAt,
	}
}
