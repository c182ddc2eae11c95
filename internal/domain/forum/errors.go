package forum

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 论坛领域错误定义
var (
	// ErrPostNotFound 帖子不存在
	ErrPostNotFound = apperrors.New(apperrors.ErrCodePostNotFound, "帖子不存在")

	// ErrCommentNotFound 评论不存在
	ErrCommentNotFound = apperrors.New(apperrors.ErrCodeNotFound, "评论不存在")

	// ErrEmptyPost 标题或正文为空
	ErrEmptyPost = apperrors.New(apperrors.ErrCodeInvalidParams, "标题和正文不能为空")

	// ErrEmptyComment 评论内容为空
	ErrEmptyComment = apperrors.New(apperrors.ErrCodeInvalidParams, "评论内容不能为空")

	// ErrCommentPostMismatch 回复的父评论不属于该帖子
	ErrCommentPostMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "父评论不属于此帖子")

	// ErrInvalidVote 投票方向不合法
	ErrInvalidVote = apperrors.New(apperrors.ErrCodeInvalidParams, "投票方向只能是up或down")
)
