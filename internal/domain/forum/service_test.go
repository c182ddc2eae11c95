package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForumRepo struct {
	posts         map[uint]*Post
	comments      map[uint]*Comment
	votes         map[[2]uint]*Vote // (postID, userID)
	nextCommentID uint
}

func newFakeForumRepo(posts ...*Post) *fakeForumRepo {
	r := &fakeForumRepo{
		posts:         map[uint]*Post{},
		comments:      map[uint]*Comment{},
		votes:         map[[2]uint]*Vote{},
		nextCommentID: 1,
	}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakeForumRepo) CreatePost(ctx context.Context, post *Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakeForumRepo) FindPostByID(ctx context.Context, id uint) (*Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (r *fakeForumRepo) UpdatePost(ctx context.Context, post *Post) error { return nil }
func (r *fakeForumRepo) DeletePost(ctx context.Context, id uint) error    { return nil }

func (r *fakeForumRepo) ListPosts(ctx context.Context, params ListParams) ([]*Post, int64, error) {
	return nil, 0, nil
}

func (r *fakeForumRepo) CreateComment(ctx context.Context, comment *Comment) error {
	comment.ID = r.nextCommentID
	r.nextCommentID++
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeForumRepo) FindCommentByID(ctx context.Context, id uint) (*Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

func (r *fakeForumRepo) ListComments(ctx context.Context, postID uint) ([]*Comment, error) {
	var out []*Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeForumRepo) CountComments(ctx context.Context, postID uint) (int, error) {
	n := 0
	for _, c := range r.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r *fakeForumRepo) FindVote(ctx context.Context, postID, userID uint) (*Vote, error) {
	return r.votes[[2]uint{postID, userID}], nil
}

func (r *fakeForumRepo) SaveVote(ctx context.Context, vote *Vote) error {
	r.votes[[2]uint{vote.PostID, vote.UserID}] = vote
	return nil
}

func (r *fakeForumRepo) DeleteVote(ctx context.Context, postID, userID uint) error {
	delete(r.votes, [2]uint{postID, userID})
	return nil
}

func (r *fakeForumRepo) CountVotes(ctx context.Context, postID uint) (int, int, error) {
	up, down := 0, 0
	for _, v := range r.votes {
		if v.PostID != postID {
			continue
		}
		if v.Value == VoteUp {
			up++
		} else {
			down++
		}
	}
	return up, down, nil
}

func (r *fakeForumRepo) SetPostCounters(ctx context.Context, postID uint, upvotes, downvotes, comments int) error {
	if p, ok := r.posts[postID]; ok {
		p.Upvotes = upvotes
		p.Downvotes = downvotes
		p.CommentCount = comments
	}
	return nil
}

func newTestPost(id uint) *Post {
	return &Post{ID: id, UserID: 1, UserName: "楼主", Title: "读后感", Content: "很好看"}
}

// TestService_ToggleVote 测试投票开关语义
func TestService_ToggleVote(t *testing.T) {
	ctx := context.Background()

	t.Run("首次投票", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		up, down, err := svc.ToggleVote(ctx, 1, 10, VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 1, up)
		assert.Equal(t, 0, down)
	})

	t.Run("同向再投取消", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		_, _, err := svc.ToggleVote(ctx, 1, 10, VoteUp)
		require.NoError(t, err)
		up, down, err := svc.ToggleVote(ctx, 1, 10, VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 0, up, "同向再投应撤销原票")
		assert.Equal(t, 0, down)
	})

	t.Run("反向改票", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		_, _, err := svc.ToggleVote(ctx, 1, 10, VoteUp)
		require.NoError(t, err)
		up, down, err := svc.ToggleVote(ctx, 1, 10, VoteDown)
		require.NoError(t, err)
		assert.Equal(t, 0, up, "改票不产生两票")
		assert.Equal(t, 1, down)
	})

	t.Run("多用户计数", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		for userID := uint(10); userID < 13; userID++ {
			_, _, err := svc.ToggleVote(ctx, 1, userID, VoteUp)
			require.NoError(t, err)
		}
		up, down, err := svc.ToggleVote(ctx, 1, 20, VoteDown)
		require.NoError(t, err)
		assert.Equal(t, 3, up)
		assert.Equal(t, 1, down)
		assert.Equal(t, 2, repo.posts[1].Score(), "热度分=赞-踩")
	})

	t.Run("非法方向", func(t *testing.T) {
		svc := NewService(newFakeForumRepo(newTestPost(1)))
		_, _, err := svc.ToggleVote(ctx, 1, 10, VoteValue(0))
		assert.ErrorIs(t, err, ErrInvalidVote)
	})

	t.Run("帖子不存在", func(t *testing.T) {
		svc := NewService(newFakeForumRepo())
		_, _, err := svc.ToggleVote(ctx, 99, 10, VoteUp)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

// TestService_AddComment 测试评论
func TestService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("评论落库并重算计数", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		c, err := svc.AddComment(ctx, 1, 10, "读者", "同感")
		require.NoError(t, err)
		assert.Nil(t, c.ParentCommentID, "一级评论无父评论")
		assert.Equal(t, 1, repo.posts[1].CommentCount)
	})

	t.Run("空内容被拒绝", func(t *testing.T) {
		svc := NewService(newFakeForumRepo(newTestPost(1)))
		_, err := svc.AddComment(ctx, 1, 10, "读者", "")
		assert.ErrorIs(t, err, ErrEmptyComment)
	})
}

// TestService_AddReply 测试回复
func TestService_AddReply(t *testing.T) {
	ctx := context.Background()

	t.Run("回复挂在父评论下", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1))
		svc := NewService(repo)

		parent, err := svc.AddComment(ctx, 1, 10, "读者", "同感")
		require.NoError(t, err)

		reply, err := svc.AddReply(ctx, 1, parent.ID, 11, "另一读者", "+1")
		require.NoError(t, err)
		require.NotNil(t, reply.ParentCommentID)
		assert.Equal(t, parent.ID, *reply.ParentCommentID)
		assert.Equal(t, 2, repo.posts[1].CommentCount, "回复也计入评论数")
	})

	t.Run("父评论属于别的帖子", func(t *testing.T) {
		repo := newFakeForumRepo(newTestPost(1), newTestPost(2))
		svc := NewService(repo)

		parent, err := svc.AddComment(ctx, 1, 10, "读者", "同感")
		require.NoError(t, err)

		_, err = svc.AddReply(ctx, 2, parent.ID, 11, "读者", "串台了")
		assert.ErrorIs(t, err, ErrCommentPostMismatch)
	})
}

// TestNewPost 测试发帖校验
func TestNewPost(t *testing.T) {
	_, err := NewPost(1, "楼主", "", "正文", "", "")
	assert.ErrorIs(t, err, ErrEmptyPost)

	_, err = NewPost(1, "楼主", "标题", "", "", "")
	assert.ErrorIs(t, err, ErrEmptyPost)
}
