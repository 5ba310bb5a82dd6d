package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studieren/blog_back/models"
)

func TestCreatePostWithTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)

	id, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:     user.ID,
		CategoryID: category.ID,
		Title:      "Hello World",
		HTML:       "<p>first</p>",
		Tags:       "Web Dev, Go",
	})
	require.NoError(t, err)

	post, err := svc.FetchPost(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	require.NotNil(t, post.Category)
	assert.Equal(t, category.ID, post.Category.ID)
	assert.Equal(t, "Engineering", post.Category.Name)

	slugs := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		slugs = append(slugs, tag.Slug)
	}
	assert.ElementsMatch(t, []string{"web-dev", "go"}, slugs)
}

// 未提供标签时挂兜底标签，且两篇文章复用同一行
func TestCreatePostDefaultTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "First Post", HTML: "<p>1</p>",
	})
	require.NoError(t, err)

	second, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Second Post", HTML: "<p>2</p>",
	})
	require.NoError(t, err)

	p1, err := svc.FetchPost(ctx, first)
	require.NoError(t, err)
	p2, err := svc.FetchPost(ctx, second)
	require.NoError(t, err)

	require.Len(t, p1.Tags, 1)
	require.Len(t, p2.Tags, 1)
	assert.Equal(t, DefaultTagName, p1.Tags[0].Slug)
	assert.Equal(t, p1.Tags[0].ID, p2.Tags[0].ID)
	assert.EqualValues(t, 1, tagCount(t, db))
}

func TestCreatePostEmptyTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: user.ID, CategoryID: category.ID, Title: "  ",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

// slug 撞车上报约束冲突，事务回滚不留下半挂接状态
func TestCreatePostDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Hello World", Tags: "go",
	})
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Hello World", Tags: "rust",
	})
	assert.ErrorIs(t, err, ErrConstraint)

	var n int64
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

// 重复挂接同一标签是空操作，读取仍只返回一次
func TestAttachTagsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)
	ctx := context.Background()

	id, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Hello World", Tags: "go",
	})
	require.NoError(t, err)

	post, err := svc.FetchPost(ctx, id)
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)

	// 再挂一次同一个标签
	require.NoError(t, attachTags(db, &models.Post{ID: id}, []uint{post.Tags[0].ID}))

	again, err := svc.FetchPost(ctx, id)
	require.NoError(t, err)
	assert.Len(t, again.Tags, 1)
}

func TestFetchPostNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))

	_, err := svc.FetchPost(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrPersistence)
}

// 分类不存在与分类无文章是两种结果：前者 404，后者空列表
func TestFetchPostsByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)
	ctx := context.Background()

	_, err := svc.FetchPostsByCategory(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	posts, err := svc.FetchPostsByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	_, err = svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Hello World", Tags: "go",
	})
	require.NoError(t, err)

	posts, err = svc.FetchPostsByCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)
}

func TestFetchPostsByTagSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, NewTagResolver(db))
	user, category := seedAuthorAndCategory(t, db)
	ctx := context.Background()

	_, err := svc.FetchPostsByTagSlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, CategoryID: category.ID,
		Title: "Hello World", Tags: "Web Dev",
	})
	require.NoError(t, err)

	posts, err := svc.FetchPostsByTagSlug(ctx, "web-dev")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)
}

func TestSplitTagCSV(t *testing.T) {
	assert.Equal(t, []string{"go", "web dev"}, splitTagCSV(" go , web dev "))
	assert.Equal(t, []string{"go"}, splitTagCSV("go,,  ,"))
	assert.Nil(t, splitTagCSV("   "))
	assert.Nil(t, splitTagCSV(""))
}
