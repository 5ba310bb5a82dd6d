package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/studieren/blog_back/models"
	"gorm.io/gorm"
)

// DefaultTagName 未提供标签时挂的兜底标签
const DefaultTagName = "uncategorised"

// PostService 文章写入流程与关联读取
type PostService struct {
	db   *gorm.DB
	tags *TagResolver
}

func NewPostService(db *gorm.DB, tags *TagResolver) *PostService {
	return &PostService{db: db, tags: tags}
}

// CreatePostInput 发文入参，Tags 为逗号分隔的原始标签串，可为空
type CreatePostInput struct {
	UserID     uint
	CategoryID uint
	Title      string
	HTML       string
	Tags       string
}

// CreatePost 发文流程：建文章行 -> 解析标签 -> 挂接标签
// 三步在同一事务内按序执行，任一步失败整体回滚
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (uint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", ErrValidation)
	}

	names := splitTagCSV(in.Tags)
	if len(names) == 0 {
		names = []string{DefaultTagName}
	}

	post := models.Post{
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		Title:      in.Title,
		Slug:       models.Slugify(in.Title),
		HTML:       in.HTML,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return wrapWrite("create post", err)
		}
		ids, err := s.tags.resolve(tx, names)
		if err != nil {
			return err
		}
		return attachTags(tx, &post, ids)
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// attachTags 通过 post_tags 挂接标签，重复挂接是空操作不报错
func attachTags(tx *gorm.DB, post *models.Post, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	tags := make([]models.Tag, len(ids))
	for i, id := range ids {
		tags[i] = models.Tag{ID: id}
	}
	if err := tx.Model(post).Association("Tags").Append(tags); err != nil {
		return wrapWrite("attach tags", err)
	}
	return nil
}

// FetchPost 单次逻辑读取文章及其分类、标签全集
func (s *PostService) FetchPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, wrapRead("fetch post", err)
	}
	return &post, nil
}

// FetchPostsByCategory 取某分类下全部文章
// 分类不存在返回 ErrNotFound；分类存在但没文章返回空列表
func (s *PostService) FetchPostsByCategory(ctx context.Context, categoryID uint) ([]models.Post, error) {
	db := s.db.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return nil, wrapRead("fetch category", err)
	}

	posts := make([]models.Post, 0)
	if err := db.Model(&category).Association("Posts").Find(&posts); err != nil {
		return nil, wrapRead("fetch posts of category", err)
	}
	return posts, nil
}

// FetchPostsByTagSlug 取某标签下全部文章，语义同上
func (s *PostService) FetchPostsByTagSlug(ctx context.Context, slug string) ([]models.Post, error) {
	db := s.db.WithContext(ctx)

	var tag models.Tag
	if err := db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, wrapRead("fetch tag", err)
	}

	posts := make([]models.Post, 0)
	if err := db.Model(&tag).Association("Posts").Find(&posts); err != nil {
		return nil, wrapRead("fetch posts of tag", err)
	}
	return posts, nil
}

// splitTagCSV 逗号拆分并修剪空白，空段丢弃
func splitTagCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
