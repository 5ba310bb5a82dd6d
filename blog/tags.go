package blog

import (
	"context"

	"github.com/studieren/blog_back/models"
	"gorm.io/gorm"
)

// TagResolver 把原始标签名解析为标签 id 集合：
// 已有标签复用，缺失的才创建，同一 slug 绝不建第二行
type TagResolver struct {
	db *gorm.DB
}

func NewTagResolver(db *gorm.DB) *TagResolver {
	return &TagResolver{db: db}
}

// Resolve 解析一批原始标签名，返回去重后的标签 id 集合
// 同一次调用里 "Go"/"go"/"GO" 归并为一个 slug，只建一行
func (r *TagResolver) Resolve(ctx context.Context, rawNames []string) ([]uint, error) {
	return r.resolve(r.db.WithContext(ctx), rawNames)
}

// resolve 供 PostService 在事务句柄上复用
func (r *TagResolver) resolve(db *gorm.DB, rawNames []string) ([]uint, error) {
	// 按 slug 去重，同一 slug 保留第一个原始写法作为 Name
	nameBySlug := make(map[string]string, len(rawNames))
	slugs := make([]string, 0, len(rawNames))
	for _, name := range rawNames {
		slug := models.Slugify(name)
		if slug == "" {
			continue
		}
		if _, ok := nameBySlug[slug]; !ok {
			nameBySlug[slug] = name
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		return nil, nil
	}

	// 一次 IN 查询拿到全部已有标签，避免逐个查的 N+1
	var existing []models.Tag
	if err := db.Where("slug IN ?", slugs).Find(&existing).Error; err != nil {
		return nil, wrapRead("lookup tags", err)
	}

	ids := make([]uint, 0, len(slugs))
	found := make(map[string]bool, len(existing))
	for _, tag := range existing {
		found[tag.Slug] = true
		ids = append(ids, tag.ID)
	}

	// 只创建缺失的 slug；并发请求撞上唯一索引时由 wrapWrite 上报冲突
	for _, slug := range slugs {
		if found[slug] {
			continue
		}
		tag := models.Tag{Slug: slug, Name: nameBySlug[slug]}
		if err := db.Create(&tag).Error; err != nil {
			return nil, wrapWrite("create tag "+slug, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
