package models

import (
	"strings"
	"time"
)

// User 作者模型
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Email string `json:"email" gorm:"size:250;not null;uniqueIndex"`
	Name  string `json:"name" gorm:"size:250;not null"`
	Posts []Post `json:"-" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

// Category 分类模型，一对多关联文章
type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:150;not null"`
	Posts []Post `json:"-" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string { return "categories" }

// Tag 标签模型，slug 全局唯一，通过 post_tags 多对多关联文章
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Slug  string `json:"slug" gorm:"size:150;not null;uniqueIndex"`
	Name  string `json:"name" gorm:"size:150;not null"`
	Posts []Post `json:"-" gorm:"many2many:post_tags;"`
}

func (Tag) TableName() string { return "tags" }

// Post 文章模型
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	CategoryID uint      `json:"category_id" gorm:"not null"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Slug       string    `json:"slug" gorm:"size:250;not null;uniqueIndex"`
	HTML       string    `json:"html" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;"`
}

func (Post) TableName() string { return "posts" }

// Slugify 由名称推导 slug：小写、空格替换为连字符
// 文章和标签使用同一条规则，保证同名输入落到同一行
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
