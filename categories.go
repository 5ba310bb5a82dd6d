package main

import (
	"github.com/gin-gonic/gin"
	"github.com/studieren/blog_back/gormtool"
	"github.com/studieren/blog_back/models"
)

/*
	------------------------------------------------
	  分类 CRUD

------------------------------------------------
*/
func (a *api) getAllCategories(c *gin.Context) {
	var categories []models.Category
	_ = a.cruder.GetAll(c, &categories, &gormtool.QueryBuilder{})
}

func (a *api) createCategory(c *gin.Context) {
	var category models.Category
	_ = a.cruder.Create(c, &category)
}

func (a *api) getCategoryByID(c *gin.Context) {
	var category models.Category
	_ = a.cruder.GetByID(c, &category)
}

func (a *api) updateCategory(c *gin.Context) {
	var category models.Category
	_ = a.cruder.UpdateByID(c, &category)
}

// 注意：删除被文章引用的分类不做级联处理，由存储层约束说了算
func (a *api) deleteCategory(c *gin.Context) {
	var category models.Category
	_ = a.cruder.DeleteByID(c, &category)
}
