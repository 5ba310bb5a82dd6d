package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studieren/blog_back/blog"
	"github.com/studieren/blog_back/gormtool"
	"github.com/studieren/blog_back/models"
)

/*
	------------------------------------------------
	  文章：发文流程 + 关联读取走 blog 服务，
	  普通字段更新/删除走通用 cruder

------------------------------------------------
*/
func (a *api) getAllPosts(c *gin.Context) {
	var posts []models.Post
	_ = a.cruder.GetAll(c, &posts, &gormtool.QueryBuilder{
		Sorts:    []gormtool.SortCondition{{Field: "created_at", Direction: "DESC"}},
		Preloads: []string{"Category", "Tags"},
	})
}

// createPost 发文：建文章行 -> 解析标签 -> 挂接标签（单事务）
func (a *api) createPost(c *gin.Context) {
	type payload struct {
		UserID     uint   `json:"user_id"`
		CategoryID uint   `json:"category_id"`
		Title      string `json:"title"`
		HTML       string `json:"post"`
		Tags       string `json:"tags"` // 逗号分隔，可省略
	}
	var req payload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gormtool.Response{
			Code:    http.StatusBadRequest,
			Message: "参数错误",
		})
		return
	}

	id, err := a.posts.CreatePost(c.Request.Context(), blog.CreatePostInput{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		HTML:       req.HTML,
		Tags:       req.Tags,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gormtool.Response{
		Code:    http.StatusCreated,
		Message: "发布成功",
		Data:    gin.H{"id": id},
	})
}

// getPostByID 返回文章及内嵌的分类、标签全集
func (a *api) getPostByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gormtool.Response{
			Code:    http.StatusBadRequest,
			Message: "无效的ID",
		})
		return
	}

	post, err := a.posts.FetchPost(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gormtool.Response{
		Code:    http.StatusOK,
		Message: "查询成功",
		Data:    post,
	})
}

func (a *api) updatePost(c *gin.Context) {
	var post models.Post
	_ = a.cruder.UpdateByID(c, &post)
}

func (a *api) deletePost(c *gin.Context) {
	var post models.Post
	_ = a.cruder.DeleteByID(c, &post)
}

// getPostsByCategory 分类不存在返回 404，存在但无文章返回空列表
func (a *api) getPostsByCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gormtool.Response{
			Code:    http.StatusBadRequest,
			Message: "无效的ID",
		})
		return
	}

	posts, err := a.posts.FetchPostsByCategory(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gormtool.Response{
		Code:    http.StatusOK,
		Message: "查询成功",
		Data:    posts,
	})
}

func (a *api) getPostsByTag(c *gin.Context) {
	posts, err := a.posts.FetchPostsByTagSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gormtool.Response{
		Code:    http.StatusOK,
		Message: "查询成功",
		Data:    posts,
	})
}

// resolveTags 独立暴露标签解析，入参为原始标签名数组
func (a *api) resolveTags(c *gin.Context) {
	type payload struct {
		Names []string `json:"names"`
	}
	var req payload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gormtool.Response{
			Code:    http.StatusBadRequest,
			Message: "参数错误",
		})
		return
	}

	ids, err := a.tags.Resolve(c.Request.Context(), req.Names)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gormtool.Response{
		Code:    http.StatusOK,
		Message: "解析成功",
		Data:    gin.H{"ids": ids},
	})
}

// writeServiceError 按错误类别映射 HTTP 状态码
// 未命中是 404 空结果，不混入存储故障；其余失败原样带出错误消息
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrValidation):
		c.JSON(http.StatusBadRequest, gormtool.Response{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, blog.ErrNotFound):
		c.JSON(http.StatusNotFound, gormtool.Response{
			Code:    http.StatusNotFound,
			Message: "记录不存在",
		})
	case errors.Is(err, blog.ErrConstraint):
		c.JSON(http.StatusConflict, gormtool.Response{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gormtool.Response{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}
