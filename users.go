package main

import (
	"github.com/gin-gonic/gin"
	"github.com/studieren/blog_back/gormtool"
	"github.com/studieren/blog_back/models"
)

/*
	------------------------------------------------
	  用户 CRUD（无关联复杂度，全部走通用 cruder）

------------------------------------------------
*/
func (a *api) getAllUsers(c *gin.Context) {
	qb := &gormtool.QueryBuilder{}
	// 可选按名称模糊过滤
	if name := c.Query("name"); name != "" {
		qb.Conditions = append(qb.Conditions, gormtool.QueryCondition{
			Field: "name", Operator: "LIKE", Value: name,
		})
	}
	var users []models.User
	_ = a.cruder.GetAll(c, &users, qb)
}

func (a *api) createUser(c *gin.Context) {
	var user models.User
	_ = a.cruder.Create(c, &user)
}

func (a *api) getUserByID(c *gin.Context) {
	var user models.User
	_ = a.cruder.GetByID(c, &user)
}

// 部分字段更新：只改请求体里给了的字段，没给的保留原值
func (a *api) updateUser(c *gin.Context) {
	var user models.User
	_ = a.cruder.UpdateByID(c, &user)
}

func (a *api) deleteUser(c *gin.Context) {
	var user models.User
	_ = a.cruder.DeleteByID(c, &user)
}
