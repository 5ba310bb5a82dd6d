package main

// ubuntu 后台执行的方法 nohup ./blog_back > blog_back.log 2>&1 &
import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/studieren/blog_back/blog"
	"github.com/studieren/blog_back/config"
	"github.com/studieren/blog_back/gormtool"
	"github.com/studieren/blog_back/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// api 汇聚全部处理函数的依赖，统一在 main 里构造并注入
type api struct {
	cruder *gormtool.CRUDTool
	posts  *blog.PostService
	tags   *blog.TagResolver
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var zl *zap.Logger
	if cfg.Env == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	// TranslateError: 唯一索引冲突翻译成 gorm.ErrDuplicatedKey，便于分类上报
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
	if err != nil {
		sugar.Fatalw("打开数据库失败", "path", cfg.SQLitePath, "error", err)
	}
	// 自动迁移：四张实体表 + post_tags 连接表
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Tag{}, &models.Post{}); err != nil {
		sugar.Fatalw("自动迁移失败", "error", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	cruder := gormtool.NewCRUDTool(db, rdb, gormtool.NewZapLogger(sugar))
	resolver := blog.NewTagResolver(db)
	a := &api{
		cruder: cruder,
		posts:  blog.NewPostService(db, resolver),
		tags:   resolver,
	}

	r := gin.Default()
	r.Use(cors.Default())
	registerRoutes(r, a)

	sugar.Infow("服务启动", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		sugar.Fatalw("服务退出", "error", err)
	}
}

func registerRoutes(r *gin.Engine, a *api) {
	g := r.Group("/api")

	// 用户
	g.GET("/users", a.getAllUsers)
	g.POST("/users", a.createUser)
	g.GET("/users/:id", a.getUserByID)
	g.PUT("/users/:id", a.updateUser)
	g.DELETE("/users/:id", a.deleteUser)

	// 分类
	g.GET("/categories", a.getAllCategories)
	g.POST("/categories", a.createCategory)
	g.GET("/categories/:id", a.getCategoryByID)
	g.PUT("/categories/:id", a.updateCategory)
	g.DELETE("/categories/:id", a.deleteCategory)

	// 文章（核心：发文流程 + 关联读取）
	g.GET("/posts", a.getAllPosts)
	g.POST("/posts", a.createPost)
	g.GET("/posts/:id", a.getPostByID)
	g.PUT("/posts/:id", a.updatePost)
	g.DELETE("/posts/:id", a.deletePost)
	g.GET("/posts/category/:id", a.getPostsByCategory)
	g.GET("/posts/tag/:slug", a.getPostsByTag)

	// 标签解析单独暴露，便于独立调用
	g.POST("/tags/resolve", a.resolveTags)

	// 指标监控
	g.GET("/metrics", a.cruder.GetMetrics)
}
