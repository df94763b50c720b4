package router

import (
	"net/http"
	"time"

	"finanzas/api"
	"finanzas/app"
	"finanzas/config"
	_ "finanzas/docs"
	"finanzas/export"
	"finanzas/middleware"
	"finanzas/session"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖
type Deps struct {
	App    *app.Coordinator
	Guard  *session.Guard
	Export export.Source
}

// CookieOptions 由配置生成会话 cookie 选项
func CookieOptions(cfg *config.Config) session.CookieOptions {
	return session.CookieOptions{
		Secret: []byte(cfg.Auth.CookieSecret),
		MaxAge: time.Duration(cfg.Auth.CookieMaxAge) * time.Second,
		Secure: cfg.Server.Mode == gin.ReleaseMode,
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/swagger/index.html")
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cookie := CookieOptions(cfg)
	console := api.NewConsoleHandler(deps.App)
	sessionHandler := api.NewSessionHandler(deps.Guard, cookie, deps.App)
	exportHandler := api.NewExportHandler(deps.Export)

	v1 := r.Group("/api/v1")
	{
		// 会话（无需登录）
		s := v1.Group("/session")
		{
			s.GET("", sessionHandler.Status)
			s.POST("/login", middleware.LoginRateLimit(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window), sessionHandler.Login)
			s.POST("/logout", sessionHandler.Logout)
		}

		// 需要登录的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionGate(deps.Guard, cookie))
		{
			authorized.GET("/view", console.View)
			authorized.PUT("/filter", console.SetFilter)
			authorized.POST("/sections/:name", console.Navigate)
			authorized.POST("/dashboard/refresh", console.RefreshDashboard)
			authorized.POST("/reload", console.Reload)
			authorized.POST("/admin/:action", console.ConfigAction)

			gastos := authorized.Group("/gastos")
			{
				gastos.GET("", console.ListExpenses)
				gastos.POST("", console.SubmitExpense)
				gastos.POST("/cancelar", console.CancelExpense)
				gastos.POST("/:id/editar", console.EditExpense)
				gastos.DELETE("/:id", console.DeleteExpense)
			}

			ingresos := authorized.Group("/ingresos")
			{
				ingresos.GET("", console.ListIncomes)
				ingresos.POST("", console.SubmitIncome)
				ingresos.POST("/cancelar", console.CancelIncome)
				ingresos.POST("/:id/editar", console.EditIncome)
				ingresos.DELETE("/:id", console.DeleteIncome)
			}

			prestamos := authorized.Group("/prestamos")
			{
				prestamos.GET("", console.ListLoans)
				prestamos.POST("", console.CreateLoan)
				prestamos.POST("/:id/abono", console.PrefillInstallment)
				prestamos.DELETE("/:id", console.DeleteLoan)
			}

			authorized.GET("/objetivo", console.GetGoal)
			authorized.POST("/objetivo", console.CreateGoal)
			authorized.POST("/categorias", console.CreateCategory)
			authorized.POST("/fuentes", console.CreateSource)

			// 导出相关
			exp := authorized.Group("/export")
			{
				exp.GET("/csv", exportHandler.ExportCSV)
				exp.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
// 会话依赖 cookie，因此回显请求来源而不是使用通配符
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
