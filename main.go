package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"finanzas/app"
	"finanzas/config"
	"finanzas/gateway"
	"finanzas/router"
	"finanzas/session"
)

// @title Finanzas API
// @version 1.0
// @description Consola de finanzas personales sobre la hoja de cálculo remota
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("finanzas v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()
	logger := config.GetLogger()

	client := gateway.NewClient(cfg.Remote.URL,
		gateway.WithTimeout(cfg.Remote.Timeout),
		gateway.WithUserAgent(cfg.Remote.UserAgent),
		gateway.WithLogger(logger),
	)

	coord := app.New(client, app.Options{
		LoanLinks: cfg.Features.LoanLinks,
		Logger:    logger,
	})
	defer coord.Close()

	// 网页端的标记存储按请求绑定 cookie，这里不设置
	guard, err := session.NewGuard(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.FlagKey, nil, coord.Status())
	if err != nil {
		log.Fatalf("初始化登录失败: %v", err)
	}

	// 预加载类别、来源、目标、借贷与仪表盘
	go func() {
		ctx := context.Background()
		coord.LoadInitialData(ctx)
		coord.RefreshDashboard(ctx)
	}()

	// 设置路由
	r := router.SetupRouter(cfg, router.Deps{App: coord, Guard: guard, Export: client})

	// 启动服务器
	logger.Infof("==========================================")
	logger.Infof("  💰 Finanzas iniciado")
	logger.Infof("==========================================")
	logger.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	logger.Infof("  API:      http://localhost%s/api/v1/", cfg.Server.Port)
	logger.Infof("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
