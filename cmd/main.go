package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"pdd_helper_v1/internal/config"
	"pdd_helper_v1/internal/controller"
	"pdd_helper_v1/internal/model"
	"pdd_helper_v1/internal/repository"
	"pdd_helper_v1/internal/router"
	"pdd_helper_v1/internal/service"
	"pdd_helper_v1/internal/task"
	"pdd_helper_v1/pkg/database"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdd-helper",
		Usage: "拼多多视频上传助手本地控制台",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "宿主配置文件 (TOML)",
				Value:   "helper.toml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd.String("config"))
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		clog.Fatal("启动失败", "err", err)
	}
}

func run(configPath string) error {
	// 1. 宿主配置
	hostCfg, err := config.LoadHostConfig(configPath)
	if err != nil {
		return fmt.Errorf("宿主配置读取失败: %w", err)
	}

	// 2. 初始化数据库（操作日志历史）
	db := database.InitDB(hostCfg.DatabasePath, &model.OpLog{})

	// 3. 初始化依赖
	deps := initDependencies(db, hostCfg)

	// 4. 启动定时任务
	tasks := initTasks(deps, hostCfg)

	// 5. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Config,
		deps.Controllers.Auth,
		deps.Controllers.Schedule,
		deps.Controllers.Status,
		deps.Controllers.Login,
	)

	// 6. 启动服务
	startServer(r, hostCfg.Port, func() {
		tasks.Stop()
		deps.Services.Login.Shutdown()
	})
	return nil
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Config   repository.ConfigRepository
	Schedule repository.ScheduleRepository
	Token    repository.TokenRepository
	OpLog    repository.OpLogRepository
}

// Services 服务集合
type Services struct {
	OpLog    *service.OpLogService
	Auth     *service.AuthService
	Login    *service.LoginSupervisor
	Pipeline *service.PipelineClient
	Status   *service.StatusService
}

// Controllers 控制器集合
type Controllers struct {
	Config   *controller.ConfigController
	Auth     *controller.AuthController
	Schedule *controller.ScheduleController
	Status   *controller.StatusController
	Login    *controller.LoginController
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, hostCfg config.HostConfig) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Config:   repository.NewConfigRepository(hostCfg.DataDir),
		Schedule: repository.NewScheduleRepository(hostCfg.DataDir),
		Token:    repository.NewTokenRepository(hostCfg.DataDir),
		OpLog:    repository.NewOpLogRepository(db),
	}

	// -------- Service 层 --------
	services := &Services{}
	services.OpLog = service.NewOpLogService(repos.OpLog)
	services.Auth = service.NewAuthService(repos.Config, repos.Token, services.OpLog)
	services.Login = service.NewLoginSupervisor(services.OpLog)
	services.Pipeline = service.NewPipelineClient(hostCfg.PipelineBaseURL)
	services.Status = service.NewStatusService(services.Pipeline)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Config:   controller.NewConfigController(repos.Config, services.OpLog),
		Auth:     controller.NewAuthController(services.Auth, repos.Token, services.OpLog),
		Schedule: controller.NewScheduleController(repos.Schedule, services.OpLog),
		Status:   controller.NewStatusController(services.Status, services.Pipeline, services.OpLog),
		Login:    controller.NewLoginController(services.Login, services.OpLog),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// Tasks 任务集合
type Tasks struct {
	Refresh *task.RefreshTask
	Poll    *task.PollTask
}

func (t *Tasks) Stop() {
	t.Refresh.Stop()
	t.Poll.Stop()
}

// initTasks 初始化定时任务
func initTasks(deps *Dependencies, hostCfg config.HostConfig) *Tasks {
	tasks := &Tasks{
		Refresh: task.NewRefreshTask(deps.Services.Auth),
		Poll:    task.NewPollTask(deps.Services.Status, hostCfg.PollIntervalSeconds),
	}
	tasks.Refresh.Start()
	tasks.Poll.Start()
	return tasks
}

// ==================== 服务启动 ====================

// startServer 启动 HTTP 服务并等待退出信号
func startServer(r *gin.Engine, port int, onShutdown func()) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	// 异步启动服务
	go func() {
		clog.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			clog.Fatal("服务启动失败", "err", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	clog.Info("正在关闭服务...")
	onShutdown()

	// 优雅关闭，最多等待 10 秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		clog.Fatal("服务强制关闭", "err", err)
	}
	clog.Info("服务已退出")
}
