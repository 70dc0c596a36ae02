package main

import (
	"ariavt-server/internal/config"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/db"
	"ariavt-server/internal/di"
	"ariavt-server/internal/logging"
	"ariavt-server/internal/platform/service"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

var (
	flagConfigDir  string
	flagRoutesFile string
)

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "config", "配置文件所在目录")
	exportRoutesCmd.Flags().StringVarP(&flagRoutesFile, "output", "o", "routes.json", "路由导出文件，- 表示标准输出")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportRoutesCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("❌ 运行失败")
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "ariavt-server",
	Short:             "Image annotation and analysis backend",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
	RunE:              runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务（默认命令）",
	RunE:  runServe,
}

var exportRoutesCmd = &cobra.Command{
	Use:   "export-routes",
	Short: "导出全部路由为 JSON 后退出",
	RunE:  runExportRoutes,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本信息",
	// 不需要加载配置
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func initRuntime(_ *cobra.Command, _ []string) error {
	config.InitConfig(flagConfigDir)
	cfg := config.Get()
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)
	return nil
}

// buildEngine 组装依赖、初始化配置项与默认管理员，返回注册好路由的 gin 引擎。
func buildEngine(ctx context.Context, gdb *gorm.DB, cfg config.Config) (*gin.Engine, func(), error) {
	app, cleanup, err := di.InitializeApplication(ctx, gdb, cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := app.Service.InitializeSettings(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("初始化配置项失败: %w", err)
	}
	if err := app.Modules.User.Service.EnsureBootstrapAdmin(ctx, cfg.Admin); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("创建默认管理员失败: %w", err)
	}

	r := gin.New()
	app.Router.Init(r)
	return r, cleanup, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()
	db.InitDB()
	defer closeDB(db.DB)
	defer func() {
		if err := service.CloseRedisClient(); err != nil {
			log.WithError(err).Warn("⚠️ 关闭 Redis 失败")
		}
	}()

	r, cleanup, err := buildEngine(ctx, db.DB, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printWelcomeMessage(cmd.OutOrStdout(), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("🚀 服务启动成功，运行在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("🛑 正在关闭服务...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("服务强制关闭: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("✅ 服务已退出")
	return nil
}

func runExportRoutes(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()
	db.InitDB()
	defer closeDB(db.DB)

	r, cleanup, err := buildEngine(cmd.Context(), db.DB, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if flagRoutesFile == "-" {
		return exportRoutes(r, cmd.OutOrStdout())
	}

	file, err := os.Create(flagRoutesFile)
	if err != nil {
		return fmt.Errorf("创建导出文件失败: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := exportRoutes(r, file); err != nil {
		return err
	}
	log.Infof("✅ 路由已成功导出到 %s", flagRoutesFile)
	return nil
}

type routeInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

func exportRoutes(r *gin.Engine, w io.Writer) error {
	routes := r.Routes()
	exportList := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, routeInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportList); err != nil {
		return fmt.Errorf("导出路由失败: %w", err)
	}
	return nil
}

func closeDB(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s %s\n", consts.ApplicationName, consts.ApplicationVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(w, "go:     %s\n", info.GoVersion)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			_, _ = fmt.Fprintf(w, "commit: %s\n", s.Value)
		case "vcs.time":
			_, _ = fmt.Fprintf(w, "date:   %s\n", s.Value)
		}
	}
}

func printWelcomeMessage(w io.Writer, cfg config.Config) {
	storageType := cfg.Storage.Type
	if storageType == "" {
		storageType = "local"
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, " ┌───────────────────────────────────────────────────────┐")
	_, _ = fmt.Fprintf(w, " │   🚀  %s\n", consts.ApplicationName)
	_, _ = fmt.Fprintln(w, " ├───────────────────────────────────────────────────────┤")
	_, _ = fmt.Fprintf(w, " │   📦  版本     : %s\n", consts.ApplicationVersion)
	_, _ = fmt.Fprintf(w, " │   🗄️  存储     : %s\n", storageType)
	_, _ = fmt.Fprintf(w, " │   🔥  服务端口 : %s\n", cfg.Server.Port)
	_, _ = fmt.Fprintln(w, " └───────────────────────────────────────────────────────┘")
	_, _ = fmt.Fprintln(w)
}
