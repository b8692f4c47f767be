package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hiremind-go/internal/api/handler"
	"hiremind-go/internal/api/router"
	"hiremind-go/internal/config"
	"hiremind-go/internal/extractor"
	appLogger "hiremind-go/internal/logger"
	"hiremind-go/internal/matcher"
	"hiremind-go/internal/processor"
	"hiremind-go/internal/storage"
	"hiremind-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	// 找不到配置文件时LoadConfig返回默认配置，原型的开箱即用行为；
	// 报错意味着配置文件存在但内容有问题
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := shutdownTracing(shutdownCtx); err != nil {
			glog.Warnf("关闭链路追踪失败: %v", err)
		}
	}()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	pipeline, err := buildPipeline(ctx, cfg, storageManager)
	if err != nil {
		glog.Fatalf("初始化匹配管线失败: %v", err)
	}
	glog.Info("匹配管线初始化成功")

	candidateHandler := handler.NewCandidateHandler(cfg, pipeline)

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(cfg.Server.MaxUploadSizeMB<<20),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	router.RegisterRoutes(h, candidateHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// buildPipeline 按配置组装匹配管线，PDF后端可在eino与native之间切换
func buildPipeline(ctx context.Context, cfg *config.Config, storageManager *storage.Storage) (*processor.Pipeline, error) {
	var pdfBackend extractor.PDFBackend
	switch cfg.Matcher.PDFBackend {
	case "native":
		pdfBackend = extractor.NewNativePDFBackend()
		glog.Info("使用native PDF解析后端")
	default:
		einoBackend, err := extractor.NewEinoPDFBackend(ctx)
		if err != nil {
			return nil, err
		}
		pdfBackend = einoBackend
		glog.Info("使用eino PDF解析后端")
	}

	return processor.NewPipeline(&processor.Components{
		Extractor: extractor.NewTextExtractor(pdfBackend),
		Tagger:    matcher.NewSkillTagger(cfg.Matcher.SkillVocabulary),
		Scorer:    matcher.NewTFIDFScorer(cfg.Matcher.FallbackEpsilon),
		Storage:   storageManager,
	}, &processor.Settings{
		ExcerptLength: cfg.Matcher.ExcerptLength,
	})
}

// initLogger 初始化应用日志并把Hertz的hlog桥接到zerolog
func initLogger(cfg *config.Config) {
	appLogger.Init(cfg.Logger)
	appLogger.Logger = appLogger.Logger.With().
		Str("app", "hiremind").
		Logger()

	glog.SetLogger(hertzadapter.From(appLogger.Logger))
	if level, err := parseHlogLevel(cfg.Logger.Level); err == nil {
		glog.SetLevel(level)
	}
}

func parseHlogLevel(level string) (glog.Level, error) {
	switch level {
	case "trace":
		return glog.LevelTrace, nil
	case "debug":
		return glog.LevelDebug, nil
	case "info", "":
		return glog.LevelInfo, nil
	case "warn":
		return glog.LevelWarn, nil
	case "error":
		return glog.LevelError, nil
	default:
		return glog.LevelInfo, nil
	}
}
