package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"hiremind-go/internal/config"
	"hiremind-go/internal/extractor"
	"hiremind-go/internal/logger"
	"hiremind-go/internal/matcher"
	"hiremind-go/internal/processor"
	"hiremind-go/internal/storage"

	"github.com/spf13/pflag"
)

// 对库中全部候选人记录重新提取文本并评分的离线工具
// 与HTTP服务的 /reprocess 接口共用同一条管线
func main() {
	var configPath string
	var timeout time.Duration
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.DurationVar(&timeout, "timeout", 10*time.Minute, "批量重算超时时间")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}
	logger.Init(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()

	var pdfBackend extractor.PDFBackend
	switch cfg.Matcher.PDFBackend {
	case "native":
		pdfBackend = extractor.NewNativePDFBackend()
	default:
		pdfBackend, err = extractor.NewEinoPDFBackend(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("初始化PDF解析后端失败")
		}
	}

	pipeline, err := processor.NewPipeline(&processor.Components{
		Extractor: extractor.NewTextExtractor(pdfBackend),
		Tagger:    matcher.NewSkillTagger(cfg.Matcher.SkillVocabulary),
		Scorer:    matcher.NewTFIDFScorer(cfg.Matcher.FallbackEpsilon),
		Storage:   storageManager,
	}, &processor.Settings{
		ExcerptLength: cfg.Matcher.ExcerptLength,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化匹配管线失败")
	}

	report, err := pipeline.ReprocessAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("批量重算失败")
	}

	fmt.Printf("批次 %s 完成: 已更新 %d 条, 原件缺失 %d 条\n",
		report.BatchID, len(report.Updated), len(report.Missing))
	for _, uid := range report.Missing {
		fmt.Printf("  缺失原件: %s\n", uid)
	}

	if len(report.Missing) > 0 {
		os.Exit(1)
	}
}
