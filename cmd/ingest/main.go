package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ragchat/internal/ai"
	"ragchat/internal/config"
	"ragchat/internal/logger"
	"ragchat/internal/rag"
)

// 摄取的 PDF 固定为项目根目录下的 document.pdf
const pdfPath = "document.pdf"

func main() {
	loadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("配置校验失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init("info", "console", "stdout"); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("开始摄取", zap.String("provider", cfg.Provider))

	embedder, err := ai.NewEmbeddingProvider(cfg)
	if err != nil {
		logger.Error("创建向量化客户端失败", zap.Error(err))
		os.Exit(1)
	}

	summary, err := rag.NewIngester(cfg, embedder).Run(context.Background(), pdfPath)
	if err != nil {
		logger.Error("摄取失败", zap.Error(err))
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("摄取完成!")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n写入分块总数: %d\n", summary.Chunks)
	fmt.Printf("Collection: %s\n", summary.Collection)
	fmt.Println("\n现在可以启动问答: go run ./cmd/chat")
}

// loadEnvFile 依次尝试加载当前目录及上级目录的 .env 文件
func loadEnvFile() {
	for _, path := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Printf("加载环境变量文件 %s 失败: %v\n", path, err)
			}
			return
		}
	}
}
