package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ragchat/internal/ai"
	"ragchat/internal/chat"
	"ragchat/internal/config"
	"ragchat/internal/logger"
	"ragchat/internal/rag"
)

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

	if err := logger.Init("warn", "console", "stderr"); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	embedder, err := ai.NewEmbeddingProvider(cfg)
	if err != nil {
		logger.Error("创建向量化客户端失败", zap.Error(err))
		os.Exit(1)
	}
	chatClient, err := ai.NewChatClient(cfg)
	if err != nil {
		logger.Error("创建对话客户端失败", zap.Error(err))
		os.Exit(1)
	}

	answerer := rag.NewAnswerer(rag.NewSearcher(cfg, embedder), chatClient)
	loop := chat.NewLoop(os.Stdin, os.Stdout, func(ctx context.Context, question string) (string, error) {
		return answerer.Answer(ctx, question, rag.DefaultTopK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 中断信号直接结束进程并打印告别语
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n对话已中断,再见!")
		cancel()
		os.Exit(0)
	}()

	if err := loop.Run(ctx); err != nil {
		logger.Error("问答循环异常退出", zap.Error(err))
		os.Exit(1)
	}
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
