package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AI 提供商取值
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// envKeys 配置所使用的全部环境变量
var envKeys = []string{
	"AI_PROVIDER",
	"PGVECTOR_URL",
	"PGVECTOR_COLLECTION",
	"OPENAI_API_KEY",
	"OPENAI_EMBEDDING_MODEL",
	"OPENAI_LLM_MODEL",
	"GOOGLE_API_KEY",
	"GOOGLE_EMBEDDING_MODEL",
	"GOOGLE_LLM_MODEL",
}

// Config 应用配置,进程启动时从环境变量加载一次,之后不再变化
type Config struct {
	Provider           string // openai 或 google
	PGVectorURL        string // 向量库连接串
	PGVectorCollection string // 向量库集合名

	OpenAIAPIKey         string
	OpenAIEmbeddingModel string
	OpenAILLMModel       string

	GoogleAPIKey         string
	GoogleEmbeddingModel string
	GoogleLLMModel       string
}

// Load 从环境变量加载配置
// AI_PROVIDER 默认为 openai,比较时统一转为小写
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", key, err)
		}
	}
	v.SetDefault("AI_PROVIDER", ProviderOpenAI)

	cfg := &Config{
		Provider:             strings.ToLower(v.GetString("AI_PROVIDER")),
		PGVectorURL:          v.GetString("PGVECTOR_URL"),
		PGVectorCollection:   v.GetString("PGVECTOR_COLLECTION"),
		OpenAIAPIKey:         v.GetString("OPENAI_API_KEY"),
		OpenAIEmbeddingModel: v.GetString("OPENAI_EMBEDDING_MODEL"),
		OpenAILLMModel:       v.GetString("OPENAI_LLM_MODEL"),
		GoogleAPIKey:         v.GetString("GOOGLE_API_KEY"),
		GoogleEmbeddingModel: v.GetString("GOOGLE_EMBEDDING_MODEL"),
		GoogleLLMModel:       v.GetString("GOOGLE_LLM_MODEL"),
	}
	return cfg, nil
}

// Validate 校验当前所选提供商必需的字段是否齐全
// 未选中提供商的字段不参与校验,任何外部调用发生之前执行
func (c *Config) Validate() error {
	if c.Provider != ProviderOpenAI && c.Provider != ProviderGoogle {
		return fmt.Errorf("AI_PROVIDER 取值无效: %s,仅支持 openai 或 google", c.Provider)
	}

	if c.PGVectorURL == "" {
		return missingEnvError("PGVECTOR_URL")
	}
	if c.PGVectorCollection == "" {
		return missingEnvError("PGVECTOR_COLLECTION")
	}

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return missingEnvError("OPENAI_API_KEY")
		}
		if c.OpenAIEmbeddingModel == "" {
			return missingEnvError("OPENAI_EMBEDDING_MODEL")
		}
		if c.OpenAILLMModel == "" {
			return missingEnvError("OPENAI_LLM_MODEL")
		}
	case ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return missingEnvError("GOOGLE_API_KEY")
		}
		if c.GoogleEmbeddingModel == "" {
			return missingEnvError("GOOGLE_EMBEDDING_MODEL")
		}
		if c.GoogleLLMModel == "" {
			return missingEnvError("GOOGLE_LLM_MODEL")
		}
	}

	return nil
}

func missingEnvError(key string) error {
	return fmt.Errorf("环境变量 %s 未设置", key)
}
