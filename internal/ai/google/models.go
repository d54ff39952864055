package google

// Gemini REST API 请求/响应结构
// 参考 generativelanguage.googleapis.com v1beta

// GeminiPart 内容片段
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent 一条消息的内容
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GenerationConfig 生成参数
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateContentRequest generateContent 请求体
type GenerateContentRequest struct {
	Contents         []GeminiContent   `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiCandidate 候选回答
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

// GenerateContentResponse generateContent 响应体
type GenerateContentResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// EmbedContentRequest embedContent 请求体
type EmbedContentRequest struct {
	Model   string        `json:"model"`
	Content GeminiContent `json:"content"`
}

// ContentEmbedding 向量值
type ContentEmbedding struct {
	Values []float32 `json:"values"`
}

// EmbedContentResponse embedContent 响应体
type EmbedContentResponse struct {
	Embedding ContentEmbedding `json:"embedding"`
}

// BatchEmbedContentsRequest batchEmbedContents 请求体
type BatchEmbedContentsRequest struct {
	Requests []EmbedContentRequest `json:"requests"`
}

// BatchEmbedContentsResponse batchEmbedContents 响应体
type BatchEmbedContentsResponse struct {
	Embeddings []ContentEmbedding `json:"embeddings"`
}
