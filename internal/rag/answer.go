package rag

import (
	"context"
	"fmt"
	"strings"

	"ragchat/pkg/aiinterface"
)

// RefusalAnswer 上下文中不包含答案时模型必须返回的固定回复
const RefusalAnswer = "I do not have the necessary information to answer your question"

// answerPromptTemplate 回答合成的固定提示词模板
// 严格要求模型仅依据检索到的上下文作答
const answerPromptTemplate = `CONTEXT:
%s

RULES:
- Answer only based on the CONTEXT.
- If the information is not explicitly present in the CONTEXT, reply:
  "%s"
- Never invent facts or use outside knowledge.
- Never produce opinions or interpretations beyond what is written.

EXAMPLES OF OUT-OF-CONTEXT QUESTIONS:
Question: "What is the capital of France?"
Answer: "%s"

Question: "How many customers did we have in 2024?"
Answer: "%s"

Question: "Do you think this is good or bad?"
Answer: "%s"

USER QUESTION:
%s

ANSWER THE "USER QUESTION":`

// BuildPrompt 将检索上下文与用户问题填入固定模板
func BuildPrompt(query, contextBlock string) string {
	return fmt.Sprintf(answerPromptTemplate,
		contextBlock,
		RefusalAnswer, RefusalAnswer, RefusalAnswer, RefusalAnswer,
		query,
	)
}

// Answerer 回答合成流水线: 检索 → 拼接上下文 → 组装提示词 → 单轮对话
type Answerer struct {
	searcher *Searcher
	chat     aiinterface.ChatClient
}

// NewAnswerer 创建回答合成流水线
func NewAnswerer(searcher *Searcher, chat aiinterface.ChatClient) *Answerer {
	return &Answerer{
		searcher: searcher,
		chat:     chat,
	}
}

// Answer 基于检索上下文回答问题,返回值始终为字符串
// 对话客户端的错误原样向上传递,不包装也不重试
func (a *Answerer) Answer(ctx context.Context, query string, topK int) (string, error) {
	results, err := a.searcher.Search(ctx, query, topK)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(results))
	for _, result := range results {
		texts = append(texts, result.Chunk.Content)
	}
	contextBlock := strings.Join(texts, "\n\n")

	prompt := BuildPrompt(query, contextBlock)

	resp, err := a.chat.Invoke(ctx, prompt)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
