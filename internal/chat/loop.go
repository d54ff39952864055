package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ragchat/internal/logger"
)

// exitKeywords 退出对话的关键词,不区分大小写
var exitKeywords = map[string]bool{
	"sair": true,
	"exit": true,
	"quit": true,
	"q":    true,
}

// AnswerFunc 回答一个问题,由上层注入具体实现
type AnswerFunc func(ctx context.Context, question string) (string, error)

// Loop 交互式问答循环
// 单一状态机: 等待输入 → (退出关键词|空输入|提问) → 回到等待输入
// 回答流程抛出的任何错误在这里捕获并打印,循环继续——这是整个系统
// 唯一的错误恢复点
type Loop struct {
	in        io.Reader
	out       io.Writer
	answer    AnswerFunc
	sessionID string
}

// NewLoop 创建问答循环
func NewLoop(in io.Reader, out io.Writer, answer AnswerFunc) *Loop {
	return &Loop{
		in:        in,
		out:       out,
		answer:    answer,
		sessionID: uuid.New().String(),
	}
}

// Run 阻塞运行问答循环,直到输入退出关键词、输入流结束或 ctx 取消
func (l *Loop) Run(ctx context.Context) error {
	l.printHeader()

	scanner := bufio.NewScanner(l.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprintln(l.out, strings.Repeat("-", 60))
		fmt.Fprint(l.out, "\n请输入你的问题: ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			// 输入流结束
			fmt.Fprintln(l.out, "\n再见!")
			return nil
		}

		if err := ctx.Err(); err != nil {
			fmt.Fprintln(l.out, "\n对话已中断,再见!")
			return nil
		}

		input := strings.TrimSpace(scanner.Text())

		if exitKeywords[strings.ToLower(input)] {
			fmt.Fprintln(l.out, "程序结束,再见!")
			return nil
		}
		if input == "" {
			fmt.Fprintln(l.out, "请输入有效的问题。")
			continue
		}

		fmt.Fprintf(l.out, "\n问题: %s\n", input)
		fmt.Fprintln(l.out, "\n处理中...")
		logger.Debug("收到提问",
			zap.String("session_id", l.sessionID),
			zap.Int("question_len", len(input)),
		)

		answer, err := l.answer(ctx, input)
		if err != nil {
			fmt.Fprintf(l.out, "\n处理问题时出错: %v\n", err)
			fmt.Fprintln(l.out, "请重试,或检查配置。")
			continue
		}

		fmt.Fprintf(l.out, "\n回答: %s\n\n", answer)
	}
}

func (l *Loop) printHeader() {
	fmt.Fprintln(l.out, strings.Repeat("=", 60))
	fmt.Fprintln(l.out, "语义检索问答")
	fmt.Fprintln(l.out, "输入问题开始对话,输入 sair/exit/quit/q 结束。")
	fmt.Fprintln(l.out, strings.Repeat("=", 60))
}
