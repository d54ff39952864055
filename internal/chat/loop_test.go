package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ragchat/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stderr"); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func runLoop(t *testing.T, input string, answer AnswerFunc) string {
	t.Helper()
	var out bytes.Buffer
	loop := NewLoop(strings.NewReader(input), &out, answer)
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func countingAnswer(calls *int, reply string, err error) AnswerFunc {
	return func(ctx context.Context, question string) (string, error) {
		*calls++
		if err != nil {
			return "", err
		}
		return reply, nil
	}
}

func TestLoop_ExitKeywords(t *testing.T) {
	for _, keyword := range []string{"sair", "exit", "quit", "q", "SAIR", "Exit"} {
		t.Run(keyword, func(t *testing.T) {
			calls := 0
			out := runLoop(t, keyword+"\n", countingAnswer(&calls, "回答", nil))
			require.Zero(t, calls, "退出关键词不应触发回答流程")
			require.Contains(t, out, "再见")
		})
	}
}

func TestLoop_EmptyInputReprompts(t *testing.T) {
	calls := 0
	out := runLoop(t, "\n   \nsair\n", countingAnswer(&calls, "回答", nil))
	require.Zero(t, calls)
	require.Contains(t, out, "请输入有效的问题")
}

func TestLoop_AnswersQuestion(t *testing.T) {
	calls := 0
	out := runLoop(t, "公司营收是多少?\nsair\n", countingAnswer(&calls, "一千万。", nil))
	require.Equal(t, 1, calls)
	require.Contains(t, out, "回答: 一千万。")
}

func TestLoop_ErrorRecovered(t *testing.T) {
	// 回答失败只打印错误,循环继续接收下一个问题
	calls := 0
	answerErr := errors.New("向量检索失败")
	answer := func(ctx context.Context, question string) (string, error) {
		calls++
		if calls == 1 {
			return "", answerErr
		}
		return "第二次成功。", nil
	}

	out := runLoop(t, "第一问\n第二问\nsair\n", answer)
	require.Equal(t, 2, calls)
	require.Contains(t, out, "处理问题时出错")
	require.Contains(t, out, "向量检索失败")
	require.Contains(t, out, "回答: 第二次成功。")
}

func TestLoop_EOFTerminates(t *testing.T) {
	calls := 0
	out := runLoop(t, "", countingAnswer(&calls, "回答", nil))
	require.Zero(t, calls)
	require.Contains(t, out, "再见")
}
