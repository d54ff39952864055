package aiinterface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatResponse_Text(t *testing.T) {
	resp := &ChatResponse{Content: "整段回答"}
	require.Equal(t, "整段回答", resp.Text())

	resp = &ChatResponse{Fragments: []string{"第一段", "第二段", "第三段"}}
	require.Equal(t, "第一段第二段第三段", resp.Text())

	// Content 优先于 Fragments
	resp = &ChatResponse{Content: "整段", Fragments: []string{"片段"}}
	require.Equal(t, "整段", resp.Text())

	var nilResp *ChatResponse
	require.Equal(t, "", nilResp.Text())
	require.Equal(t, "", (&ChatResponse{}).Text())
}
