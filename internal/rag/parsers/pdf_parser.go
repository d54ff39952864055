package parsers

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"go.uber.org/zap"

	"ragchat/internal/logger"
)

// PageText 单页提取出的文本
type PageText struct {
	Page int    // 页码,从 1 开始
	Text string // 该页纯文本内容
}

// PDFParser PDF 文件解析器,按页提取文本
type PDFParser struct{}

// NewPDFParser 创建 PDF 解析器
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// ParseFile 解析 PDF 文件,返回按页序排列的文本
// 文件不存在时返回错误;单页解析失败记录告警后跳过该页
func (p *PDFParser) ParseFile(path string) ([]PageText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("PDF 文件不存在: %s,请将 document.pdf 放到项目根目录", path)
		}
		return nil, fmt.Errorf("读取 PDF 文件失败: %w", err)
	}

	// pdf.NewReader 需要 ReaderAt
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开 PDF 失败: %w", err)
	}

	pages := make([]PageText, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("解析 PDF 页面失败,跳过该页", zap.Int("page", i), zap.Error(err))
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, PageText{Page: i, Text: text})
	}

	return pages, nil
}
