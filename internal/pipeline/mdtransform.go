package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor defines the contract for Markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SheetPreprocessor normalises sheet sources before conversion.
type SheetPreprocessor struct{}

var _ MarkdownPreprocessor = (*SheetPreprocessor)(nil)

// PreprocessMarkdown strips a byte order mark, normalises line endings and
// compresses blank line runs. ==highlight== syntax is parsed by MarkExtension.
// A cancelled ctx returns content unchanged.
func (p *SheetPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}
