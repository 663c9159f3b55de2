// Package frontmatter splits `---` delimited YAML front matter from a
// Markdown sheet and decodes the fields the site reads.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-cheatsheets/internal/yamlutil"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// ErrInvalidFrontMatter wraps YAML decoding failures.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// Front holds the recognised front matter fields. Unknown keys are ignored.
type Front struct {
	Title string
	Slug  string
	Order int
	Date  string
}

type rawFront struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
	Order int    `yaml:"order"`
	Date  any    `yaml:"date"`
}

// Split separates YAML front matter from the Markdown body.
// Without an opening delimiter, had is false and body is the full input.
func Split(content []byte) (front, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		closeEOF := []byte(nl + "---")
		if bytes.HasSuffix(content, closeEOF) {
			end := len(content) - len(closeEOF)
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the front matter fields.
// A document without front matter yields a zero Front and the full body.
func Parse(content []byte) (Front, []byte, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Front{}, nil, err
	}
	if !had || len(bytes.TrimSpace(raw)) == 0 {
		return Front{}, body, nil
	}

	var rf rawFront
	if err := yamlutil.Unmarshal(raw, &rf); err != nil {
		return Front{}, nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	return Front{
		Title: strings.TrimSpace(rf.Title),
		Slug:  strings.TrimSpace(rf.Slug),
		Order: rf.Order,
		Date:  normalizeDate(rf.Date),
	}, body, nil
}

// normalizeDate turns a decoded YAML date into a string. Unquoted dates may
// decode as time.Time.
func normalizeDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(time.RFC3339)
	case string:
		return strings.TrimSpace(d)
	default:
		return strings.TrimSpace(fmt.Sprint(d))
	}
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
