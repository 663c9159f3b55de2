package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Markup emitted by the content transform.
const (
	referenceOpen  = "<p class='reference'>See: <a target='_blank'"
	columnOpen     = "<div class='col-2'>"
	anchorParaEnd  = "</a></p>"
	referenceClose = "</a></p></div>"
)

var (
	// A "See:" paragraph, optionally right after the close of a code block.
	referencePattern = regexp.MustCompile(`(?:</div>\s*)?<p>See: <a`)

	// A {col-1/2} or {col-2/2} marker, optionally alone in a paragraph,
	// followed by everything up to the nearest </div>.
	columnPattern = regexp.MustCompile(`(?s)(?:<p>)?\{col-([12])/2\}(?:</p>)?\s*(.*?</div>)`)
)

// ContentTransformer defines the contract for post-processing sheet HTML.
type ContentTransformer interface {
	Transform(ctx context.Context, htmlContent string) (string, error)
}

// RuleTransformer applies reference styling and column layout.
type RuleTransformer struct{}

var _ ContentTransformer = (*RuleTransformer)(nil)

// Transform runs Transform on htmlContent unless ctx is already done.
func (t *RuleTransformer) Transform(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Transform(htmlContent), nil
}

// Transform applies reference styling, then column layout.
// The order is fixed: reference styling adds </div> closes that column
// matching then sees.
func Transform(htmlContent string) string {
	return ApplyColumnLayout(ApplyReferenceStyling(htmlContent))
}

// ApplyReferenceStyling marks "See: <link>" paragraphs as references opening
// in a new tab.
//
// A </div> right before the paragraph is consumed and every "</a></p>" from
// the first reference onwards gains a trailing </div>, so a reference written
// after a code block ends up inside that block's container. Input without a
// reference is returned unchanged.
func ApplyReferenceStyling(htmlContent string) string {
	loc := referencePattern.FindStringIndex(htmlContent)
	if loc == nil {
		return htmlContent
	}

	head, tail := htmlContent[:loc[0]], htmlContent[loc[0]:]
	tail = referencePattern.ReplaceAllLiteralString(tail, referenceOpen)
	tail = strings.ReplaceAll(tail, anchorParaEnd, referenceClose)
	return head + tail
}

// ApplyColumnLayout wraps the block following each column marker in a
// col-2 container and strips the marker.
//
// The block runs up to the nearest </div>. A {col-2/2} marker closes the
// second half of a pair and emits one more </div> for the pair container.
// A marker with no </div> after it is left in place. Nested markers are not
// supported: the inner marker ends up inside the outer block untouched.
func ApplyColumnLayout(htmlContent string) string {
	if !strings.Contains(htmlContent, "{col-") {
		return htmlContent
	}

	return columnPattern.ReplaceAllStringFunc(htmlContent, func(match string) string {
		sub := columnPattern.FindStringSubmatch(match)
		wrapped := columnOpen + sub[2] + "</div>"
		if sub[1] == "2" {
			wrapped += "</div>"
		}
		return wrapped
	})
}
