package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/holocron/pkg/app/styles"
)

// Pager renders the position of the current page as a bar with a caption.
// It renders nothing when there are no pages.
func Pager(page, total, width int) string {
	if total <= 0 {
		return ""
	}

	prev, next := "‹", "›"
	if page <= 1 {
		prev = " "
	}
	if page >= total {
		next = " "
	}

	caption := fmt.Sprintf("%s Page %d of %d %s", prev, page, total, next)
	return renderBar(page, total, width) + "\n" + styles.MutedStyle.Render(caption)
}

func renderBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.PagerFilledStyle.Render(strings.Repeat("█", filled)) +
		styles.PagerEmptyStyle.Render(strings.Repeat("░", width-filled))
}
