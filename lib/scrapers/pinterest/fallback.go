package pinterest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"strings"

	"pinsync/lib/pinstore"
	"pinsync/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const maxFallbackPins = 50

// mineImages is the last resort for pages whose embedded data yielded
// nothing: any cdn-hosted image element with alt text becomes a pin. The
// id is a stable hash of the image url since no native id is derivable,
// and the source url points at the board page itself for the same reason.
// Fallback pins never carry tags.
func mineImages(ctx context.Context, doc *goquery.Document, boardName, boardURL string) []pinstore.Pin {
	ctx, span := tracer.Start(ctx, "mineImages")
	defer span.End()

	var pins []pinstore.Pin
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := img.AttrOr("src", "")
		alt := img.AttrOr("alt", "")
		if !strings.Contains(src, "pinimg.com") || alt == "" {
			return true
		}

		sum := md5.Sum([]byte(src))
		pins = append(pins, pinstore.Pin{
			ID:          "pin_" + hex.EncodeToString(sum[:])[:12],
			Title:       textutil.Truncate(alt, maxTitleLen),
			ImageURL:    src,
			Tags:        []string{},
			Description: textutil.Truncate(alt, maxDescriptionLen),
			SourceURL:   boardURL,
			Board:       boardName,
		})
		return len(pins) < maxFallbackPins
	})

	if len(pins) > 0 {
		slog.DebugContext(ctx, "fell back to image elements", "board", boardName, "pins", len(pins))
	}
	return pins
}
