package pinterest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"pinsync/lib/htmlutil"
	"pinsync/lib/pinstore"
	"pinsync/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// depth ceiling for the embedded-data search, bounds traversal cost on
// pathological or self-referential payloads
const maxSearchDepth = 10

const maxTitleLen = 100
const maxDescriptionLen = 200

// highest-to-lowest resolution; the first key present decides, even when
// its url turns out to be empty
var imageQualityKeys = []string{"orig", "736x", "564x", "474x", "236x"}

// Per-candidate construction failures. These are values rather than
// swallowed panics so callers and tests can tell rejection reasons apart.
var (
	ErrMissingID = errors.New("candidate node has no usable id")
	ErrExcluded  = errors.New("pin text matches an excluded keyword")
	ErrNoImage   = errors.New("candidate node has no resolvable image url")
)

// minePins extracts pins from the json blobs the page embeds in
// script[type="application/json"] tags. Their shape varies between page
// versions, so instead of fixed paths the decoded value is searched
// recursively for anything pin-shaped.
func (c *Client) minePins(ctx context.Context, doc *goquery.Document, boardName string) []pinstore.Pin {
	ctx, span := tracer.Start(ctx, "minePins")
	defer span.End()

	var pins []pinstore.Pin
	for _, script := range doc.Find(`script[type="application/json"]`).Nodes {
		var root any
		err := json.Unmarshal([]byte(htmlutil.GetText(script)), &root)
		if err != nil {
			continue
		}
		c.searchPins(ctx, root, boardName, 0, &pins)
	}
	return pins
}

// searchPins walks an arbitrarily nested decoded json value depth-first.
// A mapping carrying both "id" and "images" is taken as a pin candidate
// and is not searched inside, whether or not construction succeeds.
func (c *Client) searchPins(ctx context.Context, node any, boardName string, depth int, out *[]pinstore.Pin) {
	if depth > maxSearchDepth {
		return
	}

	switch v := node.(type) {
	case map[string]any:
		_, hasID := v["id"]
		_, hasImages := v["images"]
		if hasID && hasImages {
			pin, err := c.pinFromNode(v, boardName)
			if err != nil {
				slog.DebugContext(ctx, "skipping candidate node", "reason", err)
				return
			}
			*out = append(*out, pin)
			return
		}
		for _, child := range v {
			c.searchPins(ctx, child, boardName, depth+1, out)
		}
	case []any:
		for _, item := range v {
			c.searchPins(ctx, item, boardName, depth+1, out)
		}
	}
}

// pinFromNode converts one candidate mapping into a pin, or reports why
// it cannot contribute one.
func (c *Client) pinFromNode(node map[string]any, boardName string) (pinstore.Pin, error) {
	id := stringField(node, "id")
	if id == "" {
		return pinstore.Pin{}, ErrMissingID
	}

	title := stringField(node, "title")
	if title == "" {
		title = stringField(node, "grid_title")
	}
	description := stringField(node, "description")

	fullText := strings.ToLower(title + " " + description)
	for _, keyword := range c.excluded {
		if keyword != "" && strings.Contains(fullText, keyword) {
			return pinstore.Pin{}, ErrExcluded
		}
	}

	imageURL := resolveImageURL(node["images"])
	if imageURL == "" {
		return pinstore.Pin{}, ErrNoImage
	}

	if title == "" {
		title = synthesizeTitle(description, boardName)
	}

	return pinstore.Pin{
		ID:          "pin_" + id,
		Title:       textutil.Truncate(title, maxTitleLen),
		ImageURL:    imageURL,
		Tags:        nativeTags(node),
		Description: textutil.Truncate(description, maxDescriptionLen),
		SourceURL:   "https://pinterest.com/pin/" + id,
		Board:       boardName,
	}, nil
}

// ids come back as strings on most page versions but as bare numbers on
// some, so both are accepted
func stringField(node map[string]any, key string) string {
	switch v := node[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func resolveImageURL(images any) string {
	m, ok := images.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range imageQualityKeys {
		variant, ok := m[key]
		if !ok {
			continue
		}
		vm, _ := variant.(map[string]any)
		url, _ := vm["url"].(string)
		return url
	}
	return ""
}

// synthesizeTitle derives a title when the source has none: the first
// sentence of the description, or a board-name placeholder when the
// description is empty too.
func synthesizeTitle(description, boardName string) string {
	if description != "" {
		firstSentence, _, _ := strings.Cut(description, ".")
		return strings.TrimSpace(textutil.Truncate(firstSentence, 50))
	}
	return fmt.Sprintf("Material dari %s", boardName)
}
