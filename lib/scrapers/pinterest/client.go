package pinterest

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"pinsync/lib/pinstore"
	"pinsync/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/pinterest")

// Client scrapes public board pages. There is no API access involved,
// only whatever the public page embeds, so everything downstream of a
// fetch is best-effort.
type Client struct {
	http     *resty.Client
	excluded []string
}

type ClientOptions struct {
	// lower-cased substring filters applied to candidate pin text
	ExcludedKeywords []string
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.5")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/pinterest/http")

	excluded := make([]string, len(opts.ExcludedKeywords))
	for i, kw := range opts.ExcludedKeywords {
		excluded[i] = strings.ToLower(kw)
	}

	return &Client{
		http:     client,
		excluded: excluded,
	}, nil
}

// FetchBoard fetches a board page and mines it for pins: embedded
// structured data first, image elements as a fallback when that yields
// nothing. A transport failure or an error status is returned as-is;
// callers are expected to downgrade it to "no pins from this board".
func (c *Client) FetchBoard(ctx context.Context, boardURL, boardName string) ([]pinstore.Pin, error) {
	ctx, span := tracer.Start(ctx, "client:FetchBoard")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(boardURL)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch board page")
		return nil, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "board page returned an error status")
		return nil, fmt.Errorf("fetch board page: %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse board page html")
		return nil, err
	}

	pins := c.minePins(ctx, doc, boardName)
	if len(pins) == 0 {
		pins = mineImages(ctx, doc, boardName, boardURL)
	}
	return pins, nil
}
