package pinterest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMineImagesScenario(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<img src="https://i.pinimg.com/x.jpg" alt="Wood carving">
	</body></html>`)

	pins := mineImages(context.Background(), doc, "Carvings", "https://pinterest.com/user/carvings")
	require.Len(t, pins, 1)
	require.Equal(t, "Wood carving", pins[0].Title)
	require.Equal(t, "Wood carving", pins[0].Description)
	require.Equal(t, "https://i.pinimg.com/x.jpg", pins[0].ImageURL)
	require.Equal(t, "https://pinterest.com/user/carvings", pins[0].SourceURL)
	require.Equal(t, "Carvings", pins[0].Board)
	require.Empty(t, pins[0].Tags)
	require.NotNil(t, pins[0].Tags)
	require.True(t, strings.HasPrefix(pins[0].ID, "pin_"))
	require.Len(t, pins[0].ID, len("pin_")+12)
}

func TestMineImagesStableIDs(t *testing.T) {
	markup := `<html><body><img src="https://i.pinimg.com/x.jpg" alt="A"></body></html>`
	first := mineImages(context.Background(), mustDoc(t, markup), "B", "http://b")
	second := mineImages(context.Background(), mustDoc(t, markup), "B", "http://b")
	require.Equal(t, first[0].ID, second[0].ID)
}

func TestMineImagesSkipsUnqualified(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<img src="https://elsewhere.com/y.jpg" alt="Off-host image">
		<img src="https://i.pinimg.com/z.jpg" alt="">
		<img alt="No source at all">
	</body></html>`)

	pins := mineImages(context.Background(), doc, "B", "http://b")
	require.Empty(t, pins)
}

func TestMineImagesCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 80; i++ {
		fmt.Fprintf(&b, `<img src="https://i.pinimg.com/img%d.jpg" alt="image %d">`, i, i)
	}
	b.WriteString("</body></html>")

	pins := mineImages(context.Background(), mustDoc(t, b.String()), "B", "http://b")
	require.Len(t, pins, maxFallbackPins)
	// first 50 in document order
	require.Equal(t, "image 0", pins[0].Title)
	require.Equal(t, "image 49", pins[len(pins)-1].Title)
}
