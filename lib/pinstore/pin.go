package pinstore

// Pin is a single catalog entry sourced from a board page.
//
// Field order matches the persisted document so rewrites stay diffable
// against files written by earlier versions of the sync tooling.
type Pin struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	SourceURL   string   `json:"source_url"`
	Board       string   `json:"board"`
}
