// Package importer fetches an external web page and extracts a structured
// recipe draft from it. Extraction is layered: schema.org JSON-LD first,
// then microdata, then a bare <title> fallback. Every field is best-effort;
// only URL validation and the fetch itself can fail the import.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrInvalidURL is returned before any network access when the URL is
	// not safe to fetch.
	ErrInvalidURL = errors.New("invalid import URL")

	// ErrFetchFailed is returned when the target page cannot be retrieved.
	ErrFetchFailed = errors.New("failed to fetch recipe page")
)

const userAgent = "Mozilla/5.0 (compatible; KitchenBuddy/1.0)"

// RecipeDraft is the normalized result of an import. Every field except
// SourceURL may be absent; absent is nil, never an empty placeholder.
type RecipeDraft struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Instructions    *string  `json:"instructions"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Servings        *int     `json:"servings"`
	Ingredients     []string `json:"ingredients"`
	ImageURL        *string  `json:"image_url"`
	SourceURL       string   `json:"source_url"`
}

// Importer imports recipe drafts from external URLs.
type Importer struct {
	client *http.Client
}

// New creates an Importer with a bounded-timeout HTTP client.
func New() *Importer {
	return NewWithClient(&http.Client{
		Timeout: 15 * time.Second,
	})
}

// NewWithClient creates an Importer using the given HTTP client.
func NewWithClient(client *http.Client) *Importer {
	return &Importer{client: client}
}

// ImportFromURL validates the URL, fetches the page and extracts a recipe
// draft. It returns ErrInvalidURL for unsafe URLs and ErrFetchFailed for
// network or HTTP-status failures; malformed page content never fails the
// call, it only leaves fields empty.
func (imp *Importer) ImportFromURL(ctx context.Context, rawURL string) (*RecipeDraft, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	page, err := imp.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	data := extractRecipeJSONLD(doc)
	if data == nil {
		data = extractRecipeMicrodata(doc)
	}

	draft := &RecipeDraft{
		Ingredients: []string{},
		SourceURL:   rawURL,
	}

	if data != nil {
		draft.Title = extractText(data["name"])
		draft.Description = extractText(data["description"])
		draft.Instructions = parseInstructions(data["recipeInstructions"])
		draft.PrepTimeMinutes = parseDuration(data["prepTime"])
		draft.CookTimeMinutes = parseDuration(data["cookTime"])
		draft.Servings = parseServings(data["recipeYield"])
		if ingredients := data["recipeIngredient"]; ingredients != nil {
			draft.Ingredients = parseIngredients(ingredients)
		} else {
			draft.Ingredients = parseIngredients(data["ingredients"])
		}
		draft.ImageURL = parseImageURL(data["image"])
	}

	if draft.Title == nil {
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			draft.Title = &title
		}
	}

	return draft, nil
}

// fetch performs the single GET request for the page. Redirects are
// followed by the client; there are no retries.
func (imp *Importer) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := imp.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}
