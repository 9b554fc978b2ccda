// Package wikipedia is a client for the wikimedia rest api. It fetches the most viewed
// articles of a project and their summaries, all requests share a single rate limiter.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/wikifeedia/pkg/domain"
)

// defaults for Opts
const (
	DefaultWikipediaURL = "https://%s.wikipedia.org/api/rest_v1"
	DefaultWikimediaURL = "https://wikimedia.org/api/rest_v1"
	DefaultRateLimit    = 75
	DefaultBurst        = 5
)

var (
	// ErrNotFound is returned when the api has no such article or no data for the day
	ErrNotFound = errors.New("not found")
	// ErrUnknownProject is returned for a project outside of domain.Projects
	ErrUnknownProject = errors.New("unknown project")
)

// Opts defines client parameters, zero values replaced by defaults
type Opts struct {
	WikipediaURL string        // per-project api url, %s is replaced by the project
	WikimediaURL string        // pageviews api url
	RateLimit    float64       // requests per second
	Burst        int           // rate limiter burst
	Timeout      time.Duration // http client timeout
	UserAgent    string
}

// Client reads from wikipedia
type Client struct {
	wikipediaURL string
	wikimediaURL string
	userAgent    string
	httpClient   *http.Client
	limiter      *rate.Limiter
	now          func() time.Time
}

// New makes a client
func New(opts Opts) *Client {
	if opts.WikipediaURL == "" {
		opts.WikipediaURL = DefaultWikipediaURL
	}
	if opts.WikimediaURL == "" {
		opts.WikimediaURL = DefaultWikimediaURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Client{
		wikipediaURL: strings.TrimSuffix(opts.WikipediaURL, "/"),
		wikimediaURL: strings.TrimSuffix(opts.WikimediaURL, "/"),
		userAgent:    opts.UserAgent,
		httpClient:   &http.Client{Timeout: opts.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		now:          time.Now,
	}
}

// TopPageviews is the daily top list of a project
type TopPageviews struct {
	Project  string                `json:"project"`
	Access   string                `json:"access"`
	Year     string                `json:"year"`
	Month    string                `json:"month"`
	Day      string                `json:"day"`
	Articles []TopPageviewsArticle `json:"articles"`
}

// TopPageviewsArticle is a single entry of the top list
type TopPageviewsArticle struct {
	Article string `json:"article"`
	Views   int64  `json:"views"`
	Rank    int    `json:"rank"`
}

// ArticleTitles holds the title variants of an article
type ArticleTitles struct {
	Canonical  string `json:"canonical"`
	Normalized string `json:"normalized"`
	Display    string `json:"display"`
}

// ImageMetadata describes an image of an article
type ImageMetadata struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mime   string `json:"mime,omitempty"`
}

// ContentURLs has links to the article pages
type ContentURLs struct {
	Desktop ArticleURLs `json:"desktop"`
	Mobile  ArticleURLs `json:"mobile"`
}

// ArticleURLs is a set of links for one platform
type ArticleURLs struct {
	Page string `json:"page"`
}

// ArticleSummary is the response of the page summary endpoint
type ArticleSummary struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	DisplayTitle  string         `json:"displaytitle"`
	Titles        ArticleTitles  `json:"titles"`
	WikibaseItem  string         `json:"wikibase_item"`
	Lang          string         `json:"lang"`
	Extract       string         `json:"extract"`
	ExtractHTML   string         `json:"extract_html"`
	Thumbnail     *ImageMetadata `json:"thumbnail,omitempty"`
	OriginalImage *ImageMetadata `json:"originalimage,omitempty"`
	ContentURLs   ContentURLs    `json:"content_urls"`
	Retrieved     time.Time      `json:"-"`
}

// ArticleMediaItem is a single entry of the page media endpoint
type ArticleMediaItem struct {
	SectionID int           `json:"section_id"`
	Type      string        `json:"type"`
	Titles    ArticleTitles `json:"titles"`
	Thumbnail ImageMetadata `json:"thumbnail"`
	Original  ImageMetadata `json:"original"`
}

// Article combines the summary and media of an article
type Article struct {
	Project string
	Article string
	Summary ArticleSummary
	Media   []ArticleMediaItem
}

// Images returns the thumbnail and the full image urls, summary images take precedence over media.
// Both empty if the article has no images.
func (a Article) Images() (thumbnail, original string) {
	if a.Summary.Thumbnail != nil {
		thumbnail = a.Summary.Thumbnail.Source
	}
	if a.Summary.OriginalImage != nil {
		original = a.Summary.OriginalImage.Source
	}
	for _, m := range a.Media {
		if thumbnail != "" && original != "" {
			break
		}
		if m.Type != "" && m.Type != "image" {
			continue
		}
		if thumbnail == "" {
			thumbnail = m.Thumbnail.Source
		}
		if original == "" {
			original = m.Original.Source
		}
	}
	return thumbnail, original
}

// FetchTopArticles returns the most viewed articles of project for yesterday (UTC),
// special and main pages excluded
func (c *Client) FetchTopArticles(ctx context.Context, project string) (*TopPageviews, error) {
	return c.FetchTopArticlesOn(ctx, project, c.now().UTC().Add(-24*time.Hour))
}

// FetchTopArticlesOn returns the most viewed articles of project for the given day
func (c *Client) FetchTopArticlesOn(ctx context.Context, project string, day time.Time) (*TopPageviews, error) {
	if !domain.IsProject(project) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProject, project)
	}
	day = day.UTC()
	u := fmt.Sprintf("%s/metrics/pageviews/top/%s.wikipedia.org/all-access/%04d/%02d/%02d",
		c.wikimediaURL, project, day.Year(), int(day.Month()), day.Day())

	var result struct {
		Items []TopPageviews `json:"items"`
	}
	if err := c.getJSON(ctx, project, u, &result); err != nil {
		return nil, fmt.Errorf("fetch top articles for %s: %w", project, err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("fetch top articles for %s: no items in response: %w", project, ErrNotFound)
	}
	top := result.Items[0]
	top.Articles = filterSpecial(top.Articles)
	return &top, nil
}

// GetArticleSummary returns the summary of a single article
func (c *Client) GetArticleSummary(ctx context.Context, project, article string) (ArticleSummary, error) {
	if !domain.IsProject(project) {
		return ArticleSummary{}, fmt.Errorf("%w: %q", ErrUnknownProject, project)
	}
	var summary ArticleSummary
	if err := c.getJSON(ctx, project, c.projectURL(project)+"/page/summary/"+url.PathEscape(article), &summary); err != nil {
		return ArticleSummary{}, fmt.Errorf("get summary of %s/%s: %w", project, article, err)
	}
	summary.Retrieved = c.now().UTC()
	return summary, nil
}

// GetArticleMedia returns media items of a single article
func (c *Client) GetArticleMedia(ctx context.Context, project, article string) ([]ArticleMediaItem, error) {
	if !domain.IsProject(project) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProject, project)
	}
	var result struct {
		Items []ArticleMediaItem `json:"items"`
	}
	if err := c.getJSON(ctx, project, c.projectURL(project)+"/page/media/"+url.PathEscape(article), &result); err != nil {
		return nil, fmt.Errorf("get media of %s/%s: %w", project, article, err)
	}
	return result.Items, nil
}

// GetArticle returns summary of the article, media is requested only if the summary has no images
func (c *Client) GetArticle(ctx context.Context, project, article string) (Article, error) {
	summary, err := c.GetArticleSummary(ctx, project, article)
	if err != nil {
		return Article{}, err
	}
	res := Article{Project: project, Article: article, Summary: summary}
	if summary.Thumbnail != nil && summary.OriginalImage != nil {
		return res, nil
	}
	media, err := c.GetArticleMedia(ctx, project, article)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Article{}, err
	}
	res.Media = media
	return res, nil
}

func (c *Client) projectURL(project string) string {
	if strings.Contains(c.wikipediaURL, "%s") {
		return fmt.Sprintf(c.wikipediaURL, project)
	}
	return c.wikipediaURL
}

// getJSON makes a rate limited GET request and decodes json response into v
func (c *Client) getJSON(ctx context.Context, project, u string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	addAPIHeaders(req, c.userAgent, project)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mainPages are localized main page names showing up in the top lists
var mainPages = map[string]bool{}

func init() {
	for _, p := range []string{
		"Main_Page", "Wikipédia:Accueil_principal", "Pagina_principale", "Wikipedia:Portada",
		"Wikipedia:Hauptseite", "Заглавная_страница", "メインページ", "Hoofdpagina", "Huvudsida",
		"Wikipedia:Strona_główna", "Trang_Chính", "Wikipédia:Página_principal", "الصفحة_الرئيسية",
		"Wikipedia:首页", "Головна_сторінка", "Pagina_principală", "Начална_страница", "หน้าหลัก",
	} {
		mainPages[p] = true
	}
}

// specialPrefixes are namespaces never shown in the feed
var specialPrefixes = []string{
	"Special:", "Wikipedia:", "Spécial:", "Especial:", "Spezial:", "Служебная:",
	"特別:", "Speciale:", "Speciaal:", "Specjalna:", "Portal:", "File:", "Help:",
}

// IsSpecial reports whether article is a special or main page rather than a real article
func IsSpecial(article string) bool {
	if article == "" || mainPages[article] || article == "-" {
		return true
	}
	normalized := strings.ReplaceAll(article, " ", "_")
	if mainPages[normalized] || strings.Contains(normalized, "Pagina_principale") ||
		strings.Contains(normalized, "Accueil_principal") {
		return true
	}
	for _, p := range specialPrefixes {
		if strings.HasPrefix(article, p) {
			return true
		}
	}
	return false
}

func filterSpecial(top []TopPageviewsArticle) []TopPageviewsArticle {
	res := make([]TopPageviewsArticle, 0, len(top))
	for _, a := range top {
		if !IsSpecial(a.Article) {
			res = append(res, a)
		}
	}
	return res
}
