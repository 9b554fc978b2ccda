package wikipedia

import (
	"net/http"
)

// defaultUserAgent identifies the crawler, wikimedia rejects requests without a descriptive agent
const defaultUserAgent = "wikifeedia/1.0 (https://github.com/umputun/wikifeedia)"

// acceptLanguages maps a project to the Accept-Language value for its api
var acceptLanguages = map[string]string{
	"en": "en-US,en;q=0.9",
	"fr": "fr-FR,fr;q=0.9,en;q=0.8",
	"es": "es-ES,es;q=0.9,en;q=0.8",
	"de": "de-DE,de;q=0.9,en;q=0.8",
	"ru": "ru-RU,ru;q=0.9,en;q=0.8",
	"ja": "ja-JP,ja;q=0.9,en;q=0.8",
	"zh": "zh-CN,zh;q=0.9,en;q=0.8",
}

// addAPIHeaders sets headers expected by the wikimedia rest api
func addAPIHeaders(req *http.Request, userAgent, project string) {
	req.Header.Set("Accept", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Api-User-Agent", userAgent)

	lang, ok := acceptLanguages[project]
	if !ok {
		lang = project + ";q=0.9,en;q=0.8"
	}
	if project != "" {
		req.Header.Set("Accept-Language", lang)
	}
}
