package feed

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPageSize is the number of articles requested per page
const DefaultPageSize = 10

// Params defines variables of a single feed request
type Params struct {
	Project      string `json:"project"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
	FollowerRead bool   `json:"followerRead"`
	AsOf         string `json:"asOf,omitempty"` // empty on the first page of a session
}

// key returns the canonical representation used for caching
func (p Params) key() string {
	return fmt.Sprintf("%s|%d|%d|%t|%s", p.Project, p.Offset, p.Limit, p.FollowerRead, p.AsOf)
}

// ParamsBuilder derives request params from the current feed state
type ParamsBuilder struct {
	PageSize     int
	FollowerRead bool
}

// NewParamsBuilder makes a builder with the given page size and the follower read
// preference taken from the raw url query string, e.g. "use_follower_read=false"
func NewParamsBuilder(pageSize int, rawQuery string) ParamsBuilder {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ParamsBuilder{PageSize: pageSize, FollowerRead: FollowerReadFromQuery(rawQuery)}
}

// Build returns params for the next page of project, given the number of already
// accumulated articles and the consistency token of the session
func (b ParamsBuilder) Build(project string, accumulated int, asOf string) Params {
	limit := b.PageSize
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if accumulated < 0 {
		accumulated = 0
	}
	return Params{
		Project:      project,
		Offset:       accumulated,
		Limit:        limit,
		FollowerRead: b.FollowerRead,
		AsOf:         asOf,
	}
}

// FollowerReadFromQuery reports whether follower reads are enabled by the url query string.
// Only an explicit use_follower_read=false disables them.
func FollowerReadFromQuery(rawQuery string) bool {
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?")) // partial result is fine here
	return values.Get("use_follower_read") != "false"
}
