package server

import (
	"context"
	"errors"
	"log"

	"github.com/samsarahq/thunder/graphql"
	"github.com/samsarahq/thunder/graphql/schemabuilder"

	"github.com/umputun/wikifeedia/pkg/domain"
	"github.com/umputun/wikifeedia/pkg/repository"
	"github.com/umputun/wikifeedia/pkg/service"
)

// Article is the graphql view of domain.Article
type Article struct {
	Project      string
	Article      string
	Title        string
	Abstract     string
	ArticleURL   string
	ImageURL     string
	ThumbnailURL string
	DailyViews   int64
}

// ArticlesResponse is a page of articles with the asOf token of their snapshot
type ArticlesResponse struct {
	AsOf     string
	Articles []Article
}

type articlesArgs struct {
	Project      string
	Offset       *int32
	Limit        *int32
	FollowerRead *bool
	AsOf         *string
}

// buildSchema makes the graphql schema with articles query and crawl mutation
func (s *Server) buildSchema() *graphql.Schema {
	builder := schemabuilder.NewSchema()
	obj := builder.Object("Article", Article{})
	obj.Key("article")
	builder.Object("ArticlesResponse", ArticlesResponse{})

	q := builder.Query()
	q.FieldFunc("articles", s.articlesQuery)

	mut := builder.Mutation()
	mut.FieldFunc("crawl", s.crawlMutation)

	return builder.MustBuild()
}

func (s *Server) articlesQuery(ctx context.Context, args articlesArgs) (*ArticlesResponse, error) {
	req := service.ArticlesRequest{Project: args.Project}
	if args.Offset != nil {
		req.Offset = int(*args.Offset)
	}
	if args.Limit != nil {
		req.Limit = int(*args.Limit)
	}
	if args.FollowerRead != nil {
		req.FollowerRead = *args.FollowerRead
	}
	if args.AsOf != nil {
		req.AsOf = *args.AsOf
	}

	resp, err := s.feed.Articles(ctx, req)
	switch {
	case errors.Is(err, service.ErrUnknownProject):
		return nil, graphql.NewSafeError("%s is not a valid project", args.Project)
	case errors.Is(err, repository.ErrSnapshotNotFound):
		return nil, graphql.NewSafeError("as of %q is not available", req.AsOf)
	case err != nil:
		log.Printf("[WARN] failed to get articles of %s: %v", args.Project, err)
		return nil, err
	}

	res := &ArticlesResponse{AsOf: resp.AsOf, Articles: make([]Article, len(resp.Articles))}
	for i, a := range resp.Articles {
		res.Articles[i] = toGraphqlArticle(a)
	}
	return res, nil
}

// crawlMutation requests an immediate crawl, returns false if crawling is disabled
func (s *Server) crawlMutation() bool {
	if s.crawler == nil {
		return false
	}
	s.crawler.CrawlNow()
	return true
}

func toGraphqlArticle(a domain.Article) Article {
	return Article{
		Project:      a.Project,
		Article:      a.Article,
		Title:        a.Title,
		Abstract:     a.Abstract,
		ArticleURL:   a.ArticleURL,
		ImageURL:     a.ImageURL,
		ThumbnailURL: a.ThumbnailURL,
		DailyViews:   a.DailyViews,
	}
}
