package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/wikifeedia/pkg/config"
	"github.com/umputun/wikifeedia/pkg/crawler"
	"github.com/umputun/wikifeedia/pkg/feed"
	"github.com/umputun/wikifeedia/pkg/repository"
	"github.com/umputun/wikifeedia/pkg/scheduler"
	"github.com/umputun/wikifeedia/pkg/service"
	"github.com/umputun/wikifeedia/pkg/viewer"
	"github.com/umputun/wikifeedia/pkg/wikipedia"
	"github.com/umputun/wikifeedia/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	DSN    string `long:"dsn" env:"DSN" description:"database DSN, overrides config"`

	Setup struct{} `command:"setup" description:"create database schema"`

	Crawl struct {
		Projects []string `short:"p" long:"project" description:"project to crawl, configured projects if not set"`
	} `command:"crawl" description:"crawl top articles once"`

	Server struct {
		Listen   string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
		TLS      bool   `long:"tls" env:"TLS" description:"serve https, overrides config"`
		Insecure bool   `long:"insecure" description:"disable tls, overrides config and --tls"`
		NoCrawl  bool   `long:"no-crawl" description:"don't crawl periodically"`
	} `command:"server" description:"run graphql server"`

	Top struct {
		Project string `short:"p" long:"project" default:"en" description:"project"`
		Num     int    `short:"n" long:"num" default:"10" description:"number of articles to show"`
	} `command:"top" description:"print yesterday's most viewed articles"`

	Browse struct {
		Endpoint string `long:"endpoint" env:"ENDPOINT" description:"graphql endpoint, overrides config"`
		Project  string `short:"p" long:"project" description:"initial project, overrides config"`
		Query    string `long:"query" description:"url query string, e.g. use_follower_read=false"`
		PageSize int    `long:"page-size" description:"articles per page, overrides config"`
		Height   int    `long:"height" env:"LINES" default:"24" description:"screen height in lines"`
		Width    int    `long:"width" env:"COLUMNS" default:"80" description:"screen width"`
	} `command:"browse" description:"browse the feed in terminal"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	// browse owns the terminal, logs go nowhere unless debugging
	setupLog(opts.Debug, parser.Active.Name == "browse" && !opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name, os.Stdin, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}
}

// run executes the command with all dependencies made from options
func run(ctx context.Context, opts Opts, command string, in io.Reader, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch command {
	case "setup":
		repos, err := openRepositories(ctx, cfg)
		if err != nil {
			return err
		}
		log.Printf("[INFO] database schema ready, %s", cfg.Database.DSN)
		return repos.Close()
	case "crawl":
		return runCrawl(ctx, cfg, opts.Crawl.Projects)
	case "server":
		return runServer(ctx, cfg, opts)
	case "top":
		return runTop(ctx, cfg, opts.Top.Project, opts.Top.Num, out)
	case "browse":
		return runBrowse(ctx, cfg, opts, in, out)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// loadConfig reads config file if set and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}
	if opts.Server.Listen != "" {
		cfg.Server.Listen = opts.Server.Listen
	}
	if opts.Server.TLS {
		cfg.Server.TLS = true
	}
	if opts.Server.Insecure {
		cfg.Server.TLS = false
	}
	if opts.Browse.Endpoint != "" {
		cfg.Client.Endpoint = opts.Browse.Endpoint
	}
	if opts.Browse.Project != "" {
		cfg.Client.DefaultProject = opts.Browse.Project
	}
	if opts.Browse.PageSize > 0 {
		cfg.Client.PageSize = opts.Browse.PageSize
	}
	return cfg, nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		FollowerReadLag: cfg.Database.FollowerReadLag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repos, nil
}

func makeWikipedia(cfg *config.Config) *wikipedia.Client {
	return wikipedia.New(wikipedia.Opts{
		WikipediaURL: cfg.Crawler.WikipediaURL,
		WikimediaURL: cfg.Crawler.WikimediaURL,
		RateLimit:    cfg.Crawler.RateLimit,
		Burst:        cfg.Crawler.Burst,
		UserAgent:    cfg.Crawler.UserAgent,
	})
}

func makeCrawler(cfg *config.Config, repos *repository.Repositories, projects []string) *crawler.Crawler {
	if len(projects) == 0 {
		projects = cfg.Crawler.Projects
	}
	return crawler.New(crawler.Params{
		Wiki:        makeWikipedia(cfg),
		Store:       repos.Article,
		Settings:    repos.Setting,
		Projects:    projects,
		MaxWorkers:  cfg.Crawler.MaxWorkers,
		MaxArticles: cfg.Crawler.MaxArticles,
		Retention:   cfg.Crawler.Retention,
	})
}

func runCrawl(ctx context.Context, cfg *config.Config, projects []string) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	if cfg.Crawler.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Crawler.Timeout)
		defer cancel()
	}
	return makeCrawler(cfg, repos, projects).CrawlOnce(ctx)
}

func runServer(ctx context.Context, cfg *config.Config, opts Opts) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	log.Printf("[INFO] starting wikifeedia version %s", revision)

	var trigger server.Crawler
	if cfg.Crawler.Enabled && !opts.Server.NoCrawl {
		sched := scheduler.NewScheduler(scheduler.Params{
			Crawler:      makeCrawler(cfg, repos, nil),
			Interval:     cfg.Crawler.Interval,
			CrawlOnStart: cfg.Crawler.CrawlOnStart,
			CrawlTimeout: cfg.Crawler.Timeout,
		})
		sched.Start(ctx)
		defer sched.Stop()
		trigger = sched
	}

	srv := server.New(cfg, service.NewFeedService(repos), trigger, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Print("[INFO] shutdown complete")
	return nil
}

// runTop prints the most viewed articles of project with their summaries
func runTop(ctx context.Context, cfg *config.Config, project string, num int, out io.Writer) error {
	wiki := makeWikipedia(cfg)
	top, err := wiki.FetchTopArticles(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to fetch top articles of %s: %w", project, err)
	}
	fmt.Fprintf(out, "%s.wikipedia.org, %s-%s-%s\n", project, top.Year, top.Month, top.Day)
	for i, a := range top.Articles {
		if num > 0 && i >= num {
			break
		}
		article, err := wiki.GetArticle(ctx, project, a.Article)
		if err != nil {
			return fmt.Errorf("failed to get article %s: %w", a.Article, err)
		}
		title := article.Summary.Titles.Normalized
		if title == "" {
			title = a.Article
		}
		fmt.Fprintf(out, "\n%d. %s (%d)\n\n%s\n", i+1, title, a.Views, article.Summary.Extract)
	}
	return nil
}

func runBrowse(ctx context.Context, cfg *config.Config, opts Opts, in io.Reader, out io.Writer) error {
	cache, err := feed.NewCache(cfg.Client.CacheSize)
	if err != nil {
		return fmt.Errorf("failed to make cache: %w", err)
	}

	var v *viewer.Viewer
	ctrl := feed.NewController(feed.ControllerOpts{
		Querier:  feed.NewClient(cfg.Client.Endpoint, cfg.Client.Timeout),
		Builder:  feed.NewParamsBuilder(cfg.Client.PageSize, opts.Browse.Query),
		Cache:    cache,
		Timeout:  cfg.Client.Timeout,
		OnChange: func(s feed.State) { v.Notify(s) },
	})
	defer ctrl.Teardown()

	v = viewer.New(viewer.Opts{
		Feed:    ctrl,
		Out:     out,
		Project: cfg.Client.DefaultProject,
		Height:  opts.Browse.Height,
		Width:   opts.Browse.Width,
	})
	if err := v.Run(ctx, in); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func setupLog(dbg, quiet bool, secs ...string) {
	logOpts := []lgr.Option{}
	if quiet {
		logOpts = []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
