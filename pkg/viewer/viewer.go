// Package viewer renders the wikifeedia feed in a terminal. It keeps a line based viewport
// over the rendered articles and reports every scroll to the mounted feed, so scrolling
// to the bottom pulls the next page.
package viewer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/wikifeedia/pkg/domain"
	"github.com/umputun/wikifeedia/pkg/feed"
)

//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . Feed

// Feed is the paginated feed shown by the viewer
type Feed interface {
	StartSession(project string) error
	LoadMore() bool
	State() feed.State
	Mount(events *feed.ScrollEvents) (unmount func())
}

// Opts defines viewer parameters
type Opts struct {
	Feed     Feed
	Out      io.Writer
	Project  string   // initially selected project
	Projects []string // tabs, domain.Projects if empty
	Height   int      // visible lines
	Width    int      // wrap width
}

// Viewer is a terminal feed viewer
type Viewer struct {
	feed     Feed
	out      io.Writer
	project  string
	projects []string
	height   int
	width    int

	events    *feed.ScrollEvents
	changed   chan struct{}
	lines     []string
	scrollTop int
}

var (
	titleColor    = color.New(color.Bold)
	tabColor      = color.New(color.FgBlack, color.BgYellow)
	urlColor      = color.New(color.FgCyan)
	errorColor    = color.New(color.FgHiRed)
	statusColor   = color.New(color.FgYellow)
	thumbnailText = color.New(color.FgWhite)
)

// New makes a viewer
func New(opts Opts) *Viewer {
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if len(opts.Projects) == 0 {
		opts.Projects = domain.Projects
	}
	if opts.Project == "" {
		opts.Project = domain.DefaultProject
	}
	return &Viewer{
		feed:     opts.Feed,
		out:      opts.Out,
		project:  opts.Project,
		projects: opts.Projects,
		height:   opts.Height,
		width:    opts.Width,
		events:   feed.NewScrollEvents(),
		changed:  make(chan struct{}, 1),
	}
}

// Notify signals a feed state change, safe to use as the controller's change callback
func (v *Viewer) Notify(feed.State) {
	select {
	case v.changed <- struct{}{}:
	default:
	}
}

// Run mounts the feed, starts a session for the initial project and processes commands
// from in until "q", end of input or ctx cancellation
func (v *Viewer) Run(ctx context.Context, in io.Reader) error {
	unmount := v.feed.Mount(v.events)
	defer unmount()

	if err := v.feed.StartSession(v.project); err != nil {
		return fmt.Errorf("start feed for %s: %w", v.project, err)
	}
	v.redraw()

	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case commands <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			lgr.Printf("[WARN] failed to read input: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-v.changed:
			v.redraw()
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			quit, err := v.handle(cmd)
			if err != nil {
				v.printf("%s\n", errorColor.Sprint(err.Error()))
			}
			if quit {
				return nil
			}
		}
	}
}

// handle executes a single command
func (v *Viewer) handle(cmd string) (quit bool, err error) {
	fields := strings.Fields(cmd)
	name := ""
	if len(fields) > 0 {
		name = fields[0]
	}

	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "", "j", "down":
		v.scroll(v.height)
	case "k", "up":
		v.scroll(-v.height)
	case "g", "top":
		v.scroll(-v.scrollTop)
	case "r", "reload":
		return false, v.selectProject(v.project)
	case "p", "project":
		if len(fields) < 2 {
			return false, errors.New("usage: p <project>")
		}
		return false, v.selectProject(fields[1])
	case "h", "help", "?":
		v.printf("%s\n", help)
	default:
		if domain.IsProject(name) {
			return false, v.selectProject(name)
		}
		return false, fmt.Errorf("unknown command %q, h for help", cmd)
	}
	return false, nil
}

const help = `commands:
  <enter>, j    scroll down
  k             scroll up
  g             back to top
  <code>, p <code>  switch project (en, fr, ...)
  r             reload
  q             quit`

func (v *Viewer) selectProject(project string) error {
	if err := v.feed.StartSession(project); err != nil {
		return err
	}
	v.project = project
	v.scrollTop = 0
	v.redraw()
	return nil
}

// scroll moves the viewport by delta lines and reports the new position to the feed
func (v *Viewer) scroll(delta int) {
	v.scrollTop += delta
	if maxTop := len(v.lines) - v.height; v.scrollTop > maxTop {
		v.scrollTop = maxTop
	}
	if v.scrollTop < 0 {
		v.scrollTop = 0
	}
	v.show()
	v.events.Dispatch(v.viewport())
}

func (v *Viewer) viewport() feed.Viewport {
	return feed.Viewport{
		ScrollTop:    float64(v.scrollTop),
		ClientHeight: float64(v.height),
		ScrollHeight: float64(len(v.lines)),
	}
}

// redraw re-renders the current feed state and shows the visible part of it
func (v *Viewer) redraw() {
	st := v.feed.State()
	v.lines = Render(st, v.projects, v.width)
	if v.scrollTop > len(v.lines) {
		v.scrollTop = 0
	}
	v.show()
}

func (v *Viewer) show() {
	end := v.scrollTop + v.height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("-", v.width))
	b.WriteString("\n")
	for _, line := range v.lines[v.scrollTop:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	v.printf("%s", b.String())
}

func (v *Viewer) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(v.out, format, args...); err != nil {
		lgr.Printf("[WARN] can't write output: %v", err)
	}
}

// Render makes the text lines of the feed: the project tabs, status and articles.
// Media is shown only when present.
func Render(st feed.State, projects []string, width int) []string {
	lines := append(renderTabs(st.Project, projects, width), "")

	if st.Err != nil {
		lines = append(lines, errorColor.Sprintf("Error! %s", st.Err.Error()), "")
	}
	if len(st.Articles) == 0 {
		switch {
		case st.Loading():
			lines = append(lines, statusColor.Sprint("Loading...."))
		case st.Status == feed.StatusReady:
			lines = append(lines, statusColor.Sprint("No articles"))
		}
		return lines
	}

	for i, a := range st.Articles {
		lines = append(lines, titleColor.Sprintf("%d. %s", i+1, a.Title))
		for _, l := range wrap(a.Abstract, width-3) {
			lines = append(lines, "   "+l)
		}
		if a.ArticleURL != "" {
			lines = append(lines, "   "+urlColor.Sprint(a.ArticleURL))
		}
		if a.ThumbnailURL != "" {
			lines = append(lines, "   "+thumbnailText.Sprintf("image: %s", a.ThumbnailURL))
		}
		lines = append(lines, "")
	}

	switch {
	case st.Status == feed.StatusLoadingMore:
		lines = append(lines, statusColor.Sprint("Loading more...."))
	case st.Done:
		lines = append(lines, statusColor.Sprint("(end of feed)"))
	}
	return lines
}

// renderTabs lays out project tabs in rows fitting width
func renderTabs(selected string, projects []string, width int) []string {
	var rows []string
	row := ""
	for _, p := range projects {
		tab := " " + p + " "
		if p == selected {
			tab = tabColor.Sprintf("[%s]", p)
		}
		if row != "" && lipgloss.Width(row+tab) > width {
			rows = append(rows, row)
			row = ""
		}
		row += tab
	}
	if row != "" {
		rows = append(rows, row)
	}
	return rows
}

// wrap splits text into lines no wider than width terminal cells, breaking on spaces
// where possible
func wrap(text string, width int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	if width < 10 {
		width = 10
	}
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
