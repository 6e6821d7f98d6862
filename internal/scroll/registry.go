package scroll

import (
	"strings"

	"github.com/hallyupress/newsdesk/internal/session"
)

// Kind is the scroll-tracking policy of a route.
type Kind int

const (
	// Untracked routes are never saved or restored.
	Untracked Kind = iota
	// Section routes keep one ScrollRecord under a fixed page key.
	Section
	// Detail routes keep one ScrollRecord per item, keyed by DetailPrefix
	// and the {slug} segment.
	Detail
)

func (k Kind) String() string {
	switch k {
	case Section:
		return "section"
	case Detail:
		return "detail"
	default:
		return "untracked"
	}
}

// Route maps a path pattern to a tracking policy. Pattern segments of the
// form {name} match any single non-empty segment; the first one names the
// item of a Detail route.
type Route struct {
	Pattern      string
	Kind         Kind
	PageKey      string
	BackFlag     session.BackFlag
	DetailPrefix string
}

// DefaultRoutes returns the routes of the news site.
func DefaultRoutes() []Route {
	routes := []Route{{
		Pattern:  "/",
		Kind:     Section,
		PageKey:  session.SectionKey("home"),
		BackFlag: session.BackToHome,
	}}
	for _, name := range []string{"drama", "tvfilm", "music", "celeb", "ranking"} {
		routes = append(routes, Route{
			Pattern:  "/" + name,
			Kind:     Section,
			PageKey:  session.SectionKey(name),
			BackFlag: session.BackFlagFor(name),
		})
	}
	return append(routes, Route{
		Pattern:      "/news/{slug}",
		Kind:         Detail,
		BackFlag:     session.BackToNewsDetail,
		DetailPrefix: "newsScroll",
	})
}

// Registry resolves paths to routes. The first matching route wins.
type Registry struct {
	routes []Route
}

// NewRegistry returns a registry over routes.
func NewRegistry(routes ...Route) *Registry {
	return &Registry{routes: append([]Route(nil), routes...)}
}

// Routes returns a copy of the registered routes.
func (r *Registry) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Match is a resolved path.
type Match struct {
	Route  Route
	Path   string
	ItemID string
}

// Tracked reports whether the path has a scroll-tracking policy.
func (m Match) Tracked() bool {
	return m.Route.Kind != Untracked
}

// Key returns the ScrollRecord key of the matched page.
func (m Match) Key() string {
	switch m.Route.Kind {
	case Section:
		return m.Route.PageKey
	case Detail:
		return session.DetailKey(m.Route.DetailPrefix, m.ItemID)
	default:
		return ""
	}
}

// SameRoute reports whether both matches resolve to the same pattern.
func (m Match) SameRoute(other Match) bool {
	return m.Tracked() && m.Route.Pattern == other.Route.Pattern
}

// Match resolves path. Unknown paths return an Untracked match.
func (r *Registry) Match(path string) Match {
	clean := normalizePath(path)
	for _, route := range r.routes {
		if itemID, ok := matchPattern(route.Pattern, clean); ok {
			return Match{Route: route, Path: clean, ItemID: itemID}
		}
	}
	return Match{Route: Route{Kind: Untracked}, Path: clean}
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func matchPattern(pattern, path string) (string, bool) {
	if pattern == path {
		return "", true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return "", false
	}
	itemID := ""
	for i, seg := range ps {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if xs[i] == "" {
				return "", false
			}
			if itemID == "" {
				itemID = xs[i]
			}
			continue
		}
		if seg != xs[i] {
			return "", false
		}
	}
	return itemID, true
}
