package gradecell

import (
	"github.com/ukaji3/gradecell-go/pkg/gradecell/parser"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/trace"
)

// Options configures a Locator.
type Options struct {
	// Layout describes the gradebook geometry.
	Layout Layout
	// Cache holds parsed workbooks between calls.
	// If nil, a cache with parser.DefaultCacheEntries entries is created.
	Cache *parser.Cache
	// Observer receives trace events. If nil, events are dropped.
	Observer trace.Observer
}

// DefaultOptions returns options for the standard evaluation workbook.
func DefaultOptions() Options {
	return Options{
		Layout: DefaultLayout(),
	}
}
