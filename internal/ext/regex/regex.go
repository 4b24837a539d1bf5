// Package regex registers regular expression functions, including the
// regexp() function SQLite calls for the REGEXP operator.
//
// Patterns use Go's RE2 syntax. Replacement strings expand $1 / ${name}.
package regex

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// cacheSize bounds the number of compiled patterns kept per connection.
const cacheSize = 256

// Init registers the regexp functions on conn.
func Init(conn sqlfn.Conn) error {
	c := newCache(cacheSize)
	return sqlfn.Register(conn,
		sqlfn.Scalar("regexp", func(pattern, text string) (bool, error) {
			return c.like(text, pattern)
		}),
		sqlfn.Scalar("regexp_like", c.like),
		sqlfn.Scalar("regexp_substr", c.substr),
		sqlfn.Scalar("regexp_capture", c.capture),
		sqlfn.Scalar("regexp_replace", c.replace),
	)
}

// cache holds compiled patterns. It is cleared wholesale when full.
type cache struct {
	mu   sync.Mutex
	max  int
	pats map[string]*regexp.Regexp
}

func newCache(max int) *cache {
	return &cache{max: max, pats: make(map[string]*regexp.Regexp)}
}

func (c *cache) compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.pats[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	if len(c.pats) >= c.max {
		clear(c.pats)
	}
	c.pats[pattern] = re
	return re, nil
}

func (c *cache) like(text, pattern string) (bool, error) {
	re, err := c.compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// substr returns the first match, or NULL when there is none.
func (c *cache) substr(text, pattern string) (any, error) {
	re, err := c.compile(pattern)
	if err != nil {
		return nil, err
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return nil, nil
	}
	return text[loc[0]:loc[1]], nil
}

// capture returns group n (default 0) of the first match, or NULL.
func (c *cache) capture(text, pattern string, n ...int64) (any, error) {
	re, err := c.compile(pattern)
	if err != nil {
		return nil, err
	}
	group := 0
	if len(n) > 0 {
		group = int(n[0])
	}
	if group < 0 || group > re.NumSubexp() {
		return nil, nil
	}
	m := re.FindStringSubmatchIndex(text)
	if m == nil || m[2*group] < 0 {
		return nil, nil
	}
	return text[m[2*group]:m[2*group+1]], nil
}

func (c *cache) replace(text, pattern, repl string) (string, error) {
	re, err := c.compile(pattern)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(text, repl), nil
}
