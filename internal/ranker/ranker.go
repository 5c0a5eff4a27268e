// Package ranker turns launcher input into a short, ordered list of
// activity and workspace targets.
package ranker

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Kind says what selecting an entry switches to.
type Kind int

const (
	KindActivity Kind = iota
	KindWorkspace
)

func (k Kind) String() string {
	switch k {
	case KindActivity:
		return "activity"
	case KindWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "activity":
		return KindActivity, true
	case "workspace":
		return KindWorkspace, true
	default:
		return 0, false
	}
}

// MaxScore is given to the two entries built from the query itself.
const MaxScore = math.MaxInt32

// Entry is one ranked target.
type Entry struct {
	Kind  Kind
	Text  string
	Score int
}

var initAlgo sync.Once

// Ranker scores candidates with fzf's matcher. It is safe for concurrent use.
type Ranker struct {
	maxEntries int

	mu   sync.Mutex
	slab *util.Slab
}

// New returns a ranker that keeps at most maxEntries results.
func New(maxEntries int) *Ranker {
	initAlgo.Do(func() { algo.Init("default") })
	return &Ranker{
		maxEntries: maxEntries,
		slab:       util.MakeSlab(100*1024, 2048),
	}
}

// MaxEntries returns the result bound.
func (r *Ranker) MaxEntries() int {
	return r.maxEntries
}

// Rank orders activities and workspaces against query.
//
// Fuzzy matches come sorted by descending score with ties in candidate
// order. A candidate whose text equals query is dropped and the query is
// pinned in front as an activity entry followed by a workspace entry.
// An empty query yields no entries.
func (r *Ranker) Rank(query string, activities, workspaces []string) []Entry {
	if query == "" || r.maxEntries < 1 {
		return nil
	}

	pattern := []rune(strings.ToLower(query))
	var matched []Entry

	r.mu.Lock()
	matched = r.score(matched, KindActivity, activities, pattern)
	matched = r.score(matched, KindWorkspace, workspaces, pattern)
	r.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	out := make([]Entry, 0, len(matched)+2)
	out = append(out,
		Entry{Kind: KindActivity, Text: query, Score: MaxScore},
		Entry{Kind: KindWorkspace, Text: query, Score: MaxScore},
	)
	for _, e := range matched {
		if e.Text == query {
			continue
		}
		out = append(out, e)
	}

	if len(out) > r.maxEntries {
		out = out[:r.maxEntries]
	}
	return out
}

func (r *Ranker) score(dst []Entry, kind Kind, candidates []string, pattern []rune) []Entry {
	seen := make(map[string]struct{}, len(candidates))
	for _, text := range candidates {
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}

		chars := util.ToChars([]byte(text))
		res, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, r.slab)
		if res.Start < 0 || res.Score <= 0 {
			continue
		}
		dst = append(dst, Entry{Kind: kind, Text: text, Score: res.Score})
	}
	return dst
}
