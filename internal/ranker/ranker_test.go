package ranker

import (
	"fmt"
	"testing"
)

func TestRank_EmptyQuery(t *testing.T) {
	if got := New(5).Rank("", []string{"default"}, []string{"1"}); len(got) != 0 {
		t.Fatalf("Rank(\"\") = %+v, want empty", got)
	}
}

func TestRank_PinsQueryFirst(t *testing.T) {
	got := New(5).Rank("foo", []string{"default", "food"}, []string{"1", "foobar"})
	if len(got) < 2 {
		t.Fatalf("Rank = %+v", got)
	}
	if got[0] != (Entry{Kind: KindActivity, Text: "foo", Score: MaxScore}) {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1] != (Entry{Kind: KindWorkspace, Text: "foo", Score: MaxScore}) {
		t.Fatalf("second = %+v", got[1])
	}
	if len(got) != 4 {
		t.Fatalf("Rank = %+v, want pinned pair plus food and foobar", got)
	}
	for _, e := range got[2:] {
		if e.Score >= MaxScore {
			t.Fatalf("fuzzy entry outranks pinned entries: %+v", e)
		}
	}
}

func TestRank_ExactMatchNotDuplicated(t *testing.T) {
	got := New(10).Rank("foo", []string{"foo", "default"}, []string{"foo", "2"})
	count := map[Kind]int{}
	for _, e := range got {
		if e.Text == "foo" {
			count[e.Kind]++
		}
	}
	if count[KindActivity] != 1 || count[KindWorkspace] != 1 {
		t.Fatalf("Rank = %+v: want exactly one foo per kind", got)
	}
	if got[0].Score != MaxScore || got[1].Score != MaxScore {
		t.Fatalf("surviving foo entries are not the pinned ones: %+v", got)
	}
}

func TestRank_LiteralComparison(t *testing.T) {
	got := New(10).Rank("foo", []string{"foo "}, nil)
	if len(got) != 3 {
		t.Fatalf("Rank = %+v: candidate \"foo \" differs from query and must survive", got)
	}
	if got[0].Text != "foo" || got[1].Text != "foo" {
		t.Fatalf("pinned entries = %+v, want query text", got[:2])
	}
	if got[2].Kind != KindActivity || got[2].Text != "foo " || got[2].Score == MaxScore {
		t.Fatalf("third entry = %+v, want fuzzy match on \"foo \"", got[2])
	}

	got = New(10).Rank("foo ", nil, nil)
	if got[0].Text != "foo " || got[1].Text != "foo " {
		t.Fatalf("pinned entries = %+v, want untrimmed query", got)
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	got := New(10).Rank("WEB", nil, []string{"web", "Webmail", "mail"})
	var texts []string
	for _, e := range got[2:] {
		texts = append(texts, e.Text)
	}
	if len(texts) != 2 {
		t.Fatalf("fuzzy entries = %q, want web and Webmail", texts)
	}
}

func TestRank_SortedByScore(t *testing.T) {
	got := New(10).Rank("ab", []string{"xaxxxb", "ab", "abc"}, nil)
	for i := 3; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("not sorted: %+v", got)
		}
	}
}

func TestRank_StableTies(t *testing.T) {
	got := New(10).Rank("q", []string{"q1", "q2"}, []string{"q3"})
	var texts []string
	for _, e := range got[2:] {
		texts = append(texts, e.Text)
	}
	if fmt.Sprint(texts) != "[q1 q2 q3]" {
		t.Fatalf("tie order = %q", texts)
	}
}

func TestRank_CollapsesDuplicateCandidates(t *testing.T) {
	got := New(10).Rank("1", nil, []string{"1", "10", "10"})
	n := 0
	for _, e := range got {
		if e.Kind == KindWorkspace && e.Text == "10" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("Rank = %+v: want one entry for 10", got)
	}
}

func TestRank_Bounded(t *testing.T) {
	var many []string
	for i := 0; i < 50; i++ {
		many = append(many, fmt.Sprintf("ws%d", i))
	}
	for _, n := range []int{-1, 0, 1, 2, 5, 100} {
		got := New(n).Rank("w", many, many)
		if n < 1 {
			if len(got) != 0 {
				t.Fatalf("max %d: len = %d", n, len(got))
			}
			continue
		}
		if len(got) > n {
			t.Fatalf("max %d: len = %d", n, len(got))
		}
	}
	if got := New(1).Rank("w", many, nil); got[0].Kind != KindActivity || got[0].Text != "w" {
		t.Fatalf("max 1 keeps %+v", got)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{KindActivity, KindWorkspace} {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), back, ok)
		}
	}
	if _, ok := ParseKind("window"); ok {
		t.Fatal("ParseKind accepted window")
	}
}
