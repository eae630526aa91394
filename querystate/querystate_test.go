package querystate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalshield/querystate"
)

func TestParseParamsKeepsOrder(t *testing.T) {
	p := querystate.ParseParams("?searchTerm=xss&sort=asc&category=web-security")

	assert.Equal(t, "xss", p.Get("searchTerm"))
	assert.Equal(t, "asc", p.Get("sort"))
	assert.Equal(t, "web-security", p.Get("category"))
	assert.Equal(t, "searchTerm=xss&sort=asc&category=web-security", p.Encode())
}

func TestParseParamsDecoding(t *testing.T) {
	p := querystate.ParseParams("searchTerm=sql+injection&ref=a%26b&flag&&bad=%zz")

	assert.Equal(t, "sql injection", p.Get("searchTerm"))
	assert.Equal(t, "a&b", p.Get("ref"))
	assert.True(t, p.Has("flag"))
	assert.Equal(t, "", p.Get("flag"))
	assert.Equal(t, "%zz", p.Get("bad"))
	assert.Equal(t, 4, p.Len())
}

func TestParamsSet(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		key   string
		value string
		want  string
	}{
		{name: "append missing", raw: "a=1", key: "b", value: "2", want: "a=1&b=2"},
		{name: "replace in place", raw: "a=1&b=2&c=3", key: "b", value: "x", want: "a=1&b=x&c=3"},
		{name: "collapse duplicates", raw: "b=1&a=1&b=2", key: "b", value: "z", want: "b=z&a=1"},
		{name: "escape value", raw: "", key: "q", value: "a b&c", want: "q=a+b%26c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := querystate.ParseParams(tc.raw)
			p.Set(tc.key, tc.value)
			assert.Equal(t, tc.want, p.Encode())
		})
	}
}

func TestParamsCloneIsIndependent(t *testing.T) {
	p := querystate.ParseParams("a=1")
	c := p.Clone()
	c.Set("a", "2")
	c.Del("missing")

	assert.Equal(t, "1", p.Get("a"))
	assert.Equal(t, "2", c.Get("a"))
}

func TestFromParamsDefaults(t *testing.T) {
	s := querystate.FromParams(querystate.ParseParams(""))
	assert.Equal(t, querystate.DefaultState(), s)

	s = querystate.FromParams(querystate.ParseParams("sort=sideways"))
	assert.Equal(t, querystate.SortDesc, s.Sort)
	assert.Equal(t, querystate.DefaultCategory, s.Category)
}

func TestFromParamsReadsAllFields(t *testing.T) {
	s := querystate.FromParams(querystate.ParseParams("searchTerm=xss&sort=asc&category=web-security"))

	assert.Equal(t, querystate.State{SearchTerm: "xss", Sort: "asc", Category: "web-security"}, s)
}

func TestApplyPreservesUnrelatedParams(t *testing.T) {
	p := querystate.ParseParams("ref=header&sort=asc")
	s := querystate.FormState("firewall", "", "")

	out := s.Apply(p)

	assert.Equal(t, "ref=header&sort=desc&searchTerm=firewall&category=uncategorized", out.Encode())
	assert.Equal(t, "ref=header&sort=asc", p.Encode(), "input must not change")
}

func TestApplyOnEmptyURL(t *testing.T) {
	out := querystate.FormState("firewall", "", "").Apply(querystate.Params{})

	assert.Contains(t, out.Encode(), "searchTerm=firewall&sort=desc&category=uncategorized")
}

func TestApplyRestartsPaging(t *testing.T) {
	p := querystate.ParseParams("searchTerm=xss&sort=desc&category=uncategorized&startIndex=9&limit=18")

	out := querystate.FormState("firewall", "", "").Apply(p)
	assert.Equal(t, "searchTerm=firewall&sort=desc&category=uncategorized", out.Encode())

	out = querystate.ApplySearchTerm(p, "nmap")
	assert.Equal(t, "searchTerm=nmap&sort=desc&category=uncategorized", out.Encode())
}

func TestApplySearchTermOnly(t *testing.T) {
	out := querystate.ApplySearchTerm(querystate.ParseParams("category=tutorials"), "nmap")

	assert.Equal(t, "category=tutorials&searchTerm=nmap", out.Encode())
}

func TestStartIndex(t *testing.T) {
	assert.Equal(t, 0, querystate.StartIndex(querystate.ParseParams("")))
	assert.Equal(t, 0, querystate.StartIndex(querystate.ParseParams("startIndex=-3")))
	assert.Equal(t, 0, querystate.StartIndex(querystate.ParseParams("startIndex=nine")))
	assert.Equal(t, 18, querystate.StartIndex(querystate.ParseParams("startIndex=18")))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "All Categories", querystate.CategoryLabel("uncategorized"))
	assert.Equal(t, "Web Security", querystate.CategoryLabel("web-security"))
	assert.Equal(t, "reversing", querystate.CategoryLabel("reversing"))
}

func TestHasMore(t *testing.T) {
	assert.True(t, querystate.HasMore(9))
	assert.False(t, querystate.HasMore(8))
	assert.False(t, querystate.HasMore(0))
}

func TestMoreParams(t *testing.T) {
	p := querystate.ParseParams("searchTerm=xss&startIndex=0")

	out := querystate.MoreParams(p, 9)

	assert.Equal(t, "searchTerm=xss&startIndex=9", out.Encode())
	assert.Equal(t, "0", p.Get("startIndex"))
}

func TestMoreParamsDropsLimit(t *testing.T) {
	out := querystate.MoreParams(querystate.ParseParams("searchTerm=xss&limit=18"), 18)

	assert.Equal(t, "searchTerm=xss&startIndex=18", out.Encode())
}

func TestReloadParams(t *testing.T) {
	p := querystate.ParseParams("searchTerm=xss&startIndex=9&sort=asc")

	out := querystate.ReloadParams(p, 9)
	assert.Equal(t, "searchTerm=xss&sort=asc&limit=18", out.Encode())

	out = querystate.ReloadParams(out, 18)
	assert.Equal(t, "searchTerm=xss&sort=asc&limit=27", out.Encode())
}

func TestLimit(t *testing.T) {
	assert.Equal(t, querystate.PageSize, querystate.Limit(querystate.ParseParams("")))
	assert.Equal(t, querystate.PageSize, querystate.Limit(querystate.ParseParams("limit=zero")))
	assert.Equal(t, 18, querystate.Limit(querystate.ParseParams("limit=18")))
}

func TestResultsAppend(t *testing.T) {
	first := make([]int, querystate.PageSize)
	for i := range first {
		first[i] = i
	}

	r := querystate.NewResults(first)
	require.True(t, r.ShowMore)
	require.Equal(t, 9, r.NextStartIndex())

	r.Append([]int{9, 10, 11})

	assert.Len(t, r.Items, 12)
	assert.Equal(t, 0, r.Items[0], "existing items must stay in front")
	assert.Equal(t, 11, r.Items[11])
	assert.False(t, r.ShowMore)
}

func TestResultsEmptyAndRemove(t *testing.T) {
	r := querystate.NewResults[string](nil)
	assert.True(t, r.Empty())
	assert.False(t, r.ShowMore)

	r.Append([]string{"a", "b", "c"})
	r.Remove(func(s string) bool { return s == "b" })
	assert.Equal(t, []string{"a", "c"}, r.Items)
}

func TestRawQueryPassesThrough(t *testing.T) {
	assert.Equal(t, "searchTerm=a+b&sort=asc", querystate.RawQuery("?searchTerm=a+b&sort=asc").Encode())
	assert.Equal(t, "", querystate.RawQuery("").Encode())
}
