package route

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) Route {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	r, err := Parse(q)
	require.NoError(t, err)
	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Route
	}{
		{raw: "", want: Route{Kind: Aggregate}},
		{raw: "benchmark=cot", want: Route{Kind: Aggregate}},
		{raw: "benchmark=cot&task=", want: Route{Kind: Aggregate}},
		{raw: "benchmark=cot&task=bbh", want: Route{Kind: TaskBreakdown}},
		{raw: "benchmark=cot&task=bbh&model=foo%2Fbar", want: Route{Kind: TaskBreakdown}},
		{raw: "benchmark=cot&task=gsm8k&model=foo%2Fbar", want: Detail("gsm8k", "foo/bar")},
		{raw: "task=bbh%2Fsnarks&model=foo%2Fbar&extra=1", want: Detail("bbh/snarks", "foo/bar")},
		{raw: "task=gsm8k", want: Detail("gsm8k", "")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.raw))
		})
	}
}

func TestParseUnknownBenchmark(t *testing.T) {
	_, err := Parse(url.Values{ParamBenchmark: {"mt_bench"}})
	require.ErrorIs(t, err, ErrUnknownBenchmark)
}

func TestParseRejectsUncleanPaths(t *testing.T) {
	tests := []url.Values{
		{ParamTask: {"bbh/../gsm8k"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"../../../../x"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"./gsm8k"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"bbh//snarks"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"/gsm8k"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"bbh/"}, ParamModel: {"foo/bar"}},
		{ParamTask: {"gsm8k"}, ParamModel: {".."}},
	}
	for _, q := range tests {
		t.Run(q.Encode(), func(t *testing.T) {
			_, err := Parse(q)
			require.ErrorIs(t, err, ErrInvalidRoute)
		})
	}
}

func TestQueryRoundTrip(t *testing.T) {
	routes := []Route{
		{Kind: Aggregate},
		{Kind: TaskBreakdown},
		Detail("gsm8k", "foo/bar"),
		Detail("bbh/date_understanding", "org/model-name"),
		Detail("mmlu/high_school_us_history", "a b/c&d=e"),
		Detail("gsm8k", ""),
	}
	for _, r := range routes {
		t.Run(r.String(), func(t *testing.T) {
			href := r.Href()
			require.True(t, strings.HasPrefix(href, "?"))
			assert.Equal(t, r, parse(t, strings.TrimPrefix(href, "?")))
		})
	}
}

func TestQueryOmitsEmptyModel(t *testing.T) {
	q := Detail("gsm8k", "").Query()
	assert.False(t, q.Has(ParamModel))
	assert.Equal(t, "cot", q.Get(ParamBenchmark))
}

func TestBack(t *testing.T) {
	tests := []struct {
		name string
		from Route
		want Route
	}{
		{name: "aggregate stays", from: Route{Kind: Aggregate}, want: Route{Kind: Aggregate}},
		{name: "breakdown to aggregate", from: Route{Kind: TaskBreakdown}, want: Route{Kind: Aggregate}},
		{name: "single segment to aggregate", from: Detail("gsm8k", "foo/bar"), want: Route{Kind: Aggregate}},
		{name: "bbh task to breakdown", from: Detail("bbh/snarks", "foo/bar"), want: Route{Kind: TaskBreakdown}},
		{name: "deep task keeps model", from: Detail("a/b/c", "foo/bar"), want: Detail("a/b", "foo/bar")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Back())
		})
	}
}

func TestBackDropsOneSegment(t *testing.T) {
	for _, task := range []string{"x/y", "x/y/z", "a/b/c/d/e"} {
		n := len(strings.Split(task, "/"))
		back := Detail(task, "m").Back()
		assert.Len(t, strings.Split(back.TaskPath(), "/"), n-1, task)
	}
}

func TestFile(t *testing.T) {
	assert.Equal(t, "index.html", Route{Kind: Aggregate}.File())
	assert.Equal(t, "bbh.html", Route{Kind: TaskBreakdown}.File())
	assert.Equal(t, "samples/foo--bar/bbh__snarks.html", Detail("bbh/snarks", "foo/bar").File())
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Aggregate, TaskBreakdown, SampleDetail} {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
}
