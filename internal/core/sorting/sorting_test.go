package sorting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type device struct {
	OS string `json:"os"`
}

type row struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Raised   int64          `json:"raised"`
	Seen     *time.Time     `json:"seen"`
	Device   *device        `json:"deviceInfo"`
	Extra    map[string]any `json:"extra"`
	internal string
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestState_Click(t *testing.T) {
	var s State

	s = s.Click("name")
	assert.Equal(t, State{Key: "name", Dir: Asc}, s)
	s = s.Click("name")
	assert.Equal(t, State{Key: "name", Dir: Desc}, s)
	s = s.Click("name")
	assert.Equal(t, State{}, s)
	assert.False(t, s.Sorted())

	// A different key always starts ascending, even from desc.
	s = State{Key: "name", Dir: Desc}.Click("raised")
	assert.Equal(t, State{Key: "raised", Dir: Asc}, s)
}

func TestSort_ThreeClicksRestoreOriginalOrder(t *testing.T) {
	data := []row{{ID: "b", Name: "beta"}, {ID: "a", Name: "Alpha"}, {ID: "c", Name: "charlie"}}

	var s State
	s = s.Click("name")
	assert.Equal(t, []string{"a", "b", "c"}, ids(Apply(s, data)))
	s = s.Click("name")
	assert.Equal(t, []string{"c", "b", "a"}, ids(Apply(s, data)))
	s = s.Click("name")
	assert.Equal(t, []string{"b", "a", "c"}, ids(Apply(s, data)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	data := []row{{ID: "2", Raised: 2}, {ID: "1", Raised: 1}}
	out := Sort(data, "raised", Asc)
	assert.Equal(t, []string{"1", "2"}, ids(out))
	assert.Equal(t, []string{"2", "1"}, ids(data))
}

func TestSort_Numbers(t *testing.T) {
	data := []row{{ID: "a", Raised: 100}, {ID: "b", Raised: 9}, {ID: "c", Raised: 50}}
	assert.Equal(t, []string{"b", "c", "a"}, ids(Sort(data, "raised", Asc)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(Sort(data, "raised", Desc)))
}

func TestSort_CaseInsensitiveStringsAreStable(t *testing.T) {
	data := []row{{ID: "1", Name: "kiosk"}, {ID: "2", Name: "Kiosk"}, {ID: "3", Name: "atrium"}}
	assert.Equal(t, []string{"3", "1", "2"}, ids(Sort(data, "name", Asc)))
}

func TestSort_NullsLastAscendingFirstDescending(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)
	data := []row{{ID: "nil"}, {ID: "late", Seen: &now}, {ID: "early", Seen: &earlier}}

	assert.Equal(t, []string{"early", "late", "nil"}, ids(Sort(data, "seen", Asc)))
	assert.Equal(t, []string{"nil", "late", "early"}, ids(Sort(data, "seen", Desc)))
}

func TestSort_DottedPath(t *testing.T) {
	data := []row{
		{ID: "1", Device: &device{OS: "windows"}},
		{ID: "2"},
		{ID: "3", Device: &device{OS: "Android"}},
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids(Sort(data, "deviceInfo.os", Asc)))
	assert.Equal(t, []string{"3", "1", "2"}, ids(Sort(data, "Device.OS", Asc)))
}

func TestSort_SecondsShapedTimestamps(t *testing.T) {
	data := []row{
		{ID: "new", Extra: map[string]any{"ts": map[string]any{"seconds": int64(2000)}}},
		{ID: "old", Extra: map[string]any{"ts": map[string]any{"seconds": int64(1000)}}},
		{ID: "mid", Extra: map[string]any{"ts": time.Unix(1500, 0)}},
	}
	assert.Equal(t, []string{"old", "mid", "new"}, ids(Sort(data, "extra.ts", Asc)))
}

func TestSort_NoKeyReturnsCopy(t *testing.T) {
	data := []row{{ID: "b"}, {ID: "a"}}
	out := Sort(data, "", Asc)
	require.Len(t, out, 2)
	out[0].ID = "changed"
	assert.Equal(t, "b", data[0].ID)
	assert.Empty(t, Sort[row](nil, "id", Asc))
}

func TestLookup(t *testing.T) {
	r := row{ID: "x", Extra: map[string]any{"a": map[string]any{"b": 3}}, internal: "hidden"}
	assert.Equal(t, 3, Lookup(r, "extra.a.b"))
	assert.Nil(t, Lookup(r, "extra.a.missing.deeper"))
	assert.Nil(t, Lookup(r, "internal"))
	assert.Nil(t, Lookup(&r, "deviceInfo.os"))
	assert.Equal(t, "x", Lookup(&r, "id"))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Asc, ParseDirection("ASC"))
	assert.Equal(t, Desc, ParseDirection(" desc "))
	assert.Equal(t, None, ParseDirection("sideways"))
}
