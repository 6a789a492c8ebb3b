package logcat

import (
	"reflect"
	"testing"
)

func TestParseLevelSpec(t *testing.T) {
	tests := []struct {
		spec    string
		mode    LevelMode
		wantErr bool
	}{
		{spec: "W", mode: LevelModeSet},
		{spec: "VDI", mode: LevelModeSet},
		{spec: "e", mode: LevelModeSet},
		{spec: "I+", mode: LevelModeAtLeast},
		{spec: "w+", mode: LevelModeAtLeast},
		{spec: "U", mode: LevelModeSet},
		{spec: "", wantErr: true},
		{spec: "  ", wantErr: true},
		{spec: "X", wantErr: true},
		{spec: "WE+", wantErr: true},
		{spec: "+", wantErr: true},
		{spec: "U+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseLevelSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevelSpec(%q) = %+v, want error", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevelSpec(%q) error = %v", tt.spec, err)
			}
			if got.Mode != tt.mode {
				t.Errorf("Mode = %v, want %v", got.Mode, tt.mode)
			}
		})
	}
}

func TestLevelFilterAtLeast(t *testing.T) {
	lf, err := ParseLevelSpec("W+")
	if err != nil {
		t.Fatalf("ParseLevelSpec: %v", err)
	}

	accepted := []Level{LevelWarning, LevelError, LevelFatal}
	rejected := []Level{LevelVerbose, LevelDebug, LevelInfo, LevelUnknown}
	for _, lvl := range accepted {
		if !lf.Matches(lvl) {
			t.Errorf("W+ rejected %v", lvl)
		}
	}
	for _, lvl := range rejected {
		if lf.Matches(lvl) {
			t.Errorf("W+ accepted %v", lvl)
		}
	}
}

func TestLevelFilterSet(t *testing.T) {
	lf, err := ParseLevelSpec("VDI")
	if err != nil {
		t.Fatalf("ParseLevelSpec: %v", err)
	}
	for _, lvl := range []Level{LevelVerbose, LevelDebug, LevelInfo} {
		if !lf.Matches(lvl) {
			t.Errorf("VDI rejected %v", lvl)
		}
	}
	for _, lvl := range []Level{LevelWarning, LevelError, LevelFatal, LevelUnknown} {
		if lf.Matches(lvl) {
			t.Errorf("VDI accepted %v", lvl)
		}
	}

	// Unknown matches only when the set names it explicitly.
	withUnknown, err := ParseLevelSpec("UE")
	if err != nil {
		t.Fatalf("ParseLevelSpec: %v", err)
	}
	if !withUnknown.Matches(LevelUnknown) {
		t.Error("UE rejected LevelUnknown")
	}
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	var f Filter
	records := []Record{
		ParseLine("01-01 00:00:00.000  100  100 I MyTag: hello"),
		ParseLine("garbage that does not parse"),
		{},
	}
	for i, rec := range records {
		if !f.Match(rec) {
			t.Errorf("zero filter rejected record %d", i)
		}
	}
}

func TestFilterAndComposition(t *testing.T) {
	records := []Record{
		ParseLine("01-01 00:00:00.000  100  100 I MyTag: hello"),
		ParseLine("01-01 00:00:01.000  100  100 E MyTag: boom"),
		ParseLine("01-01 00:00:02.000  200  200 E OtherTag: boom again"),
		ParseLine("unparseable"),
	}

	matching := func(f Filter) []int {
		var idx []int
		for i, rec := range records {
			if f.Match(rec) {
				idx = append(idx, i)
			}
		}
		return idx
	}

	base := matching(Filter{})
	if len(base) != len(records) {
		t.Fatalf("empty filter matched %d of %d", len(base), len(records))
	}

	// Enabling any term only shrinks the matching set.
	levels, _ := ParseLevelSpec("E")
	narrowings := []Filter{
		{Levels: levels},
		{Tag: "MyTag"},
		{Text: "boom"},
		{PackageEnabled: true, Package: "OtherTag"},
		{Levels: levels, Tag: "MyTag", Text: "boom"},
	}
	for _, f := range narrowings {
		got := matching(f)
		if len(got) > len(base) {
			t.Errorf("filter %+v grew the matching set", f)
		}
		for _, i := range got {
			if !f.Match(records[i]) {
				t.Errorf("filter %+v nondeterministic on record %d", f, i)
			}
		}
	}

	// All enabled terms must hold at once.
	combined := Filter{Levels: levels, Tag: "MyTag", Text: "boom"}
	if got := matching(combined); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("combined filter matched %v, want [1]", got)
	}
}

func TestFilterLevelScenario(t *testing.T) {
	ring := NewRing(DefaultCapacity)
	ring.Append(ParseLine("01-01 00:00:00.000  100  100 I MyTag: hello"))
	ring.Append(ParseLine("01-01 00:00:00.000  100  100 E MyTag: boom"))

	levels, err := ParseLevelSpec("E")
	if err != nil {
		t.Fatalf("ParseLevelSpec: %v", err)
	}
	f := Filter{Levels: levels}

	var visible []Record
	for _, rec := range ring.Snapshot() {
		if f.Match(rec) {
			visible = append(visible, rec)
		}
	}
	if len(visible) != 1 {
		t.Fatalf("visible = %d records, want 1", len(visible))
	}
	if visible[0].Message != "boom" {
		t.Errorf("visible message = %q, want %q", visible[0].Message, "boom")
	}
}

func TestFilterTextAfterBuffering(t *testing.T) {
	// Setting a text filter after lines were buffered must narrow the
	// view from the snapshot alone.
	ring := NewRing(DefaultCapacity)
	ring.Append(ParseLine("01-01 00:00:00.000  100  100 I MyTag: hello"))
	ring.Append(ParseLine("01-01 00:00:00.000  100  100 E MyTag: boom"))

	f := Filter{Text: "boom"}
	var visible []Record
	for _, rec := range ring.Snapshot() {
		if f.Match(rec) {
			visible = append(visible, rec)
		}
	}
	if len(visible) != 1 || visible[0].Message != "boom" {
		t.Fatalf("visible = %+v, want only the boom record", visible)
	}
}

func TestFilterIdempotentOverSnapshot(t *testing.T) {
	ring := NewRing(16)
	lines := []string{
		"01-01 00:00:00.000  100  100 V Noise: v",
		"01-01 00:00:00.000  100  100 W Worker: slow",
		"01-01 00:00:00.000  100  100 E Worker: failed",
		"not a logcat line",
	}
	for _, l := range lines {
		ring.Append(ParseLine(l))
	}

	levels, _ := ParseLevelSpec("W+")
	f := Filter{Levels: levels}
	snap := ring.Snapshot()

	run := func() []uint64 {
		var seqs []uint64
		for _, rec := range snap {
			if f.Match(rec) {
				seqs = append(seqs, rec.Seq)
			}
		}
		return seqs
	}
	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("replays differ: %v vs %v", first, second)
	}
}

func TestFilterPackageTerm(t *testing.T) {
	rec := ParseLine("01-01 00:00:00.000  100  100 I com.example.app: started")

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"disabled ignores package", Filter{Package: "com.other"}, true},
		{"enabled without name is a no-op", Filter{PackageEnabled: true}, true},
		{"enabled matching substring", Filter{PackageEnabled: true, Package: "com.example"}, true},
		{"enabled non-matching", Filter{PackageEnabled: true, Package: "com.other"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Match(rec); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterExactMatchWrapping(t *testing.T) {
	short := ParseLine("01-01 00:00:00.000  100  100 I Net: ok")
	long := ParseLine("01-01 00:00:00.000  100  100 I NetworkMonitor: ok")

	substr := Filter{Tag: "Net"}
	if !substr.Match(short) || !substr.Match(long) {
		t.Error("substring tag filter should match both tags")
	}

	exact := Filter{Tag: `"Net"`}
	if !exact.Match(short) {
		t.Error("exact tag filter rejected exact tag")
	}
	if exact.Match(long) {
		t.Error("exact tag filter accepted prefixed tag")
	}
}

func TestFilterClear(t *testing.T) {
	levels, _ := ParseLevelSpec("I+")
	f := Filter{
		PackageEnabled: true,
		Package:        "com.example",
		Tag:            "Worker",
		Levels:         levels,
		Text:           "boom",
	}

	cleared := f.ClearTransient()
	if !cleared.PackageEnabled || cleared.Package != "com.example" {
		t.Errorf("ClearTransient dropped the package term: %+v", cleared)
	}
	if cleared.Tag != "" || cleared.Text != "" || cleared.Levels.Mode != LevelModeOff {
		t.Errorf("ClearTransient kept transient terms: %+v", cleared)
	}

	if (Filter{}).Active() {
		t.Error("zero filter reported active")
	}
	if !f.Active() {
		t.Error("configured filter reported inactive")
	}
}
