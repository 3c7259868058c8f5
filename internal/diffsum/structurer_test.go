package diffsum

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDiffer serves canned name-status listings and per-file hunks.
type fakeDiffer struct {
	nameStatus string
	hunks      map[string]string

	lastParent string
	fileCalls  int
}

func (f *fakeDiffer) NameStatus(_ context.Context, parent, _ string) string {
	f.lastParent = parent
	return f.nameStatus
}

func (f *fakeDiffer) FunctionContextDiff(_ context.Context, _, _, path string) string {
	f.fileCalls++
	return f.hunks[path]
}

func pyHunk(name string) string {
	return fmt.Sprintf("@@ -1,4 +1,4 @@ def %s\n-    pass\n+    return 1\n", name)
}

func TestStructure_GroupsByLanguage(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "M\tapp/main.py\nA\tweb/app.js\nM\tapp/util.py\n",
		hunks: map[string]string{
			"app/main.py": pyHunk("hello"),
			"web/app.js":  "@@ -1,2 +1,3 @@ function render\n+x\n",
			"app/util.py": pyHunk("helper"),
		},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups, 2)
	require.Len(t, groups["Python"], 2)
	require.Len(t, groups["JavaScript"], 1)

	// Diff order preserved within a language.
	assert.Equal(t, "app/main.py", groups["Python"][0].Path)
	assert.Equal(t, "app/util.py", groups["Python"][1].Path)
	assert.Equal(t, "M", groups["Python"][0].Status)
	assert.Equal(t, "A", groups["JavaScript"][0].Status)

	require.Len(t, groups["Python"][0].Symbols, 1)
	assert.Equal(t, "hello", groups["Python"][0].Symbols[0].Name)
	assert.Equal(t, KindFunction, groups["Python"][0].Symbols[0].Kind)
}

func TestStructure_DefaultParent(t *testing.T) {
	d := &fakeDiffer{}
	s := NewStructurer(d, DefaultLimits())

	s.Structure(context.Background(), "abc123", "")
	assert.Equal(t, "abc123~1", d.lastParent)

	s.Structure(context.Background(), "abc123", "p0")
	assert.Equal(t, "p0", d.lastParent)
}

func TestStructure_EmptyNameStatus(t *testing.T) {
	d := &fakeDiffer{}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	assert.Empty(t, groups)
	assert.Zero(t, d.fileCalls)
}

func TestStructure_FileLimit(t *testing.T) {
	var lines []string
	hunks := make(map[string]string)
	for i := 0; i < 30; i++ {
		path := fmt.Sprintf("f%02d.py", i)
		lines = append(lines, "M\t"+path)
		hunks[path] = pyHunk("f")
	}
	d := &fakeDiffer{nameStatus: strings.Join(lines, "\n"), hunks: hunks}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	// Files past the cap are silently ignored.
	assert.Len(t, groups["Python"], 20)
	assert.Equal(t, 20, d.fileCalls)
}

func TestStructure_DropsUnrecognized(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "M\ttool.exe\nM\tMakefile\nM\tmain.py\n",
		hunks: map[string]string{
			"tool.exe": "@@ -1 +1 @@\n+binary\n",
			"Makefile": "@@ -1 +1 @@\n+all:\n",
			"main.py":  pyHunk("hello"),
		},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups, 1)
	require.Contains(t, groups, "Python")
	for lang := range groups {
		assert.NotEqual(t, "EXE", lang)
		assert.NotEqual(t, LanguageOther, lang)
	}
}

func TestStructure_SkipsFileWithEmptyHunks(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "M\tmain.py\nM\tother.py\n",
		hunks:      map[string]string{"main.py": pyHunk("hello")},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups["Python"], 1)
	assert.Equal(t, "main.py", groups["Python"][0].Path)
}

func TestStructure_FileWithoutSymbolsStillRecorded(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "M\tnotes.md\n",
		hunks:      map[string]string{"notes.md": "some non-hunk text\n"},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups["Documentation"], 1)
	fc := groups["Documentation"][0]
	assert.Empty(t, fc.Symbols)
	assert.Equal(t, "some non-hunk text\n", fc.Excerpt)
}

func TestStructure_MalformedNameStatusLineSkipped(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "garbage-without-tab\nM\tmain.py\n",
		hunks:      map[string]string{"main.py": pyHunk("hello")},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups["Python"], 1)
}

func TestStructure_FileExcerptTruncated(t *testing.T) {
	long := pyHunk("hello") + strings.Repeat("+pad\n", 600)
	d := &fakeDiffer{
		nameStatus: "M\tmain.py\n",
		hunks:      map[string]string{"main.py": long},
	}
	s := NewStructurer(d, DefaultLimits())

	groups := s.Structure(context.Background(), "abc", "")
	require.Len(t, groups["Python"], 1)
	excerpt := groups["Python"][0].Excerpt
	assert.True(t, strings.HasSuffix(excerpt, TruncationMarker))
	assert.Len(t, excerpt, 2000+len(TruncationMarker))
}

func TestStructure_Idempotent(t *testing.T) {
	d := &fakeDiffer{
		nameStatus: "M\tmain.py\nA\tapp.js\n",
		hunks: map[string]string{
			"main.py": pyHunk("hello"),
			"app.js":  "@@ -1,2 +1,3 @@ function render\n+x\n",
		},
	}
	s := NewStructurer(d, DefaultLimits())

	first := s.Structure(context.Background(), "abc", "")
	second := s.Structure(context.Background(), "abc", "")
	assert.Equal(t, first, second)
}
