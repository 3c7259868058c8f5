package docgen

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

type fakeStore struct {
	local     []string
	available map[string]bool
	pulled    []string
	pullOK    bool
}

func (f *fakeStore) ListModels(context.Context) []string { return f.local }

func (f *fakeStore) EnsureAvailable(_ context.Context, name string) bool {
	if f.available == nil {
		return true
	}
	return f.available[name]
}

func (f *fakeStore) Pull(_ context.Context, name string) bool {
	f.pulled = append(f.pulled, name)
	return f.pullOK
}

func testPrinter() (*term.Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return term.NewPrinter(&buf), &buf
}

func TestUnrestricted_UsesRequested(t *testing.T) {
	p := Unrestricted{Store: &fakeStore{}, Default: "phi3:medium"}

	model, err := p.Resolve(context.Background(), "llama3:8b")
	require.NoError(t, err)
	assert.Equal(t, "llama3:8b", model)
}

func TestUnrestricted_DefaultWhenUnset(t *testing.T) {
	p := Unrestricted{Store: &fakeStore{}, Default: "phi3:medium"}

	model, err := p.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "phi3:medium", model)
}

func TestUnrestricted_UnavailableModel(t *testing.T) {
	store := &fakeStore{available: map[string]bool{}}
	p := Unrestricted{Store: store, Default: "phi3:medium"}

	_, err := p.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestAllowList_AcceptsAllowedModel(t *testing.T) {
	printer, _ := testPrinter()
	p := AllowListWithDefault{
		Store:   &fakeStore{},
		Printer: printer,
		Allowed: []string{"phi3:medium", "mistral:7b"},
		Default: "phi3:medium",
	}

	model, err := p.Resolve(context.Background(), "mistral:7b")
	require.NoError(t, err)
	assert.Equal(t, "mistral:7b", model)
}

func TestAllowList_FallsBackToDefault(t *testing.T) {
	printer, buf := testPrinter()
	p := AllowListWithDefault{
		Store:   &fakeStore{},
		Printer: printer,
		Allowed: []string{"phi3:medium"},
		Default: "phi3:medium",
	}

	model, err := p.Resolve(context.Background(), "gpt-oss:120b")
	require.NoError(t, err)
	assert.Equal(t, "phi3:medium", model)
	assert.Contains(t, buf.String(), "not on the allowed list")
}

func TestAllowList_EmptyRequestNoWarning(t *testing.T) {
	printer, buf := testPrinter()
	p := AllowListWithDefault{
		Store:   &fakeStore{},
		Printer: printer,
		Allowed: []string{"phi3:medium"},
		Default: "phi3:medium",
	}

	model, err := p.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "phi3:medium", model)
	assert.NotContains(t, buf.String(), "allowed list")
}

func TestAllowList_UnavailableDefault(t *testing.T) {
	printer, _ := testPrinter()
	p := AllowListWithDefault{
		Store:   &fakeStore{available: map[string]bool{}},
		Printer: printer,
		Allowed: []string{"phi3:medium"},
		Default: "phi3:medium",
	}

	_, err := p.Resolve(context.Background(), "")
	require.Error(t, err)
}

func TestInteractivePull_LocalModelNeedsNoPrompt(t *testing.T) {
	printer, _ := testPrinter()
	p := InteractivePull{Store: &fakeStore{local: []string{"phi3"}}, Printer: printer}

	model, err := p.Resolve(context.Background(), "phi3:medium")
	require.NoError(t, err)
	assert.Equal(t, "phi3:medium", model)
}
