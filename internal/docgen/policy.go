package docgen

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/abhay-ecaret/centrim-docgen/internal/term"
)

// ModelStore is the backend surface model policies need: what is
// available locally and how to make a model available.
type ModelStore interface {
	ListModels(ctx context.Context) []string
	EnsureAvailable(ctx context.Context, name string) bool
	Pull(ctx context.Context, name string) bool
}

// ModelPolicy resolves the model identifier a run will use. Resolution
// happens once, before any commit is touched; an error aborts the run.
type ModelPolicy interface {
	Resolve(ctx context.Context, requested string) (string, error)
}

// Unrestricted accepts any requested model, falling back to Default when
// none is requested, and pulls it when missing.
type Unrestricted struct {
	Store   ModelStore
	Default string
}

// Resolve implements ModelPolicy.
func (p Unrestricted) Resolve(ctx context.Context, requested string) (string, error) {
	name := requested
	if name == "" {
		name = p.Default
	}
	if !p.Store.EnsureAvailable(ctx, name) {
		return "", fmt.Errorf("model %q is not available and could not be pulled", name)
	}
	return name, nil
}

// AllowListWithDefault restricts the run to an approved model list,
// silently substituting the default for anything else.
type AllowListWithDefault struct {
	Store   ModelStore
	Printer *term.Printer
	Allowed []string
	Default string
}

// Resolve implements ModelPolicy.
func (p AllowListWithDefault) Resolve(ctx context.Context, requested string) (string, error) {
	name := requested
	if !slices.Contains(p.Allowed, name) {
		if name != "" {
			p.Printer.Warnf("Model '%s' is not on the allowed list. Using '%s'.", name, p.Default)
		}
		name = p.Default
	}
	if !p.Store.EnsureAvailable(ctx, name) {
		return "", fmt.Errorf("model %q is not available and could not be pulled", name)
	}
	return name, nil
}

// InteractivePull resolves the model by conversation: confirm pulling a
// requested-but-missing model, or pick from the locally available ones.
type InteractivePull struct {
	Store   ModelStore
	Printer *term.Printer
}

// Resolve implements ModelPolicy.
func (p InteractivePull) Resolve(ctx context.Context, requested string) (string, error) {
	local := p.Store.ListModels(ctx)

	if requested != "" {
		base, _, _ := strings.Cut(requested, ":")
		if slices.Contains(local, base) {
			p.Printer.Stepf("Using model '%s' specified via command line.", requested)
			return requested, nil
		}
		p.Printer.Warnf("Model '%s' not found locally.", requested)
		var confirmed bool
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("Pull '%s' now?", requested)).
			Value(&confirmed)
		if err := confirm.Run(); err != nil {
			return "", fmt.Errorf("model confirmation: %w", err)
		}
		if !confirmed {
			return "", fmt.Errorf("model %q not pulled; cannot proceed without it", requested)
		}
		if !p.Store.Pull(ctx, requested) {
			return "", fmt.Errorf("failed to pull model %q", requested)
		}
		return requested, nil
	}

	if len(local) == 0 {
		p.Printer.Infof("No Ollama models found locally. Recommended: 'phi3' or 'mistral'.")
		var name string
		input := huh.NewInput().
			Title("Enter a model name to pull").
			Placeholder("phi3").
			Value(&name)
		if err := input.Run(); err != nil {
			return "", fmt.Errorf("model input: %w", err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return "", fmt.Errorf("no model specified; cannot proceed")
		}
		if !p.Store.Pull(ctx, name) {
			return "", fmt.Errorf("failed to pull model %q", name)
		}
		return name, nil
	}

	const pullAnother = "pull another model..."
	options := huh.NewOptions(append(slices.Clone(local), pullAnother)...)
	var choice string
	sel := huh.NewSelect[string]().
		Title("Select an Ollama model").
		Options(options...).
		Value(&choice)
	if err := sel.Run(); err != nil {
		return "", fmt.Errorf("model selection: %w", err)
	}

	if choice != pullAnother {
		p.Printer.Successf("Selected model: %s", choice)
		return choice, nil
	}

	var name string
	input := huh.NewInput().
		Title("Enter a model name to pull").
		Value(&name)
	if err := input.Run(); err != nil {
		return "", fmt.Errorf("model input: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("no model specified; cannot proceed")
	}
	if !p.Store.Pull(ctx, name) {
		return "", fmt.Errorf("failed to pull model %q", name)
	}
	return name, nil
}
