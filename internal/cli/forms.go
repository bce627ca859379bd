package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/lumen/internal/cli/formatter"
	"github.com/alexanderramin/lumen/internal/domain"
)

var errPromptAborted = errors.New("cancelled")

func lumenHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// prompt runs form when the session is interactive. Outside a terminal it
// reports which flag is missing instead.
func (a *App) prompt(ctx context.Context, form *huh.Form, missing string) error {
	if !a.Interactive {
		return fmt.Errorf("--%s is required", missing)
	}
	run := a.runForm
	if run == nil {
		run = func(ctx context.Context, f *huh.Form) error { return f.RunWithContext(ctx) }
	}
	if err := run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errPromptAborted
		}
		return err
	}
	return nil
}

type userFields struct {
	phone string
	name  string
}

func userEnsureForm(f *userFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phone").
				Placeholder("+34600000000").
				Value(&f.phone).
				Validate(validateRequired("phone")),
			huh.NewInput().
				Title("Display name").
				Placeholder("optional").
				Value(&f.name),
		),
	).WithTheme(lumenHuhTheme()).WithShowHelp(false)
}

type habitFields struct {
	name     string
	category string
}

var habitCategoryOptions = []domain.HabitCategory{
	domain.CategoryPhysical,
	domain.CategoryMental,
	domain.CategorySocial,
	domain.CategorySleep,
	domain.CategoryNutrition,
	domain.CategoryOther,
}

func habitAddForm(f *habitFields) *huh.Form {
	options := make([]huh.Option[string], 0, len(habitCategoryOptions))
	for _, c := range habitCategoryOptions {
		options = append(options, huh.NewOption(string(c), string(c)))
	}
	if f.category == "" {
		f.category = string(domain.CategoryOther)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Placeholder("caminar").
				Value(&f.name).
				Validate(validateRequired("habit name")),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&f.category),
		),
	).WithTheme(lumenHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
