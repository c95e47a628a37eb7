package main

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/semverist/bumpver/pkg/version"
)

type bumpOption struct {
	Label   string
	Preview string
}

// partOptions builds the selectable bump choices: one entry per present
// part in canonical order, previewing the serialized result. Parts that
// cannot be bumped (exhausted enumerations) are left out.
func partOptions(current *version.Version, vc *version.Config, ctx *version.Context) []bumpOption {
	options := []bumpOption{}
	for _, name := range vc.Order() {
		if _, ok := current.Part(name); !ok {
			continue
		}
		next, err := current.Bump(name, vc.Order())
		if err != nil {
			continue
		}
		preview, err := vc.Serialize(next, ctx.Clone())
		if err != nil {
			continue
		}
		options = append(options, bumpOption{Label: name, Preview: preview})
	}
	return options
}

// promptForPart lets the user pick which part to bump. An empty part name
// means the bump was skipped.
func promptForPart(currentStr string, current *version.Version, vc *version.Config, ctx *version.Context) (string, error) {
	options := append(
		[]bumpOption{{Label: "no, skip bump", Preview: currentStr}},
		partOptions(current, vc, ctx)...,
	)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   fmt.Sprintf("%s {{ .Label | cyan | underline }} ({{ .Preview | green }})", promptui.Styler(promptui.FGGreen)("⇨")),
		Inactive: "  {{ .Label | cyan }} ({{ .Preview | green }})",
		Selected: fmt.Sprintf("%s bumping {{ .Label }} to {{ .Preview | green }}", promptui.IconGood),
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf(
			"Current version is %s, which part shall we bump",
			currentStr,
		),
		Items:     options,
		Templates: templates,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if i == 0 {
		return "", nil
	}
	return options[i].Label, nil
}

// confirmApply asks before any file is touched.
func confirmApply(newVersion string) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Apply new version %s", newVersion),
		IsConfirm: true,
	}
	result, err := prompt.Run()
	if err != nil {
		return false
	}
	return result == "y" || result == ""
}

func announceBump(currentStr, newStr string) {
	fmt.Println(
		promptui.Styler(promptui.BGBlue)(
			fmt.Sprintf("%s → %s", currentStr, newStr),
		),
	)
}
