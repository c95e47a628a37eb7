package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/semverist/bumpver/pkg/version"
)

// ConfiguredFile is one file whose version strings are rewritten on bump.
type ConfiguredFile struct {
	Path string
	vc   *version.Config
}

func NewConfiguredFile(path string, vc *version.Config) *ConfiguredFile {
	return &ConfiguredFile{Path: path, vc: vc}
}

func (f *ConfiguredFile) String() string {
	return f.Path
}

// ShouldContainVersion fails unless the file contains the serialized
// current version. When the search template was left at its default, the
// originally matched version string is accepted as a fallback; a custom
// search template must match exactly.
func (f *ConfiguredFile) ShouldContainVersion(v *version.Version, ctx *version.Context) error {
	current, err := f.vc.Serialize(v, ctx)
	if err != nil {
		return err
	}
	ctx.Values["current_version"] = current

	searchFor, err := f.vc.SearchText(ctx)
	if err != nil {
		return err
	}

	found, err := f.Contains(searchFor)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if f.vc.IsDefaultSearch() && v.Original() != "" {
		found, err = f.Contains(v.Original())
		if err != nil {
			return err
		}
		if found {
			return nil
		}
	}

	return fmt.Errorf("did not find %q in file %s", searchFor, f.Path)
}

// Contains reports whether the search text occurs in the file. Multiline
// search text matches a window of lines whose first and last lines contain
// the first and last search lines and whose middle lines are identical.
func (f *ConfiguredFile) Contains(search string) (bool, error) {
	if search == "" {
		return false, nil
	}
	data, err := ioutil.ReadFile(f.Path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	content := string(data)

	if !strings.Contains(search, "\n") {
		return strings.Contains(content, search), nil
	}

	searchLines := strings.Split(search, "\n")
	lines := strings.Split(content, "\n")
	for i := 0; i+len(searchLines) <= len(lines); i++ {
		window := lines[i : i+len(searchLines)]
		if !strings.Contains(window[0], searchLines[0]) {
			continue
		}
		if !strings.Contains(window[len(window)-1], searchLines[len(searchLines)-1]) {
			continue
		}
		middleEqual := true
		for j := 1; j < len(searchLines)-1; j++ {
			if window[j] != searchLines[j] {
				middleEqual = false
				break
			}
		}
		if middleEqual {
			logger.Info("Found %q in %s at line %d", search, f.Path, i+1)
			return true, nil
		}
	}
	return false, nil
}

// Replace swaps the current version for the new one. When the rendered
// search text matches nothing, the originally parsed version string is
// tried instead. With dryRun the file is left untouched.
func (f *ConfiguredFile) Replace(current, next *version.Version, ctx *version.Context, dryRun bool) error {
	data, err := ioutil.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}
	before := string(data)

	currentStr, err := f.vc.Serialize(current, ctx)
	if err != nil {
		return err
	}
	ctx.Values["current_version"] = currentStr

	newStr, err := f.vc.Serialize(next, ctx)
	if err != nil {
		return err
	}
	ctx.Values["new_version"] = newStr

	searchFor, err := f.vc.SearchText(ctx)
	if err != nil {
		return err
	}
	replaceWith, err := f.vc.ReplaceText(ctx)
	if err != nil {
		return err
	}

	after := strings.ReplaceAll(before, searchFor, replaceWith)
	if after == before && current.Original() != "" {
		after = strings.ReplaceAll(before, current.Original(), replaceWith)
	}

	if after == before {
		if dryRun {
			logger.Info("Would not change file %s", f.Path)
		} else {
			logger.Info("Not changing file %s", f.Path)
		}
		return nil
	}

	if dryRun {
		logger.Info("Would change file %s", f.Path)
		return nil
	}
	logger.Info("Changing file %s", f.Path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode()
	}
	if err := ioutil.WriteFile(f.Path, []byte(after), mode); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}
