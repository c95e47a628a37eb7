package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semverist/bumpver/pkg/version"
)

type cliOptions struct {
	configFile     string
	currentVersion string
	newVersion     string
	parse          string
	serialize      []string
	search         string
	replace        string
	tagName        string
	tagMessage     string
	message        string
	commit         bool
	noCommit       bool
	tag            bool
	noTag          bool
	dryRun         bool
	list           bool
	interactive    bool
	verbosity      int
}

func configureCliCommands() {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "bumpver",
		Short: "bump version strings everywhere they live",
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config-file", "", "config file to read settings from (default: .bumpver.yaml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "print verbose logging to stdout")

	bumpCmd := &cobra.Command{
		Use:   "bump [part] [file...]",
		Short: "bump a version part and rewrite the configured files",
		Run: func(cmd *cobra.Command, args []string) {
			logger = NewLoggerWithLevel(VerbosityLevel(opts.verbosity))
			CheckError(runBump(cmd, opts, args))
		},
	}
	bumpCmd.Flags().StringVar(&opts.currentVersion, "current-version", "", "version that needs to be updated")
	bumpCmd.Flags().StringVar(&opts.newVersion, "new-version", "", "new version that should be in the files")
	bumpCmd.Flags().StringVar(&opts.parse, "parse", defaultParse, "regex parsing the version string")
	bumpCmd.Flags().StringArrayVar(&opts.serialize, "serialize", []string{defaultSerialize}, "how to format what is parsed back to a version")
	bumpCmd.Flags().StringVar(&opts.search, "search", version.DefaultSearch, "template for the complete string to search")
	bumpCmd.Flags().StringVar(&opts.replace, "replace", version.DefaultReplace, "template for the complete string to replace")
	bumpCmd.Flags().StringVar(&opts.tagName, "tag-name", defaultTagName, "tag name (only works with --tag)")
	bumpCmd.Flags().StringVar(&opts.tagMessage, "tag-message", defaultMessage, "tag message")
	bumpCmd.Flags().StringVarP(&opts.message, "message", "m", defaultMessage, "commit message")
	bumpCmd.Flags().BoolVar(&opts.commit, "commit", false, "commit changed files to the configured repository")
	bumpCmd.Flags().BoolVar(&opts.noCommit, "no-commit", false, "do not commit changed files")
	bumpCmd.Flags().BoolVar(&opts.tag, "tag", false, "create a tag for the new version")
	bumpCmd.Flags().BoolVar(&opts.noTag, "no-tag", false, "do not create a tag")
	bumpCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "don't write any files, just pretend")
	bumpCmd.Flags().BoolVar(&opts.list, "list", false, "list machine readable information")
	bumpCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the part and confirm before writing")
	rootCmd.AddCommand(bumpCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "show the parsed current version",
		Run: func(cmd *cobra.Command, args []string) {
			logger = NewLoggerWithLevel(VerbosityLevel(opts.verbosity))
			CheckError(runShow(opts))
		},
	}
	showCmd.Flags().StringVar(&opts.currentVersion, "current-version", "", "version to parse instead of the configured one")
	rootCmd.AddCommand(showCmd)

	rootCmd.Execute()
}

// applyFlagOverrides folds explicitly set flags over the loaded config,
// mirroring the precedence of the file based defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *Config, opts *cliOptions) {
	flags := cmd.Flags()
	if flags.Changed("parse") {
		cfg.Parse = opts.parse
	}
	if flags.Changed("serialize") {
		cfg.Serialize = opts.serialize
	}
	if flags.Changed("search") {
		cfg.Search = opts.search
	}
	if flags.Changed("replace") {
		cfg.Replace = opts.replace
	}
	if flags.Changed("tag-name") {
		cfg.TagName = opts.tagName
	}
	if flags.Changed("tag-message") {
		cfg.TagMessage = opts.tagMessage
	}
	if flags.Changed("message") {
		cfg.Message = opts.message
	}
	if flags.Changed("commit") {
		cfg.Commit = opts.commit
	}
	if opts.noCommit {
		cfg.Commit = false
	}
	if flags.Changed("tag") {
		cfg.Tag = opts.tag
	}
	if opts.noTag {
		cfg.Tag = false
	}
}

func runBump(cmd *cobra.Command, opts *cliOptions, args []string) error {
	cfg, err := LoadFromPath(opts.configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg, opts)

	vc, err := cfg.VersionConfig()
	if err != nil {
		return err
	}

	var repo *Repository
	if cfg.Github.Repo != "" {
		repo, err = NewRepository(cfg.Github, NewClient(cfg.Github.Token))
		if err != nil {
			return err
		}
	}

	ctx := buildContext(repo)

	currentStr := firstNonEmpty(opts.currentVersion, cfg.CurrentVersion, ctx.Values["current_version"])
	if currentStr == "" {
		return fmt.Errorf("no current version: set current_version in the config, pass --current-version, or configure github.repo")
	}
	current := vc.Parse(currentStr)
	if current == nil {
		Warn("current version %q does not match the parse pattern %q", currentStr, cfg.Parse)
		return fmt.Errorf("could not parse current version %q", currentStr)
	}

	part := ""
	files := args
	if len(args) > 0 {
		part = args[0]
		files = args[1:]
	}
	if part == "" {
		if !opts.interactive {
			return fmt.Errorf("a version part to bump is required")
		}
		part, err = promptForPart(currentStr, current, vc, ctx)
		if err != nil {
			return err
		}
		if part == "" {
			logger.Info("Skipping bump")
			return nil
		}
	}

	var next *version.Version
	if opts.newVersion != "" {
		next = vc.Parse(opts.newVersion)
		if next == nil {
			Warn("new version %q does not match the parse pattern %q", opts.newVersion, cfg.Parse)
			return fmt.Errorf("could not parse new version %q", opts.newVersion)
		}
	} else {
		logger.Info("Attempting to increment part '%s'", part)
		next, err = current.Bump(part, vc.Order())
		if err != nil {
			return err
		}
	}

	newStr, err := vc.Serialize(next, ctx.Clone())
	if err != nil {
		return err
	}
	logger.Info("New version will be '%s'", newStr)

	if opts.list {
		for _, name := range vc.Order() {
			if p, ok := next.Part(name); ok {
				fmt.Printf("%s=%s\n", name, p.Value())
			}
		}
		fmt.Printf("current_version=%s\n", currentStr)
		fmt.Printf("new_version=%s\n", newStr)
	}

	configured, err := configuredFiles(cfg, vc, files)
	if err != nil {
		return err
	}
	for _, f := range configured {
		if err := f.ShouldContainVersion(current, ctx.Clone()); err != nil {
			return err
		}
	}

	if opts.interactive && !confirmApply(newStr) {
		logger.Info("Aborted, no files were changed")
		return nil
	}
	if opts.dryRun {
		logger.Info("Dry run active, won't touch any files.")
	}

	for _, f := range configured {
		if err := f.Replace(current, next, ctx.Clone(), opts.dryRun); err != nil {
			return err
		}
	}

	if !opts.dryRun {
		if err := SaveCurrentVersion(newStr); err != nil {
			return err
		}
	}

	announceBump(currentStr, newStr)
	return finalizeVCS(cfg, repo, ctx, configured, currentStr, newStr, opts.dryRun)
}

// finalizeVCS commits the rewritten files and creates the release tag via
// the repository collaborator, honoring dry runs.
func finalizeVCS(cfg *Config, repo *Repository, ctx *version.Context, files []*ConfiguredFile, currentStr, newStr string, dryRun bool) error {
	if !cfg.Commit && !cfg.Tag {
		return nil
	}
	if repo == nil {
		Warn("commit/tag requested but no github.repo configured, skipping")
		return nil
	}

	msgCtx := ctx.Clone()
	msgCtx.Values["current_version"] = currentStr
	msgCtx.Values["new_version"] = newStr

	goctx := context.Background()

	if cfg.Commit {
		message, err := version.Expand(cfg.Message, msgCtx)
		if err != nil {
			return err
		}
		paths := []string{}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			paths = append(paths, configFile)
		}
		for _, path := range paths {
			if dryRun {
				logger.Info("Would commit '%s' to %s with message '%s'", path, repo, message)
				continue
			}
			logger.Info("Committing '%s' to %s", path, repo)
			if err := repo.CommitFile(goctx, path, message); err != nil {
				return err
			}
		}
	}

	if cfg.Tag {
		tagName, err := version.Expand(cfg.TagName, msgCtx)
		if err != nil {
			return err
		}
		tagMessage, err := version.Expand(cfg.TagMessage, msgCtx)
		if err != nil {
			return err
		}
		if dryRun {
			logger.Info("Would tag '%s' in %s with message '%s'", tagName, repo, tagMessage)
			return nil
		}
		logger.Info("Tagging '%s' in %s", tagName, repo)
		return repo.CreateRelease(goctx, tagName, tagMessage)
	}
	return nil
}

func runShow(opts *cliOptions) error {
	cfg, err := LoadFromPath(opts.configFile)
	if err != nil {
		return err
	}
	vc, err := cfg.VersionConfig()
	if err != nil {
		return err
	}

	var repo *Repository
	if cfg.Github.Repo != "" {
		repo, err = NewRepository(cfg.Github, NewClient(cfg.Github.Token))
		if err != nil {
			return err
		}
	}

	ctx := buildContext(repo)
	currentStr := firstNonEmpty(opts.currentVersion, cfg.CurrentVersion, ctx.Values["current_version"])
	if currentStr == "" {
		return fmt.Errorf("no current version to show")
	}
	current := vc.Parse(currentStr)
	if current == nil {
		return fmt.Errorf("current version %q does not match the parse pattern %q", currentStr, cfg.Parse)
	}

	fmt.Printf("current_version=%s\n", currentStr)
	for _, name := range vc.Order() {
		if p, ok := current.Part(name); ok {
			fmt.Printf("%s=%s\n", name, p.Value())
		}
	}

	if repo != nil {
		if stable, err := repo.LatestStableRelease(context.Background()); err == nil {
			fmt.Printf("latest_stable_release=%s\n", stable.String())
		}
	}
	return nil
}

// configuredFiles merges the files from the config with the ones given on
// the command line, the latter using the global version configuration.
func configuredFiles(cfg *Config, vc *version.Config, extra []string) ([]*ConfiguredFile, error) {
	var files []*ConfiguredFile
	for _, fs := range cfg.Files {
		fvc, err := cfg.FileVersionConfig(fs)
		if err != nil {
			return nil, err
		}
		files = append(files, NewConfiguredFile(fs.File, fvc))
	}
	for _, path := range extra {
		files = append(files, NewConfiguredFile(path, vc))
	}
	return files, nil
}

// buildContext assembles the serialization context: timestamps, the
// $-prefixed process environment and, when a repository is configured,
// VCS-derived facts. Ambient state is folded in here once so the engine
// itself stays pure.
func buildContext(repo *Repository) *version.Context {
	ctx := version.NewContext()
	now := time.Now()
	ctx.Times["now"] = now
	ctx.Times["utcnow"] = now.UTC()

	for _, kv := range os.Environ() {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) == 2 {
			ctx.Values["$"+pair[0]] = pair[1]
		}
	}

	if repo != nil {
		info, err := repo.LatestTagInfo(context.Background())
		if err != nil {
			Warn("could not fetch tag info for %s: %s", repo, err)
		} else {
			for k, v := range info {
				ctx.Values[k] = v
			}
		}
	}
	return ctx
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
