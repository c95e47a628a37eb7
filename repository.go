package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/google/go-github/v28/github"
	goversion "github.com/hashicorp/go-version"
)

// Repository is the version control collaborator. All interaction goes
// through the GitHub API: tag lookup, file commits and tag creation never
// shell out to a local VCS binary.
type Repository struct {
	client *github.Client
	owner  string
	name   string
	branch string
}

func NewRepository(settings GithubSettings, client *github.Client) (*Repository, error) {
	ownerRepo := strings.Split(settings.Repo, "/")
	if len(ownerRepo) != 2 || ownerRepo[0] == "" || ownerRepo[1] == "" {
		return nil, fmt.Errorf("invalid github repo %q, expected owner/name", settings.Repo)
	}
	branch := settings.Branch
	if branch == "" {
		branch = "main"
	}
	return &Repository{
		client: client,
		owner:  ownerRepo[0],
		name:   ownerRepo[1],
		branch: branch,
	}, nil
}

func (r *Repository) String() string {
	return fmt.Sprintf("%s/%s", r.owner, r.name)
}

// LatestTagInfo returns serialization context facts derived from the
// repository: the current version (highest tag, v prefix stripped), the
// tag itself and the branch head commit SHA. Tags that are not versions
// are skipped; ordering is lenient, tags need not be strict semver.
func (r *Repository) LatestTagInfo(ctx context.Context) (map[string]string, error) {
	tags, _, err := r.client.Repositories.ListTags(ctx, r.owner, r.name, nil)
	if err != nil {
		return nil, fmt.Errorf("listing tags for %s: %w", r, err)
	}

	var (
		latest     *goversion.Version
		latestName string
	)
	for _, tag := range tags {
		name := tag.GetName()
		v, err := goversion.NewVersion(strings.TrimPrefix(name, "v"))
		if err != nil {
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
			latestName = name
		}
	}

	info := map[string]string{}
	if latestName != "" {
		info["latest_tag"] = latestName
		info["current_version"] = strings.TrimPrefix(latestName, "v")
	}
	if sha := r.GetLatestSHA(ctx, r.branch); sha != "" {
		info["commit_sha"] = sha
	}
	return info, nil
}

// LatestStableRelease resolves the newest published release whose tag is
// a semver version without a prerelease suffix.
func (r *Repository) LatestStableRelease(ctx context.Context) (*semver.Version, error) {
	releases, _, err := r.client.Repositories.ListReleases(ctx, r.owner, r.name, nil)
	if err != nil {
		return nil, fmt.Errorf("listing releases for %s: %w", r, err)
	}
	for _, release := range releases {
		if release.TagName == nil {
			continue
		}
		v, err := semver.NewVersion(strings.TrimPrefix(*release.TagName, "v"))
		if err != nil {
			continue
		}
		if v.Prerelease() == "" {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no stable release found for %s", r)
}

// CommitFile commits the local contents of path to the configured branch
// through the contents API.
func (r *Repository) CommitFile(ctx context.Context, path, message string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	opts := &github.RepositoryContentFileOptions{
		Content: data,
		Message: github.String(message),
		Branch:  github.String(r.branch),
	}

	fileContent, _, _, err := r.client.Repositories.GetContents(ctx, r.owner, r.name, path, &github.RepositoryContentGetOptions{
		Ref: r.branch,
	})
	if err == nil && fileContent != nil {
		opts.SHA = fileContent.SHA
		_, _, err = r.client.Repositories.UpdateFile(ctx, r.owner, r.name, path, opts)
	} else {
		_, _, err = r.client.Repositories.CreateFile(ctx, r.owner, r.name, path, opts)
	}
	if err != nil {
		return fmt.Errorf("committing %s to %s: %w", path, r, err)
	}
	return nil
}

// CreateRelease tags the branch head with tagName and publishes a release
// carrying the tag message.
func (r *Repository) CreateRelease(ctx context.Context, tagName, message string) error {
	_, _, err := r.client.Repositories.CreateRelease(
		ctx, r.owner, r.name,
		&github.RepositoryRelease{
			Name:            &tagName,
			Body:            &message,
			TagName:         &tagName,
			TargetCommitish: &r.branch,
		})
	if err != nil {
		return fmt.Errorf("creating release %s in %s: %w", tagName, r, err)
	}
	return nil
}

func (r *Repository) GetLatestSHA(ctx context.Context, branchName string) string {
	branch, _, err := r.client.Repositories.GetBranch(ctx, r.owner, r.name, branchName)
	if err != nil {
		return ""
	}
	return branch.GetCommit().GetSHA()
}
