package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v82/github"
	"github.com/repogroom/repogroom/internal/model"
)

// ListRepos returns all repositories of the authenticated user, in the
// order the API reports them. Pagination is followed to the end; private
// repositories are excluded when the client was configured that way.
func (g *GitHub) ListRepos(ctx context.Context) ([]model.Repository, error) {
	opt := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	if !g.includePrivate {
		opt.Visibility = "public"
	}

	var all []model.Repository

	for {
		var (
			repos []*github.Repository
			resp  *github.Response
		)

		err := g.call(ctx, "list repositories", func() (*github.Response, error) {
			var err error
			repos, resp, err = g.client.Repositories.ListByAuthenticatedUser(ctx, opt)
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, repo := range repos {
			all = append(all, convertRepo(repo))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}

		opt.Page = resp.NextPage
	}

	g.logger.Debug("listed repositories", slog.Int("count", len(all)))

	return all, nil
}

// FetchDetail populates a Repository with its README content and the file
// listing of its default branch. A repository without a README or with an
// empty tree is not an error; the fields stay empty.
func (g *GitHub) FetchDetail(ctx context.Context, owner, name string) (*model.Repository, error) {
	var (
		ghRepo *github.Repository
		resp   *github.Response
	)

	err := g.call(ctx, "fetch repository", func() (*github.Response, error) {
		var err error
		ghRepo, resp, err = g.client.Repositories.Get(ctx, owner, name)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	repo := convertRepo(ghRepo)

	readme, err := g.fetchReadme(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	repo.Readme = readme

	files, err := g.fetchFileListing(ctx, owner, name, repo.DefaultBranch)
	if err != nil {
		return nil, err
	}
	repo.Files = files

	g.logger.Debug("fetched repository detail",
		slog.String("repo", repo.FullName),
		slog.Int("files", len(repo.Files)),
		slog.Bool("has_readme", repo.Readme != ""),
	)

	return &repo, nil
}

func (g *GitHub) fetchReadme(ctx context.Context, owner, name string) (string, error) {
	var readme *github.RepositoryContent

	err := g.call(ctx, "fetch readme", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		readme, resp, err = g.client.Repositories.GetReadme(ctx, owner, name, nil)
		return resp, err
	})
	if err != nil {
		// Missing README is a normal state, not a failure
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	content, err := readme.GetContent()
	if err != nil {
		return "", nil
	}

	return content, nil
}

func (g *GitHub) fetchFileListing(ctx context.Context, owner, name, branch string) ([]string, error) {
	if branch == "" {
		branch = "main"
	}

	var tree *github.Tree

	err := g.call(ctx, "fetch file tree", func() (*github.Response, error) {
		var (
			resp *github.Response
			err  error
		)
		tree, resp, err = g.client.Git.GetTree(ctx, owner, name, branch, true)
		return resp, err
	})
	if err != nil {
		// Empty repositories have no tree at all
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusConflict {
			return nil, nil
		}

		return nil, err
	}

	var files []string
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			files = append(files, entry.GetPath())
		}
	}

	return files, nil
}

func convertRepo(repo *github.Repository) model.Repository {
	m := model.Repository{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   safeString(repo.Description),
		DefaultBranch: repo.GetDefaultBranch(),
		Language:      safeString(repo.Language),
		Stars:         repo.GetStargazersCount(),
		Private:       repo.GetPrivate(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
	}

	if repo.Owner != nil {
		m.Owner = repo.Owner.GetLogin()
	}

	if m.Owner == "" || m.Name == "" {
		m.Owner, m.Name = model.SplitFullName(m.FullName)
	}

	return m
}
