// Package gitlinks derives source-link URLs for local directories from the
// git repository that contains them.
package gitlinks

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

var (
	ErrNoRepository      = errors.New("directory is not inside a git repository")
	ErrNoRemote          = errors.New("git repository has no usable remote")
	ErrUnsupportedRemote = errors.New("unsupported git remote URL")
)

// DefaultLineSuffix is appended to derived URLs to address a source line.
const DefaultLineSuffix = "#L"

// Deriver builds SourceLinks for directories in a git worktree.
type Deriver struct {
	// Remote names the remote to read; defaults to "origin".
	Remote string
	// Forge overrides host based forge detection.
	Forge ForgeType
	// Ref overrides the HEAD commit, e.g. a branch or tag name.
	Ref string
}

// Derive returns a source link for dir pointing at its location on the forge.
func (d *Deriver) Derive(dir string) (docgen.SourceLink, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return docgen.SourceLink{}, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return docgen.SourceLink{}, fmt.Errorf("%w: %s: %w", ErrNoRepository, dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return docgen.SourceLink{}, fmt.Errorf("%w: %s: %w", ErrNoRepository, dir, err)
	}
	rel, err := relativeTo(wt.Filesystem.Root(), abs)
	if err != nil {
		return docgen.SourceLink{}, err
	}

	remoteName := d.Remote
	if remoteName == "" {
		remoteName = "origin"
	}
	remote, err := repo.Remote(remoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return docgen.SourceLink{}, fmt.Errorf("%w: %s", ErrNoRemote, remoteName)
	}
	baseURL, fullName, err := ParseRemote(remote.Config().URLs[0])
	if err != nil {
		return docgen.SourceLink{}, err
	}

	ref := d.Ref
	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return docgen.SourceLink{}, fmt.Errorf("resolve HEAD of %s: %w", wt.Filesystem.Root(), err)
		}
		ref = head.Hash().String()
	}

	forge := d.Forge
	if forge == "" {
		forge = DetectForge(baseURL)
	}

	return docgen.SourceLink{
		Dir:       dir,
		URL:       BrowseURL(forge, baseURL, fullName, ref, rel),
		URLSuffix: docgen.Suffix(DefaultLineSuffix),
	}, nil
}

func relativeTo(root, dir string) (string, error) {
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	if d, err := filepath.EvalSymlinks(dir); err == nil {
		dir = d
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("locate %s in worktree %s: %w", dir, root, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
