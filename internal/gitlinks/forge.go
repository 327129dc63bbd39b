package gitlinks

import (
	"fmt"
	"net/url"
	"strings"
)

// ForgeType enumerates supported forge providers.
type ForgeType string

const (
	ForgeGitHub  ForgeType = "github"
	ForgeGitLab  ForgeType = "gitlab"
	ForgeForgejo ForgeType = "forgejo"
)

// NormalizeForgeType canonicalizes a forge type string (case-insensitive) or returns empty if unknown.
func NormalizeForgeType(raw string) ForgeType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ForgeGitHub):
		return ForgeGitHub
	case string(ForgeGitLab):
		return ForgeGitLab
	case string(ForgeForgejo), "gitea":
		return ForgeForgejo
	default:
		return ""
	}
}

// DetectForge guesses the forge from a host name. Unknown self-hosted
// instances are assumed to be Forgejo/Gitea.
func DetectForge(host string) ForgeType {
	switch {
	case strings.Contains(host, "github."):
		return ForgeGitHub
	case strings.Contains(host, "gitlab."):
		return ForgeGitLab
	default:
		return ForgeForgejo
	}
}

// BrowseURL builds the web URL of dirPath at ref. dirPath uses forward
// slashes and may be empty for the repository root.
func BrowseURL(forge ForgeType, baseURL, fullName, ref, dirPath string) string {
	if baseURL == "" || fullName == "" || ref == "" {
		return ""
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	var u string
	switch forge {
	case ForgeGitHub:
		u = fmt.Sprintf("%s/%s/blob/%s", baseURL, fullName, ref)
	case ForgeGitLab:
		u = fmt.Sprintf("%s/%s/-/blob/%s", baseURL, fullName, ref)
	case ForgeForgejo:
		u = fmt.Sprintf("%s/%s/src/commit/%s", baseURL, fullName, ref)
	default:
		return ""
	}
	if dirPath = strings.Trim(dirPath, "/"); dirPath != "" {
		u += "/" + dirPath
	}
	return u
}

// ParseRemote splits a clone URL into web base URL (scheme and host) and
// the repository full name. SSH and scp-like forms map to https.
func ParseRemote(remote string) (baseURL, fullName string, err error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", "", fmt.Errorf("%w: empty remote URL", ErrUnsupportedRemote)
	}
	// scp-like syntax: git@host:org/repo.git
	if !strings.Contains(remote, "://") {
		at := strings.Index(remote, "@")
		colon := strings.Index(remote, ":")
		if colon <= 0 || (at >= 0 && at > colon) {
			return "", "", fmt.Errorf("%w: %s", ErrUnsupportedRemote, remote)
		}
		remote = "ssh://" + remote[:colon] + "/" + remote[colon+1:]
	}

	u, err := url.Parse(remote)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrUnsupportedRemote, err)
	}

	var host string
	switch u.Scheme {
	case "http", "https":
		host = u.Host
	case "ssh", "git", "git+ssh":
		host = u.Hostname()
	default:
		return "", "", fmt.Errorf("%w: scheme %q", ErrUnsupportedRemote, u.Scheme)
	}
	if host == "" {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedRemote, remote)
	}

	scheme := "https"
	if u.Scheme == "http" {
		scheme = "http"
	}
	name := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	if name == "" {
		return "", "", fmt.Errorf("%w: no repository path in %s", ErrUnsupportedRemote, remote)
	}
	return scheme + "://" + host, name, nil
}
