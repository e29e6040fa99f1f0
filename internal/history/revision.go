package history

import git "github.com/go-git/go-git/v5"

// HeadRevision returns the HEAD commit hash of the repository containing
// dir, or the empty string when dir is not inside a repository (or the
// repository has no commits yet).
func HeadRevision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
