package types

import "sort"

// ArtifactSet is the sorted list of absolute paths matching a glob in one
// directory, captured at one instant.
type ArtifactSet struct {
	Dir     string
	Pattern string
	Paths   []string
}

func NewArtifactSet(dir string, pattern string, paths []string) ArtifactSet {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	return ArtifactSet{Dir: dir, Pattern: pattern, Paths: sorted}
}

func (s ArtifactSet) Contains(path string) bool {
	idx := sort.SearchStrings(s.Paths, path)
	return idx < len(s.Paths) && s.Paths[idx] == path
}

func (s ArtifactSet) Len() int {
	return len(s.Paths)
}

type UnresolvedReason string

const (
	UnresolvedNone      UnresolvedReason = ""
	UnresolvedNoNew     UnresolvedReason = "no-new-artifacts"
	UnresolvedAmbiguous UnresolvedReason = "ambiguous"
)

// ResolvedArtifact is either a single path or an unresolved outcome with
// the new files that could not be told apart.
type ResolvedArtifact struct {
	Path       string
	Reason     UnresolvedReason
	Candidates []string
}

func (a ResolvedArtifact) Resolved() bool {
	return a.Path != "" && a.Reason == UnresolvedNone
}
