package core

import (
	"path/filepath"
	"strings"

	"nuget-tools/internal/types"
)

// SymbolsMarker identifies the companion symbols package in a file name.
const SymbolsMarker = ".symbols."

type ArtifactResolver struct{}

func NewArtifactResolver() ArtifactResolver {
	return ArtifactResolver{}
}

// Resolve decides which file a pack produced by diffing the output
// directory listings taken before and after the invocation.
//
// One new file is the artifact. Two new files are accepted only when
// symbols were requested and exactly one of them lacks the symbols
// marker; the symbols package stays on disk untracked. Anything else is
// unresolved and left for the user to sort out.
func (r ArtifactResolver) Resolve(before types.ArtifactSet, after types.ArtifactSet, symbolsRequested bool) types.ResolvedArtifact {
	created := NewArtifacts(before, after)
	switch {
	case len(created) == 0:
		return types.ResolvedArtifact{Reason: types.UnresolvedNoNew}
	case len(created) == 1:
		return types.ResolvedArtifact{Path: created[0]}
	case len(created) == 2 && symbolsRequested:
		primary, ok := pickPrimary(created)
		if !ok {
			return types.ResolvedArtifact{Reason: types.UnresolvedAmbiguous, Candidates: created}
		}
		return types.ResolvedArtifact{Path: primary}
	default:
		return types.ResolvedArtifact{Reason: types.UnresolvedAmbiguous, Candidates: created}
	}
}

// NewArtifacts returns the paths in after that are not in before, in
// sorted order.
func NewArtifacts(before types.ArtifactSet, after types.ArtifactSet) []string {
	var created []string
	for _, path := range after.Paths {
		if before.Contains(path) {
			continue
		}
		created = append(created, path)
	}
	return created
}

func pickPrimary(pair []string) (string, bool) {
	var primaries []string
	for _, path := range pair {
		if !IsSymbolsPackage(path) {
			primaries = append(primaries, path)
		}
	}
	if len(primaries) != 1 {
		return "", false
	}
	return primaries[0], true
}

func IsSymbolsPackage(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), SymbolsMarker)
}
