// Package gamedata locates asset files inside an unpacked X4 data tree.
//
// A data root is the base game directory plus any number of extension
// overlays under extensions/. Every file carries a provenance: "base" for
// the main tree, otherwise the extension directory name.
package gamedata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceBase is the provenance label for files from the base game tree.
const SourceBase = "base"

// EffectiveRoot resolves the usable data root. Some unpack tools place
// everything under an _unpacked subdirectory; prefer it when present.
func EffectiveRoot(root string) string {
	unpacked := filepath.Join(root, "_unpacked")
	if info, err := os.Stat(unpacked); err == nil && info.IsDir() {
		return unpacked
	}
	return root
}

// SourceFromPath derives the overlay name a file belongs to.
func SourceFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, p := range parts {
		if p == "extensions" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return SourceBase
}

// FindLibraryFiles returns every libraries/<name> file across the base
// tree and all extensions, base first, extensions in name order.
func FindLibraryFiles(root, name string) []string {
	root = EffectiveRoot(root)
	var out []string

	base := filepath.Join(root, "libraries", name)
	if fileExists(base) {
		out = append(out, base)
	}

	for _, ext := range extensionDirs(root) {
		lib := filepath.Join(ext, "libraries", name)
		if fileExists(lib) {
			out = append(out, lib)
		}
	}
	return out
}

// FindTranslationFiles returns every t/*.xml file across the base tree
// and all extensions.
func FindTranslationFiles(root string) []string {
	root = EffectiveRoot(root)
	var out []string
	out = append(out, globXML(filepath.Join(root, "t"))...)
	for _, ext := range extensionDirs(root) {
		out = append(out, globXML(filepath.Join(ext, "t"))...)
	}
	return out
}

// FindShipMacroFiles returns every ship macro XML under
// assets/units/size_*/macros for the base tree and all extensions.
// Results are deduplicated and returned in a stable order.
func FindShipMacroFiles(root string) []string {
	root = EffectiveRoot(root)

	var candidates []string
	candidates = append(candidates, unitMacroFiles(filepath.Join(root, "assets", "units"))...)
	for _, ext := range extensionDirs(root) {
		candidates = append(candidates, unitMacroFiles(filepath.Join(ext, "assets", "units"))...)
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, p := range candidates {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// unitMacroFiles collects macro XML files beneath a units directory.
// Macro files sit at size_*/macros/*.xml, sometimes nested one level
// deeper (size_*/<kind>/macros/*.xml).
func unitMacroFiles(unitsDir string) []string {
	if !dirExists(unitsDir) {
		return nil
	}

	var out []string
	patterns := []string{
		filepath.Join(unitsDir, "size_*", "macros", "*.xml"),
		filepath.Join(unitsDir, "size_*", "*", "macros", "*.xml"),
	}
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out
}

func extensionDirs(root string) []string {
	entries, err := os.ReadDir(filepath.Join(root, "extensions"))
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(root, "extensions", e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

func globXML(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
