package analyzer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"di-quality/src/util"
)

// Project is one analyzable subfolder of the projects root
type Project struct {
	Name string
	Dir  string
}

// DiscoverProjects lists the immediate subdirectories of root, sorted by name
func DiscoverProjects(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading projects root: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		projects = append(projects, Project{Name: e.Name(), Dir: filepath.Join(root, e.Name())})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	util.Debug("Discovered %d projects under %s", len(projects), root)
	return projects, nil
}

// FindFiles walks dir and returns files whose base name matches glob,
// skipping paths excluded by matcher. Paths are returned sorted.
func FindFiles(dir, glob string, matcher *util.ExclusionMatcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if matcher.MatchesFile(rel) {
			return nil
		}
		if ok, _ := filepath.Match(glob, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ClassNames derives deduplicated simple class names from class file paths
func ClassNames(classFiles []string) []string {
	seen := make(map[string]bool, len(classFiles))
	var names []string
	for _, f := range classFiles {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BeanClasses parses each XML file for <bean class="..."> declarations and
// returns the simple names of the declared classes. Malformed files are
// logged and skipped.
func BeanClasses(xmlFiles []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, path := range xmlFiles {
		f, err := os.Open(path)
		if err != nil {
			util.Warn("Skipping bean file %s: %v", path, err)
			continue
		}
		found, err := ParseBeans(f)
		f.Close()
		if err != nil {
			util.Warn("Skipping malformed bean file %s: %v", path, err)
		}
		for _, n := range found {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

// ParseBeans streams an XML document and collects simple names of bean
// classes. Names found before a syntax error are still returned.
func ParseBeans(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var names []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return names, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "bean" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "class" {
				if n := util.SimpleName(attr.Value); n != "" {
					names = append(names, n)
				}
			}
		}
	}
}

// ReadLines reads r and splits it into lines without terminators
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
