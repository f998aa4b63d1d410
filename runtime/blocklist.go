// Package runtime wires the content pipeline, the form moderation and the background workers.
package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"nutzy-site/errors"
	"path"
	"sort"
	"strings"
)

//go:embed blocklist/*.txt
var blocklistFolder embed.FS

// Blocklist is the result of loading the blocked terms, with the languages it came from.
type Blocklist struct {
	Words     []string
	Languages []string
}

// BlocklistLoader reads one term per line from every .txt file of a directory;
// the file name is the language.
type BlocklistLoader struct {
	fs fs.FS
}

func NewBlocklistLoader(f fs.FS) *BlocklistLoader {
	return &BlocklistLoader{fs: f}
}

// DefaultBlocklist loads the terms shipped with the binary.
func DefaultBlocklist() (*Blocklist, error) {
	return NewBlocklistLoader(blocklistFolder).LoadAll("blocklist")
}

func (l *BlocklistLoader) LoadAll(dir string) (*Blocklist, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		// bufio.Scanner copes with \r\n line endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				unique[strings.ToLower(line)] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}
	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	sort.Strings(words)
	return &Blocklist{Words: words, Languages: languages}, nil
}

// Merge adds extra terms, typically from configuration, skipping duplicates.
func (b *Blocklist) Merge(extra []string) {
	seen := make(map[string]struct{}, len(b.Words))
	for _, w := range b.Words {
		seen[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if _, ok := seen[w]; ok || w == "" {
			continue
		}
		seen[w] = struct{}{}
		b.Words = append(b.Words, w)
	}
}
