// Package inputs loads the resolvers and domains to test.
package inputs

import (
	"fmt"
	"os"
	"strings"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// LoadResolvers returns the resolvers to test. With an empty path we
// use the default list. The file format is one resolver per line as
// `address,label`, with `#` starting a comment.
func LoadResolvers(path string) ([]model.Resolver, error) {
	if path == "" {
		return DefaultResolvers(), nil
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var out []model.Resolver
	for _, line := range lines {
		address, label, found := strings.Cut(line, ",")
		if !found {
			label = address
		}
		out = append(out, model.Resolver{
			Address: strings.TrimSpace(address),
			Label:   strings.TrimSpace(label),
		})
	}
	if len(out) <= 0 {
		return nil, fmt.Errorf("%s: no resolvers defined", path)
	}
	return out, nil
}

// LoadDomains returns the domains to test. With an empty path we use
// the default list. The file format is one domain per line, with `#`
// starting a comment.
func LoadDomains(path string) ([]string, error) {
	if path == "" {
		return DefaultDomains(), nil
	}
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) <= 0 {
		return nil, fmt.Errorf("%s: no domains defined", path)
	}
	return lines, nil
}

// readLines reads a file and returns its nonempty, noncomment lines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
