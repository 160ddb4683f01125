package dataset

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadQuestions reads one question per line, skipping blanks and '#'
// comments.
func LoadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open questions %s", path)
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "dataset: read questions %s", path)
	}
	if len(questions) == 0 {
		return nil, eris.Errorf("dataset: no questions in %s", path)
	}
	return questions, nil
}

// LoadAliases reads a YAML file mapping free-text synonyms to canonical
// metric names, e.g. "bottom line: Net_Income". The result is merged over
// the built-in alias set by the caller.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read aliases %s", path)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse aliases %s", path)
	}
	return aliases, nil
}
