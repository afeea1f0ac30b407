package classify

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DeriveLabelsPath returns the conventional labels file path for a
// model: the model path with its extension replaced by ".labels".
func DeriveLabelsPath(modelPath string) string {
	if i := strings.LastIndex(modelPath, "."); i > 0 {
		return modelPath[:i] + ".labels"
	}
	return modelPath + ".labels"
}

// LoadLabels reads the label list, one label per line, preserving file
// order. Order matters: it defines both the max-confidence tie-break
// and the stable numeric item ids.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classify: open labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("classify: read labels file: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("classify: labels file %s is empty", path)
	}
	return labels, nil
}
