package narrative

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedFrontMatter indicates a front matter block that cannot be read:
	// an unclosed fence, invalid YAML or an unusable story number.
	ErrMalformedFrontMatter = errors.New("narrative: malformed frontmatter")
)

// frontMatter is the optional YAML block at the top of a narrative.
type frontMatter struct {
	Story  string `yaml:"story"`
	Author string `yaml:"author"`
	Title  string `yaml:"title"`
}

// splitFrontMatter separates a leading `---` YAML block from the body. Sources
// without a fence return a zero frontMatter and the whole input as body.
func splitFrontMatter(content []byte) (frontMatter, []byte, int, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return frontMatter{}, content, 0, nil
	}
	rest := content[4:]

	var metaBytes, body []byte
	if bytes.HasPrefix(rest, []byte("---\n")) {
		body = rest[4:]
	} else {
		parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
		if len(parts) < 2 {
			if !bytes.HasSuffix(rest, []byte("\n---")) {
				return frontMatter{}, nil, 0, ErrMalformedFrontMatter
			}
			parts = [][]byte{bytes.TrimSuffix(rest, []byte("\n---")), nil}
		}
		metaBytes, body = parts[0], parts[1]
	}

	var fm frontMatter
	if err := yaml.Unmarshal(metaBytes, &fm); err != nil {
		return frontMatter{}, nil, 0, fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}

	// lines consumed by the block, so body line numbers can be mapped back
	consumed := bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	return fm, body, consumed, nil
}
