package mapper

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var headingPattern = regexp.MustCompile(`^#[ \t]+\S`)

// EnsureHeading makes content start with a level-1 heading, inserting
// "# title" followed by a blank line when it does not. Leading blank lines are
// kept in front of the inserted heading and a YAML frontmatter block stays first.
func EnsureHeading(content, title string) string {
	front, body := splitFrontmatter(content)

	rest := body
	leading := ""
	for rest != "" {
		line, remainder, found := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) != "" {
			break
		}
		if !found {
			leading += line
			rest = ""
			break
		}
		leading += line + "\n"
		rest = remainder
	}

	if headingPattern.MatchString(rest) {
		return content
	}
	return front + leading + "# " + title + "\n\n" + rest
}

// splitFrontmatter separates a leading "---" YAML block from the body. Blocks
// that do not parse as a YAML mapping are treated as body text.
func splitFrontmatter(content string) (string, string) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content
	}
	end := strings.Index(content[4:], "\n---")
	if end < 0 {
		return "", content
	}
	end += 4
	closing := end + len("\n---")
	if closing < len(content) && content[closing] != '\n' {
		return "", content
	}

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(content[4:end]), &meta); err != nil {
		return "", content
	}

	if closing < len(content) {
		closing++
	}
	return content[:closing], content[closing:]
}
