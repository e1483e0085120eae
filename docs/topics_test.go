package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topic names listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topics = append(topics, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

func TestTopics(t *testing.T) {
	// The readme is the topic index; it must stay in sync with the
	// embedded topic files, both ways.
	listed := readmeTopics(t)

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := Topic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	embedded, err := AllTopics()
	if err != nil {
		t.Fatalf("AllTopics() error = %v", err)
	}
	for _, topic := range embedded {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestTopic_Wildcard(t *testing.T) {
	all, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) error = %v", err)
	}
	for _, topic := range readmeTopics(t) {
		content, err := Topic(topic)
		if err != nil {
			t.Fatalf("Topic(%q) error = %v", topic, err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("Topic(*) misses the %q topic", topic)
		}
	}
}

func TestTopic_Unknown(t *testing.T) {
	if _, err := Topic("no-such-topic"); err == nil {
		t.Fatal("Topic(no-such-topic) error = nil, want error")
	}
}

func TestTopicsAreWellFormedMarkdown(t *testing.T) {
	embedded, err := AllTopics()
	if err != nil {
		t.Fatalf("AllTopics() error = %v", err)
	}
	embedded = append(embedded, "readme")

	for _, topic := range embedded {
		t.Run(topic, func(t *testing.T) {
			content, err := Topic(topic)
			if err != nil {
				t.Fatalf("Topic(%q) error = %v", topic, err)
			}

			// Each topic must parse as markdown and open with a level-one
			// heading, so the terminal rendering has a title.
			root := goldmark.DefaultParser().Parse(text.NewReader([]byte(content)))
			first := root.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok || heading.Level != 1 {
				t.Errorf("topic %q does not start with a level-one heading", topic)
			}
		})
	}
}
