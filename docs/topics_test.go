package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/holdings"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	if _, err := GetTopic("missing"); err == nil {
		t.Error("GetTopic(missing) succeeded, want an error")
	}
	everything, err := GetTopic("*")
	if err != nil || !strings.Contains(everything, "# Calendar") {
		t.Errorf("GetTopic(*) = %d bytes, %v", len(everything), err)
	}
}

// Block is a fenced code block of a topic, tagged with the kind of file it shows.
type Block struct {
	Info    string
	Content string
	File    string
}

// parseMarkdown returns the fenced code blocks of a markdown file.
func parseMarkdown(t *testing.T, file string) []Block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, Block{Info: string(fcb.Info.Segment.Value(content)), Content: b.String(), File: file})
		return ast.WalkContinue, nil
	})
	return blocks
}

func TestExamples(t *testing.T) {
	// Every example file in the manual is accepted by the decoders.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	decoders := map[string]func(string) error{
		"csv transactions": func(s string) error {
			_, err := holdings.DecodeTransactions(strings.NewReader(s), "USD")
			return err
		},
		"jsonl transactions": func(s string) error {
			_, err := holdings.DecodeTransactionsJSONL(strings.NewReader(s), "USD")
			return err
		},
		"csv prices": func(s string) error {
			_, err := holdings.DecodePrices(strings.NewReader(s), "USD")
			return err
		},
		"text calendar": func(s string) error {
			_, err := holdings.DecodeCalendar(strings.NewReader(s))
			return err
		},
	}

	checked := 0
	for _, file := range files {
		for _, b := range parseMarkdown(t, file) {
			decode, ok := decoders[b.Info]
			if !ok {
				continue
			}
			checked++
			if err := decode(b.Content); err != nil {
				t.Errorf("%s: %q example does not decode: %v", b.File, b.Info, err)
			}
		}
	}
	if checked < 5 {
		t.Errorf("checked %d examples, want at least 5", checked)
	}
}
