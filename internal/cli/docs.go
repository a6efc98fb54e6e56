package cli

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/ambrogio-dev/ambrogio/docs"
)

const docsIndexPath = "index.yaml"

var (
	docsSearchLimit int

	docsFS fs.FS = builtindocs.FS
)

type docsTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

type docsSearchMatch struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

type docsIndex struct {
	Topics map[string]struct {
		Title string `yaml:"title"`
		Path  string `yaml:"path"`
	} `yaml:"topics"`
	Order []string `yaml:"order"`
}

// loadDocsTopics reads index.yaml. Topics missing from order sort by id
// after the ordered ones.
func loadDocsTopics(fsys fs.FS) ([]docsTopic, error) {
	raw, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("read docs index: %w", err)
	}
	var index docsIndex
	if err := yaml.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}

	rank := make(map[string]int, len(index.Order))
	for i, id := range index.Order {
		rank[id] = i
	}
	topics := make([]docsTopic, 0, len(index.Topics))
	for id, meta := range index.Topics {
		title := meta.Title
		if title == "" {
			title = id
		}
		topics = append(topics, docsTopic{ID: id, Title: title, Path: meta.Path})
	}
	sort.Slice(topics, func(i, j int) bool {
		ri, iOK := rank[topics[i].ID]
		rj, jOK := rank[topics[j].ID]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK != jOK:
			return iOK
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

func findDocsTopic(topics []docsTopic, id string) (docsTopic, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return docsTopic{}, false
}

// searchDocs matches query case-insensitively against every line of every
// topic, in topic order.
func searchDocs(fsys fs.FS, topics []docsTopic, query string, limit int) ([]docsSearchMatch, error) {
	needle := strings.ToLower(query)
	matches := make([]docsSearchMatch, 0)
	for _, t := range topics {
		content, err := fs.ReadFile(fsys, t.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.Path, err)
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			matches = append(matches, docsSearchMatch{
				Topic:   t.ID,
				Title:   t.Title,
				Line:    i + 1,
				Snippet: strings.TrimSpace(line),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read the guides bundled into the ambrogio binary.

For command usage, use 'ambrogio help <command>'.`,
	Example: `  ambrogio docs
  ambrogio docs todo-file
  ambrogio docs search cancelled`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadDocsTopics(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			printf("Guides:\n")
			for _, t := range topics {
				printf("  %-36s %s\n", "ambrogio docs "+t.ID, t.Title)
			}
			printf("\nSearch them with: ambrogio docs search <query>\n")
			return nil
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			ids := make([]string, 0, len(topics))
			for _, t := range topics {
				ids = append(ids, t.ID)
			}
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown docs topic %q", args[0]),
				"Available topics: "+strings.Join(ids, ", "))
		}

		content, err := fs.ReadFile(docsFS, topic.Path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"topic":   topic.ID,
				"title":   topic.Title,
				"content": string(content),
			}, nil)
			return nil
		}
		printf("%s", renderReply(string(content)))
		return nil
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the bundled guides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: ambrogio docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		topics, err := loadDocsTopics(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		matches, err := searchDocs(docsFS, topics, query, docsSearchLimit)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}
		if len(matches) == 0 {
			printf("No docs matched %q.\n", query)
			return nil
		}
		printf("Matches for %q (%d):\n", query, len(matches))
		for _, m := range matches {
			printf("- %s:%d %s\n", m.Topic, m.Line, m.Snippet)
		}
		return nil
	},
}

func init() {
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", 20, "Maximum number of matches")

	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
