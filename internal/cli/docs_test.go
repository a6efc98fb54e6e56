package cli

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestBundledDocsIndex(t *testing.T) {
	topics, err := loadDocsTopics(docsFS)
	if err != nil {
		t.Fatalf("loadDocsTopics() error = %v", err)
	}
	if len(topics) == 0 || topics[0].ID != "todo-file" {
		t.Fatalf("topics = %+v", topics)
	}
	for _, topic := range topics {
		if _, err := docsFS.Open(topic.Path); err != nil {
			t.Errorf("topic %s points at missing %s", topic.ID, topic.Path)
		}
	}
}

func TestLoadDocsTopicsOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"index.yaml": {Data: []byte(`topics:
  zeta: {title: Zeta, path: z.md}
  alpha: {path: a.md}
  beta: {title: Beta, path: b.md}
order: [beta]
`)},
	}
	topics, err := loadDocsTopics(fsys)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, topic := range topics {
		ids = append(ids, topic.ID)
	}
	if strings.Join(ids, ",") != "beta,alpha,zeta" {
		t.Fatalf("order = %v", ids)
	}
	if topics[1].Title != "alpha" {
		t.Fatalf("untitled topic title = %q", topics[1].Title)
	}
}

func TestSearchDocs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("# A\nthe Cancelled flag\nnothing\ncancelled again\n")},
		"b.md": {Data: []byte("cancelled in b\n")},
	}
	topics := []docsTopic{{ID: "a", Path: "a.md"}, {ID: "b", Path: "b.md"}}

	matches, err := searchDocs(fsys, topics, "cancelled", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 || matches[0].Line != 2 || matches[2].Topic != "b" {
		t.Fatalf("matches = %+v", matches)
	}

	matches, err = searchDocs(fsys, topics, "cancelled", 1)
	if err != nil || len(matches) != 1 {
		t.Fatalf("limited matches = %+v, %v", matches, err)
	}
}

func TestDocsCommand(t *testing.T) {
	t.Run("topic json", func(t *testing.T) {
		_, out := setupCLI(t, "")
		jsonOutput = true

		if err := docsCmd.RunE(docsCmd, []string{"numbering"}); err != nil {
			t.Fatal(err)
		}
		resp := decodeResponse(t, out)
		if !strings.Contains(resp.Data["content"].(string), "across all projects") {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, out := setupCLI(t, "")
		jsonOutput = true

		if err := docsCmd.RunE(docsCmd, []string{"nope"}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrInvalidInput)
	})

	t.Run("list", func(t *testing.T) {
		_, out := setupCLI(t, "")
		if err := docsCmd.RunE(docsCmd, nil); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "ambrogio docs hooks") {
			t.Fatalf("output:\n%s", out.String())
		}
	})
}
