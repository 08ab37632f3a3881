package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goldenInputs must stay in sync with testdata/<id>.golden
var goldenInputs = map[string]map[string]string{
	SemanticSearch: {
		"question":   "What is the main finding?",
		"pdfContent": "Abstract. We study {{braces}} & <tags>.\nResults: 42% improvement.",
	},
	GenerateAnswer: {
		"question": "What is the main finding?",
		"context":  "Results: 42% improvement.\n\n---\n\nWe study {{braces}}.",
	},
}

func TestRender_Golden(t *testing.T) {
	for id, vars := range goldenInputs {
		t.Run(id, func(t *testing.T) {
			got, err := Render(id, vars)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}

			want, err := os.ReadFile(filepath.Join("testdata", id+".golden"))
			if err != nil {
				t.Fatalf("read golden: %v", err)
			}

			if got != string(want) {
				t.Errorf("rendered %s does not match golden file\n--- got ---\n%s\n--- want ---\n%s", id, got, want)
			}
		})
	}
}

func TestRegistry_EveryTemplateHasGolden(t *testing.T) {
	for _, id := range Default().IDs() {
		if _, ok := goldenInputs[id]; !ok {
			t.Errorf("template %s has no golden test", id)
		}
	}
}

func TestRender_MissingSlot(t *testing.T) {
	_, err := Render(SemanticSearch, map[string]string{"question": "q"})
	if err == nil {
		t.Fatal("expected error for missing pdfContent slot")
	}
	if !strings.Contains(err.Error(), "pdfContent") {
		t.Errorf("error should name the missing slot: %v", err)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	if _, err := Render("summarize", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestTemplate_Ref(t *testing.T) {
	tmpl, err := Default().Get(GenerateAnswer)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Ref() != "generate_answer@v1" {
		t.Errorf("unexpected ref: %s", tmpl.Ref())
	}
}

func TestLoad_RejectsDuplicates(t *testing.T) {
	data := []byte(`
templates:
  - id: a
    version: 1
    text: "x"
  - id: a
    version: 2
    text: "y"
`)
	if _, err := Load(data); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestLoad_RejectsMissingVersion(t *testing.T) {
	data := []byte(`
templates:
  - id: a
    text: "x"
`)
	if _, err := Load(data); err == nil {
		t.Error("expected version error")
	}
}
