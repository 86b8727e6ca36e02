package config_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
)

const yamlSettings = `
messages:
  stringTooShort: "Too short, need {0}"
fields:
  article[title]:
    size: 60
    placeholder: Title
    formName: title
    readonly: true
    data:
      role: headline
    messages:
      invalidPattern: "Start with a capital"
    hints:
      widget: text
`

const jsonSettings = `{
  "fields": {
    "article.code": {"mask": true, "maskString": "aaa-999", "optional": false}
  }
}`

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	store, err := config.LoadFS(fstest.MapFS{
		"settings/article.yaml": {Data: []byte(yamlSettings)},
		"settings/code.json":    {Data: []byte(jsonSettings)},
		"settings/README.md":    {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"article.code", "article.title"}, store.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}

	title, ok := store.Field("article.title")
	if !ok {
		t.Fatalf("article.title missing")
	}
	want := model.FieldSettings{
		Size:        60,
		Readonly:    true,
		FormName:    "title",
		Placeholder: "Title",
		Data:        map[string]string{"role": "headline"},
		Messages: map[string]string{
			"stringTooShort": "Too short, need {0}",
			"invalidPattern": "Start with a capital",
		},
	}
	if diff := cmp.Diff(want, title.Settings); diff != "" {
		t.Fatalf("settings (-want +got):\n%s", diff)
	}
	if title.Hints["widget"] != "text" || title.OriginalKey != "article[title]" || title.Source != "settings/article.yaml" {
		t.Fatalf("unexpected metadata: %+v", title)
	}

	code := store.Settings("article.code")
	if !code.Mask || code.MaskString != "aaa-999" || code.Optional == nil || *code.Optional {
		t.Fatalf("unexpected json settings: %+v", code)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	_, err := config.LoadFS(fstest.MapFS{
		"a.yaml": {Data: []byte("fields:\n  title:\n    size: 10\n")},
		"b.json": {Data: []byte(`{"fields": {" title ": {"size": 20}}}`)},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate field") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "   ",
		"invalid":       "fields: [",
		"blank key":     "fields:\n  \"..\":\n    size: 1\n",
		"negative size": "fields:\n  title:\n    size: -1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(data), "inline.yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestStore_NilAndMissing(t *testing.T) {
	var store *config.Store
	if !store.Empty() {
		t.Fatalf("nil store should be empty")
	}
	if _, ok := store.Field("title"); ok {
		t.Fatalf("nil store should have no fields")
	}
	empty, err := config.LoadFS(nil)
	if err != nil || !empty.Empty() {
		t.Fatalf("expected empty store, got %v %v", empty, err)
	}
}
