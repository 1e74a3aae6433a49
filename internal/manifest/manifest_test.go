package manifest

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stackup-dev/stackup/internal/fsprobe"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestValidateFile_Valid(t *testing.T) {
	for _, file := range []string{"valid-project.yaml", "valid-default.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
				t.Fatal("expected valid record")
			}
		})
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
	}{
		{"invalid-template.yaml", "enum"},
		{"invalid-missing-id.yaml", "required"},
		{"invalid-name.yaml", "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatal("expected invalid record")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an issue with keyword %q, got %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidate_MalformedYAML(t *testing.T) {
	if _, err := Validate([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".stackup.yaml")

	p := New("demo", "react-firebase", "stackup test")
	p.Client = &Client{Dir: "client", Scaffold: "vite/react", SDK: "firebase"}

	if err := Write(fsprobe.OS(), path, p); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if *got.Client != *p.Client || got.Name != p.Name || got.ID != p.ID || got.CreatedAt != p.CreatedAt {
		t.Errorf("Parse() = %+v, want %+v", got, p)
	}

	result, err := ValidateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("written record should validate, issues: %+v", result.Issues)
	}
}

func TestNew(t *testing.T) {
	p := New("demo", "default", "stackup dev")
	if _, err := uuid.Parse(p.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", p.ID, err)
	}
	if p.CreatedAt == "" {
		t.Error("CreatedAt should be set")
	}
	if p.Client != nil {
		t.Error("Client should be nil until set")
	}
}

func TestParse_Missing(t *testing.T) {
	if _, err := Parse(testPath("nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
