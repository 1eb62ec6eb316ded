package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# broker credentials
BROKER_USER=admin
export BROKER_PASSWORD="p@ss word"
SINGLE='keep $literal'

ALREADY_SET=from-file
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("ALREADY_SET", "from-env")
	t.Setenv("BROKER_USER", "")

	if err := loadDotenv(path); err != nil {
		t.Fatalf("loadDotenv: %v", err)
	}

	if got := os.Getenv("BROKER_USER"); got != "admin" {
		t.Fatalf("expected BROKER_USER=admin, got %q", got)
	}
	if got := os.Getenv("BROKER_PASSWORD"); got != "p@ss word" {
		t.Fatalf("expected unquoted password, got %q", got)
	}
	if got := os.Getenv("SINGLE"); got != "keep $literal" {
		t.Fatalf("expected single-quoted literal, got %q", got)
	}
	if got := os.Getenv("ALREADY_SET"); got != "from-env" {
		t.Fatalf("existing env must win, got %q", got)
	}
}

func TestLoadDotenv_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("NOT A PAIR\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := loadDotenv(path); err == nil {
		t.Fatal("expected error for line without '='")
	}
}

func TestParseDotenvLine(t *testing.T) {
	cases := []struct {
		in      string
		key     string
		val     string
		ok      bool
		wantErr bool
	}{
		{"", "", "", false, false},
		{"# comment", "", "", false, false},
		{"KEY=value", "KEY", "value", true, false},
		{"export KEY=value", "KEY", "value", true, false},
		{`KEY="a b"`, "KEY", "a b", true, false},
		{"=value", "", "", false, true},
		{"KEY", "", "", false, true},
	}
	for _, tc := range cases {
		key, val, ok, err := parseDotenvLine(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if ok != tc.ok || key != tc.key || val != tc.val {
			t.Fatalf("%q: got (%q, %q, %v)", tc.in, key, val, ok)
		}
	}
}
