// ABOUTME: End-to-end tests running CLI commands offline
// ABOUTME: Uses the hash embedder, in-memory backend and mock weather

package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EMBEDDING_PROVIDER", "hash")
	t.Setenv("KNOWLEDGE_BACKEND", "memory")
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("DISEASE_TREATMENTS_PATH", filepath.Join(t.TempDir(), "treatments.json"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	offlineEnv(t)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAskCmd_Greeting(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "ask", "hello")
	if err != nil {
		t.Fatalf("ask error = %v", err)
	}

	var got struct {
		Response string `json:"response"`
		Metadata struct {
			Intent string `json:"intent"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Metadata.Intent != "greeting" {
		t.Errorf("intent = %q, want greeting", got.Metadata.Intent)
	}
	if !strings.HasPrefix(got.Response, "Hello!") {
		t.Errorf("response = %q", got.Response)
	}
}

func TestAskCmd_WeatherContext(t *testing.T) {
	out, err := runCLI(t, "ask", "how", "do", "I", "improve", "clay", "soil", "--location", "Pune")
	if err != nil {
		t.Fatalf("ask error = %v", err)
	}
	if !strings.Contains(out, "--- Weather Context for Pune ---") {
		t.Errorf("expected weather block, got:\n%s", out)
	}
	if !strings.Contains(out, "💡 Tip:") {
		t.Errorf("expected closing tip, got:\n%s", out)
	}
}

func TestAskCmd_RequiresMessage(t *testing.T) {
	if _, err := runCLI(t, "ask"); err == nil {
		t.Error("expected error without a message")
	}
}

func TestAdviseCmd(t *testing.T) {
	out, err := runCLI(t, "advise", "--crop", "tomato", "--month", "1")
	if err != nil {
		t.Fatalf("advise error = %v", err)
	}
	if !strings.Contains(out, "Seasonal:") {
		t.Errorf("expected seasonal segment, got:\n%s", out)
	}
	if !strings.Contains(out, "Season: Winter") {
		t.Errorf("expected Winter season, got:\n%s", out)
	}
}

func TestAdviseCmd_InvalidMonth(t *testing.T) {
	if _, err := runCLI(t, "advise", "--month", "14"); err == nil {
		t.Error("expected error for month 14")
	}
}

func TestSeasonalCmd(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{[]string{"seasonal", "7"}, "Summer:", false},
		{[]string{"seasonal", "12"}, "Winter:", false},
		{[]string{"seasonal", "13"}, "", true},
		{[]string{"seasonal", "july"}, "", true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("output = %q, want prefix %q", out, tt.want)
			}
		})
	}
}

func TestSearchCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "search", "drip irrigation", "--limit", "2")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}

	var matches []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &matches); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want 2", len(matches))
	}
}

func TestSearchCmd_InvalidLimit(t *testing.T) {
	if _, err := runCLI(t, "search", "soil", "--limit", "0"); err == nil {
		t.Error("expected error for --limit 0")
	}
}

func TestSeedCmd(t *testing.T) {
	out, err := runCLI(t, "seed")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if !strings.Contains(out, "Seeded 20 document(s); total 20") {
		t.Errorf("output = %q", out)
	}
}

func TestListCmd_EmptyMemoryStore(t *testing.T) {
	out, err := runCLI(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No documents found") {
		t.Errorf("output = %q", out)
	}
}

func TestIngestCmd(t *testing.T) {
	out, err := runCLI(t, "ingest", "Sorghum tolerates drought", "--id", "sorghum-1")
	if err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(out, "Ingested sorghum-1") {
		t.Errorf("output = %q", out)
	}

	if _, err := runCLI(t, "ingest"); err == nil {
		t.Error("expected error without text")
	}
}

func TestSyncNow_UnsupportedBackend(t *testing.T) {
	_, err := runCLI(t, "sync", "now")
	if err == nil || !strings.Contains(err.Error(), "does not sync") {
		t.Errorf("error = %v, want unsupported backend", err)
	}
}

func TestSyncWipe_RequiresConfirmation(t *testing.T) {
	_, err := runCLI(t, "sync", "wipe")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Errorf("error = %v, want confirmation error", err)
	}
}

func TestCommandDescriptions(t *testing.T) {
	for _, sub := range NewRootCmd().Commands() {
		switch sub.Name() {
		case "help", "completion":
			continue
		}
		t.Run(sub.Name(), func(t *testing.T) {
			if sub.Short == "" {
				t.Error("Short description should not be empty")
			}
			if sub.Long == "" {
				t.Error("Long description should not be empty")
			}
		})
	}
}

func TestMCPCmd_Example(t *testing.T) {
	cmd := NewMCPCmd()
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
	if !strings.Contains(cmd.Example, "mcpServers") {
		t.Error("Example should show MCP client configuration")
	}
}
