package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
)

const classicPrompt = "You are Abel Prasad's AI assistant. Abel is a Computer Science student at Penn State University (graduating May 2026) and a full-stack developer passionate about AI/ML. His skills include: Frontend (React, Next.js, TypeScript, Tailwind), Backend (Node.js, Express, FastAPI, Python, MongoDB, PostgreSQL), and AI/ML (TensorFlow, NLP, Transformers, RAG). His key projects: FanTravels (full-stack app with FastAPI/Next.js/PostgreSQL), Sathika Boutique (e-commerce with Stripe), and ClipCheck (ML misinformation detection). He's open to internships and freelance work. Keep responses concise and professional. For contact, direct to abelprasad4@gmail.com or LinkedIn."

func TestBuiltinNames(t *testing.T) {
	got := strings.Join(BuiltinNames(), ",")
	if got != "classic,minimal,studio" {
		t.Fatalf("BuiltinNames() = %q", got)
	}
}

func TestBuiltinProfilesValidate(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			p, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", name, err)
			}
			if p.Name != name {
				t.Fatalf("Expected name %q, got %q", name, p.Name)
			}
			if strings.TrimSpace(p.Instruction()) == "" {
				t.Fatal("Expected a system instruction")
			}
			if strings.TrimSpace(p.GreetingText()) == "" {
				t.Fatal("Expected a greeting")
			}
		})
	}
}

func TestClassicProfile(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Name != DefaultName {
		t.Fatalf("Expected default profile %q, got %q", DefaultName, p.Name)
	}
	if p.Instruction() != classicPrompt {
		t.Fatalf("Unexpected classic instruction:\n%s", p.Instruction())
	}
	if p.GreetingText() != "Hi! I'm Abel's AI assistant. Ask me about his projects, tech stack, or experience!" {
		t.Fatalf("Unexpected greeting %q", p.GreetingText())
	}
	if p.Chat.Provider != "groq" || p.Chat.History != "latest" {
		t.Fatalf("Unexpected chat settings %+v", p.Chat)
	}

	featured := p.Featured()
	if len(featured) != 3 {
		t.Fatalf("Expected 3 featured projects, got %d", len(featured))
	}
	if featured[0].Title != "FanTravels" || featured[2].Title != "ClipCheck" {
		t.Fatalf("Unexpected featured projects %+v", featured)
	}
	if len(p.Projects) != 4 {
		t.Fatalf("Expected 4 projects in total, got %d", len(p.Projects))
	}
}

func TestInstructionGolden(t *testing.T) {
	p, err := Builtin("studio")
	if err != nil {
		t.Fatalf("Builtin(studio) error: %v", err)
	}
	golden.RequireEqual(t, []byte(p.Instruction()))
}

func TestInstruction_MinimalSections(t *testing.T) {
	p := &Profile{Name: "x", Owner: "Jane Doe"}

	if got := p.Instruction(); got != "You are Jane Doe's AI assistant." {
		t.Fatalf("Unexpected instruction %q", got)
	}
	if got := p.GreetingText(); got != "Hi! I'm Jane's AI assistant. Ask me about their projects, tech stack, or experience!" {
		t.Fatalf("Unexpected greeting %q", got)
	}
}

func TestFeatured(t *testing.T) {
	projects := []Project{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	tests := []struct {
		count int
		want  int
	}{
		{0, 3},
		{1, 1},
		{3, 3},
		{5, 3},
	}
	for _, tt := range tests {
		p := &Profile{Projects: projects, FeaturedCount: tt.count}
		if got := len(p.Featured()); got != tt.want {
			t.Errorf("Featured() with count %d = %d projects, want %d", tt.count, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "name: [unterminated"},
		{"missing name", "owner: Jane"},
		{"missing owner", "name: x"},
		{"negative featured", "name: x\nowner: Jane\nfeatured_count: -1"},
		{"untitled project", "name: x\nowner: Jane\nprojects:\n  - link: https://example.com"},
		{"bad provider", "name: x\nowner: Jane\nchat:\n  provider: copilot"},
		{"bad history", "name: x\nowner: Jane\nchat:\n  history: some"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatalf("Expected Parse to reject %q", tt.yaml)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	data := "name: custom\nowner: Jane Doe\nsystem_prompt: Answer as Jane's assistant.\nchat:\n  history: full\n"
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	p, err := Load(file)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", file, err)
	}
	if p.Instruction() != "Answer as Jane's assistant." {
		t.Fatalf("Unexpected instruction %q", p.Instruction())
	}
	if p.Chat.History != "full" {
		t.Fatalf("Expected full history, got %q", p.Chat.History)
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "classic") {
		t.Fatalf("Expected error to list built-in profiles, got %v", err)
	}
}
