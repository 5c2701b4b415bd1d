package profile

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultName is the profile used when none is configured.
const DefaultName = "classic"

//go:embed profiles/*.yaml
var builtinFS embed.FS

// Project is one entry of the project showcase.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Contact holds the ways visitors are pointed to.
type Contact struct {
	Email    string `yaml:"email"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
}

// ChatSettings selects the backend and history mode for a page variant.
// Empty values fall back to the application config.
type ChatSettings struct {
	Provider string `yaml:"provider"`
	History  string `yaml:"history"`
}

// Profile is one variant of the portfolio page: its copy, its project list
// and the chat backend it talks to.
type Profile struct {
	Name          string       `yaml:"name"`
	Owner         string       `yaml:"owner"`
	AssistantName string       `yaml:"assistant_name"`
	Headline      string       `yaml:"headline"`
	Summary       string       `yaml:"summary"`
	Skills        []SkillGroup `yaml:"skills"`
	Projects      []Project    `yaml:"projects"`
	FeaturedCount int          `yaml:"featured_count"`
	Contact       Contact      `yaml:"contact"`
	Availability  string       `yaml:"availability"`
	Style         string       `yaml:"style"`
	Greeting      string       `yaml:"greeting"`
	SystemPrompt  string       `yaml:"system_prompt"`
	Chat          ChatSettings `yaml:"chat"`
}

// BuiltinNames lists the embedded profiles, sorted.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads an embedded profile by name.
func Builtin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile(path.Join("profiles", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown profile %q (built-in: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}
	return p, nil
}

// Load resolves nameOrPath as a built-in profile name first and a YAML file
// path second. An empty value loads DefaultName.
func Load(nameOrPath string) (*Profile, error) {
	nameOrPath = strings.TrimSpace(nameOrPath)
	if nameOrPath == "" {
		nameOrPath = DefaultName
	}
	for _, name := range BuiltinNames() {
		if name == nameOrPath {
			return Builtin(name)
		}
	}

	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unknown profile %q (built-in: %s)", nameOrPath, strings.Join(BuiltinNames(), ", "))
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", nameOrPath, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for missing or out-of-range values.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	if p.FeaturedCount < 0 {
		return fmt.Errorf("featured_count must be >= 0")
	}
	for i, pr := range p.Projects {
		if strings.TrimSpace(pr.Title) == "" {
			return fmt.Errorf("projects[%d]: title is required", i)
		}
	}
	switch strings.ToLower(strings.TrimSpace(p.Chat.Provider)) {
	case "", "groq", "openai", "google":
	default:
		return fmt.Errorf("chat.provider must be one of groq, openai, google")
	}
	switch strings.ToLower(strings.TrimSpace(p.Chat.History)) {
	case "", "latest", "full":
	default:
		return fmt.Errorf("chat.history must be latest or full")
	}
	return nil
}

// Featured returns the projects shown on the landing page. A zero
// FeaturedCount means all of them.
func (p *Profile) Featured() []Project {
	if p.FeaturedCount <= 0 || p.FeaturedCount >= len(p.Projects) {
		return p.Projects
	}
	return p.Projects[:p.FeaturedCount]
}

// FirstName returns the first word of Owner.
func (p *Profile) FirstName() string {
	fields := strings.Fields(p.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// GreetingText returns the seeded assistant message.
func (p *Profile) GreetingText() string {
	if g := strings.TrimSpace(p.Greeting); g != "" {
		return g
	}
	return fmt.Sprintf("Hi! I'm %s's AI assistant. Ask me about their projects, tech stack, or experience!", p.FirstName())
}

// Instruction returns the fixed system instruction sent ahead of every
// question. An explicit system_prompt wins over the assembled one.
func (p *Profile) Instruction() string {
	if s := strings.TrimSpace(p.SystemPrompt); s != "" {
		return s
	}

	var sb strings.Builder
	assistant := strings.TrimSpace(p.AssistantName)
	if assistant == "" {
		assistant = p.Owner + "'s AI assistant"
	}
	fmt.Fprintf(&sb, "You are %s.", assistant)
	if summary := strings.TrimSpace(p.Summary); summary != "" {
		sb.WriteString(" ")
		sb.WriteString(summary)
	}

	if len(p.Skills) > 0 {
		sb.WriteString("\n\nSkills:")
		for _, g := range p.Skills {
			fmt.Fprintf(&sb, "\n- %s: %s", g.Name, strings.Join(g.Items, ", "))
		}
	}

	if len(p.Projects) > 0 {
		sb.WriteString("\n\nProjects:")
		for _, pr := range p.Projects {
			fmt.Fprintf(&sb, "\n- %s", pr.Title)
			if len(pr.Tags) > 0 {
				fmt.Fprintf(&sb, " (%s)", strings.Join(pr.Tags, ", "))
			}
			if desc := strings.TrimSpace(pr.Description); desc != "" {
				fmt.Fprintf(&sb, ": %s", desc)
			}
		}
	}

	for _, extra := range []string{p.Availability, p.Style} {
		if extra = strings.TrimSpace(extra); extra != "" {
			sb.WriteString("\n\n")
			sb.WriteString(extra)
		}
	}

	if contact := p.Contact.list(); len(contact) > 0 {
		fmt.Fprintf(&sb, "\n\nFor contact, direct visitors to %s.", strings.Join(contact, " or "))
	}
	return sb.String()
}

func (c Contact) list() []string {
	var out []string
	if c.Email != "" {
		out = append(out, c.Email)
	}
	if c.GitHub != "" {
		out = append(out, "GitHub ("+c.GitHub+")")
	}
	if c.LinkedIn != "" {
		out = append(out, "LinkedIn ("+c.LinkedIn+")")
	}
	return out
}
