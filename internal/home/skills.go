package home

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidSkillName is returned for skill names that are not a single
// clean path component.
var ErrInvalidSkillName = fmt.Errorf("invalid skill name")

// Skill describes one skill directory in the workspace.
type Skill struct {
	Name       string
	Path       string // path of the SKILL.md file
	HasSkillMD bool
	Modified   int64 // SKILL.md mtime in unix seconds, 0 when unknown
}

// SkillFile is the content of one skill's SKILL.md.
type SkillFile struct {
	Name    string
	Path    string
	Content string
	Exists  bool
}

// ValidateSkillName accepts exactly one path component: no separators,
// no "." or "..", not empty.
func ValidateSkillName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidSkillName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidSkillName
	}
	return nil
}

// ListSkills returns every skill directory in the workspace, sorted
// case-insensitively by name. A missing skills directory is not an error.
func (h *Home) ListSkills() ([]Skill, error) {
	dir := h.SkillsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading skills dir: %w", err)
	}

	var skills []Skill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillMD := filepath.Join(dir, entry.Name(), "SKILL.md")
		s := Skill{Name: entry.Name(), Path: skillMD}
		if info, statErr := os.Stat(skillMD); statErr == nil {
			s.HasSkillMD = true
			s.Modified = info.ModTime().Unix()
		}
		skills = append(skills, s)
	}

	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})
	return skills, nil
}

// ReadSkill returns the SKILL.md content for a skill. A skill without a
// SKILL.md yet resolves to empty content with Exists false.
func (h *Home) ReadSkill(name string) (SkillFile, error) {
	if err := ValidateSkillName(name); err != nil {
		return SkillFile{}, err
	}
	path := filepath.Join(h.SkillsDir(), name, "SKILL.md")
	sf := SkillFile{Name: name, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sf, nil
		}
		return SkillFile{}, fmt.Errorf("reading skill %s: %w", name, err)
	}
	sf.Content = string(data)
	sf.Exists = true
	return sf, nil
}

// SaveSkill writes a skill's SKILL.md, creating the skill directory if
// needed.
func (h *Home) SaveSkill(name, content string) error {
	if err := ValidateSkillName(name); err != nil {
		return err
	}
	dir := filepath.Join(h.SkillsDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create skill dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write skill %s: %w", name, err)
	}
	return nil
}

// DeleteSkill removes a skill directory and everything in it. Deleting a
// skill that does not exist is not an error.
func (h *Home) DeleteSkill(name string) error {
	if err := ValidateSkillName(name); err != nil {
		return err
	}
	dir := filepath.Join(h.SkillsDir(), name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete skill %s: %w", name, err)
	}
	return nil
}
