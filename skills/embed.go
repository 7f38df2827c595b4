package skills

import "embed"

// FS contains the starter skill pack embedded at compile time: a
// manifest plus one SKILL.md per skill, installed into the workspace
// during onboarding.
//
//go:embed manifest.toml */SKILL.md
var FS embed.FS
