package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/spacemeshos/go-deliberation/common/types"
)

const profileSchemaFile = "profile.schema.json"

// ProfileSchema describes a profile document:
//
//	{"universe": ["a", "b"], "agents": [{"disposition": "keen", "evidence": {"a": 3}}]}
const ProfileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["universe", "agents"],
  "additionalProperties": false,
  "properties": {
    "universe": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "agents": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["disposition"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "integer", "minimum": 1, "maximum": 4294967295},
          "disposition": {"enum": ["keen", "lazy"]},
          "evidence": {
            "type": "object",
            "additionalProperties": {"type": "integer", "minimum": 0}
          }
        }
      }
    }
  }
}`

type profileDocument struct {
	Universe []types.Alternative `json:"universe"`
	Agents   []struct {
		ID          types.AgentID             `json:"id"`
		Disposition types.Disposition         `json:"disposition"`
		Evidence    map[types.Alternative]int `json:"evidence"`
	} `json:"agents"`
}

func ValidateProfile(data []byte) error {
	sch, err := jsonschema.CompileString(profileSchemaFile, ProfileSchema)
	if err != nil {
		return fmt.Errorf("compile profile json schema: %w", err)
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal profile data: %w", err)
	}
	if err = sch.Validate(v); err != nil {
		return fmt.Errorf("validate profile data: %w", err)
	}
	return nil
}

// LoadProfile replaces the universe and the agents of cfg with the profile
// document at path.
func (cfg *Config) LoadProfile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read profile %s: %w", path, err)
	}
	if err := ValidateProfile(data); err != nil {
		return err
	}
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode profile %s: %w", path, err)
	}
	cfg.Universe = doc.Universe
	cfg.Agents = make([]AgentConfig, 0, len(doc.Agents))
	for _, a := range doc.Agents {
		cfg.Agents = append(cfg.Agents, AgentConfig{
			ID:          a.ID,
			Disposition: a.Disposition,
			Evidence:    a.Evidence,
		})
	}
	return nil
}
