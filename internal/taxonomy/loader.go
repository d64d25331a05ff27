package taxonomy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static.json
var staticBaseline []byte

// Row is a loosely-typed industry or organization synonym record. Industry
// sources name the key skill_name/variants; organization custom sources
// name it canonical_skill/custom_synonyms. Both spellings are accepted.
type Row struct {
	SkillName      string   `mapstructure:"skill_name"`
	CanonicalSkill string   `mapstructure:"canonical_skill"`
	Variants       []string `mapstructure:"variants"`
	CustomSynonyms []string `mapstructure:"custom_synonyms"`
	IsActive       *bool    `mapstructure:"is_active"`
}

func (r Row) canonical() string {
	if r.CanonicalSkill != "" {
		return r.CanonicalSkill
	}
	return r.SkillName
}

func (r Row) variants() []string {
	if len(r.CustomSynonyms) > 0 {
		return r.CustomSynonyms
	}
	return r.Variants
}

func (r Row) active() bool {
	return r.IsActive == nil || *r.IsActive
}

// LoadStatic parses the embedded baseline taxonomy, a JSON document shaped
// as {category: {canonical: [synonyms]}}. A malformed baseline degrades to
// an empty layer and is logged, never raised.
func LoadStatic(logger *zap.Logger) Layer {
	var categories map[string]map[string][]string
	if err := json.Unmarshal(staticBaseline, &categories); err != nil {
		if logger != nil {
			logger.Warn("static taxonomy baseline is malformed, proceeding without it", zap.Error(err))
		}
		return Layer{}
	}

	layer := Layer{}
	for _, entries := range categories {
		for canonical, variants := range entries {
			layer[canonical] = append(layer[canonical], variants...)
		}
	}
	return layer
}

// LoadRows converts loosely-typed source rows into a Layer. Rows marked
// inactive and rows that fail to decode are skipped with a log entry; the
// load itself never fails.
func LoadRows(rows []map[string]any, logger *zap.Logger) Layer {
	layer := Layer{}
	for _, raw := range rows {
		var row Row
		if err := mapstructure.Decode(raw, &row); err != nil {
			if logger != nil {
				logger.Warn("skipping undecodable taxonomy row", zap.Any("row", raw), zap.Error(err))
			}
			continue
		}
		if !row.active() {
			continue
		}
		canonical := strings.TrimSpace(row.canonical())
		if canonical == "" {
			continue
		}
		layer[canonical] = append(layer[canonical], row.variants()...)
	}
	return layer
}

// LoadRowsFile reads taxonomy rows from a JSON or YAML file, selected by
// extension. A missing or malformed file degrades to an empty layer.
func LoadRowsFile(path string, logger *zap.Logger) Layer {
	if strings.TrimSpace(path) == "" {
		return Layer{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Warn("taxonomy source file is unreadable, proceeding without it",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return Layer{}
	}

	var rows []map[string]any
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rows)
	default:
		err = json.Unmarshal(data, &rows)
	}
	if err != nil {
		if logger != nil {
			logger.Warn("taxonomy source file is malformed, proceeding without it",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return Layer{}
	}

	return LoadRows(rows, logger)
}
