// pkg/config/recipe.go
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/prepline/prepline/pkg/recipe"
	"github.com/prepline/prepline/pkg/selector"
	"github.com/prepline/prepline/pkg/step"
)

// RecipeFile is the declarative YAML form of a recipe:
//
//	steps:
//	  - type: dummy
//	    columns: [diet]
//	  - type: holiday
//	    columns: [admitted]
//	    holidays: [ChristmasDay, NewYearsDay]
//	  - type: impute_lower
//	    role: measurement
//	  - type: boxcox
//	    columns: [income]
//	    limits: [-5, 5]
//	    nunique: 5
type RecipeFile struct {
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec is one declarative step entry. Exactly one of Columns or Role
// selects the target columns.
type StepSpec struct {
	Type     string    `yaml:"type"`
	Columns  []string  `yaml:"columns,omitempty"`
	Role     string    `yaml:"role,omitempty"`
	Holidays []string  `yaml:"holidays,omitempty"`
	Limits   []float64 `yaml:"limits,omitempty"`
	NUnique  int       `yaml:"nunique,omitempty"`
}

// ParseRecipe builds a recipe from YAML. Unknown step types, unknown
// holidays, and malformed selections all fail here, before any data is
// touched.
func ParseRecipe(data []byte, logger *zap.Logger) (*recipe.Recipe, error) {
	var file RecipeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, errors.New("recipe has no steps")
	}

	r := recipe.New(logger)
	for i, spec := range file.Steps {
		s, err := buildStep(spec, logger)
		if err != nil {
			return nil, fmt.Errorf("recipe step %d: %w", i+1, err)
		}
		r.Add(s)
	}
	return r, nil
}

// LoadRecipeFile reads and parses a YAML recipe from disk
func LoadRecipeFile(path string, logger *zap.Logger) (*recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}
	return ParseRecipe(data, logger)
}

func buildStep(spec StepSpec, logger *zap.Logger) (step.Step, error) {
	sel, err := buildSelector(spec)
	if err != nil {
		return nil, err
	}

	switch spec.Type {
	case "dummy":
		return step.NewDummy(sel, logger), nil

	case "holiday":
		return step.NewHoliday(sel, spec.Holidays, logger)

	case "impute_lower":
		return step.NewLowerImpute(sel, logger), nil

	case "boxcox":
		cfg := step.DefaultBoxCoxConfig()
		if len(spec.Limits) > 0 {
			if len(spec.Limits) != 2 {
				return nil, fmt.Errorf("limits must be [low, high], got %v", spec.Limits)
			}
			cfg.Limits = [2]float64{spec.Limits[0], spec.Limits[1]}
		}
		if spec.NUnique > 0 {
			cfg.NUnique = spec.NUnique
		}
		return step.NewBoxCoxWithConfig(sel, logger, cfg), nil

	default:
		return nil, fmt.Errorf("unknown step type %q", spec.Type)
	}
}

func buildSelector(spec StepSpec) (selector.Selector, error) {
	switch {
	case len(spec.Columns) > 0 && spec.Role != "":
		return nil, errors.New("columns and role are mutually exclusive")
	case len(spec.Columns) > 0:
		return selector.Columns(spec.Columns...), nil
	case spec.Role != "":
		return selector.ByRole(spec.Role), nil
	default:
		return nil, errors.New("step needs columns or a role")
	}
}
