// Package schema loads declarative variable definitions and turns them
// into env.Specs.
//
// A schema file is YAML (or JSON, which YAML accepts):
//
//	mode_key: APP_ENV
//	prefixes: [APP_]
//	vars:
//	  - name: APP_PORT
//	    type: port
//	    default: "8080"
//	    dev_default: "3000"
//	    desc: HTTP listen port
//	  - name: APP_LOG_LEVEL
//	    type: str
//	    choices: [debug, info, warn, error]
//	    default: info
//	  - name: APP_API_KEY
//	    type: str
//	    test_only: stub
//	    sensitive: true
//	  - name: APP_SMTP_HOST
//	    type: host
//	    default: smtp.example.com
//	    dev_test_only: localhost
//
// test_only sets a default that only applies in test mode. dev_test_only
// does the same for the dev default, so a variable with a production
// default is still required in development.
//
// Defaults, dev defaults, test-only values and choices are written as
// strings and parsed with the variable's own type.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/errors"
	"github.com/kbukum/envguard/validation"
	"github.com/kbukum/envguard/validators"
)

const namePattern = `^[A-Za-z_][A-Za-z0-9_]*$`

// Schema is a parsed schema file.
type Schema struct {
	// ModeKey overrides the variable read to determine the mode.
	ModeKey string `yaml:"mode_key" json:"mode_key"`
	// Prefixes scopes undeclared-key checks to matching raw keys.
	Prefixes []string `yaml:"prefixes" json:"prefixes"`
	// Vars lists the variables in evaluation order.
	Vars []Definition `yaml:"vars" json:"vars" validate:"dive"`
}

// Definition declares one variable.
type Definition struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Type        string   `yaml:"type" json:"type" validate:"required"`
	Default     *string  `yaml:"default" json:"default"`
	DevDefault  *string  `yaml:"dev_default" json:"dev_default"`
	TestOnly    *string  `yaml:"test_only" json:"test_only"`
	DevTestOnly *string  `yaml:"dev_test_only" json:"dev_test_only"`
	Optional    bool     `yaml:"optional" json:"optional"`
	Choices     []string `yaml:"choices" json:"choices"`
	Desc        string   `yaml:"desc" json:"desc"`
	Example     string   `yaml:"example" json:"example"`
	Docs        string   `yaml:"docs" json:"docs" validate:"omitempty,url"`
	Sensitive   bool     `yaml:"sensitive" json:"sensitive"`
}

// ParseFile reads and validates a schema file.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML or JSON schema.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "", "malformed schema").WithCause(err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every definition.
func (s *Schema) Validate() error {
	if err := validation.Validate(s); err != nil {
		return err
	}

	v := validation.New()
	seen := make(map[string]bool, len(s.Vars))
	for i, d := range s.Vars {
		field := fmt.Sprintf("vars[%d]", i)
		v.Pattern(field+".name", d.Name, namePattern).
			OneOf(field+".type", d.Type, validators.Types).
			Custom(seen[d.Name], field+".name", fmt.Sprintf("%s is declared more than once", d.Name)).
			Custom(d.Optional && d.Default != nil, field+".optional", "optional conflicts with default").
			Custom(d.Optional && d.TestOnly != nil, field+".optional", "optional conflicts with test_only").
			Custom(d.Default != nil && d.TestOnly != nil, field+".test_only", "test_only conflicts with default").
			Custom(d.Optional && d.DevTestOnly != nil, field+".optional", "optional conflicts with dev_test_only").
			Custom(d.DevDefault != nil && d.DevTestOnly != nil, field+".dev_test_only", "dev_test_only conflicts with dev_default")
		seen[d.Name] = true
	}
	return v.Validate()
}

// Specs builds the specs in declaration order.
func (s *Schema) Specs() (env.Specs, error) {
	specs := make(env.Specs, 0, len(s.Vars))
	for _, d := range s.Vars {
		spec, err := d.Spec()
		if err != nil {
			return nil, err
		}
		specs = specs.With(d.Name, spec)
	}
	return specs, nil
}

// Options returns the Clean options the schema implies.
func (s *Schema) Options() []env.Option {
	if s.ModeKey == "" {
		return nil
	}
	return []env.Option{env.WithModeKey(s.ModeKey)}
}

// Spec builds the spec for one definition.
func (d Definition) Spec() (env.Spec, error) {
	switch d.Type {
	case validators.TypeStr:
		return build(validators.Str(), d)
	case validators.TypeBool:
		return build(validators.Bool(), d)
	case validators.TypeNum:
		return build(validators.Num(), d)
	case validators.TypeInt:
		return build(validators.Int(), d)
	case validators.TypePort:
		return build(validators.Port(), d)
	case validators.TypeHost:
		return build(validators.Host(), d)
	case validators.TypeURL:
		return build(validators.URL(), d)
	case validators.TypeEmail:
		return build(validators.Email(), d)
	case validators.TypeJSON:
		return build(validators.JSON(), d)
	case validators.TypeDuration:
		return build(validators.Duration(), d)
	case validators.TypeUUID:
		return build(validators.UUID(), d)
	case validators.TypeSize:
		return build(validators.Size(), d)
	case validators.TypeList:
		return build(validators.List(), d)
	}
	return nil, errors.New(errors.ErrCodeInvalidDefinition, d.Name, fmt.Sprintf("unknown type %q", d.Type))
}

func build[T any](v *env.Var[T], d Definition) (env.Spec, error) {
	parse := func(field, raw string) (T, error) {
		value, err := v.Parser()(raw)
		if err != nil {
			e := errors.New(errors.ErrCodeInvalidDefinition, d.Name, fmt.Sprintf("%s does not match type %s", field, d.Type))
			if !d.Sensitive {
				e.WithCause(err)
			}
			return value, e
		}
		return value, nil
	}

	if d.Default != nil {
		value, err := parse("default", *d.Default)
		if err != nil {
			return nil, err
		}
		v.WithDefault(value)
	}
	if d.DevDefault != nil {
		value, err := parse("dev_default", *d.DevDefault)
		if err != nil {
			return nil, err
		}
		v.WithDevDefault(value)
	}
	if d.TestOnly != nil {
		value, err := parse("test_only", *d.TestOnly)
		if err != nil {
			return nil, err
		}
		v.WithTestOnlyDefault(value)
	}
	if d.DevTestOnly != nil {
		value, err := parse("dev_test_only", *d.DevTestOnly)
		if err != nil {
			return nil, err
		}
		v.WithDevDefaultFallback(env.TestOnly(value))
	}
	if d.Optional {
		v.Optional()
	}
	if d.Choices != nil {
		choices := make([]T, 0, len(d.Choices))
		for _, c := range d.Choices {
			value, err := parse("choice", c)
			if err != nil {
				return nil, err
			}
			choices = append(choices, value)
		}
		v.WithChoices(choices...)
	}

	v.WithDesc(d.Desc).WithExample(d.Example).WithDocs(d.Docs)
	if d.Sensitive {
		v.Sensitive()
	}
	return v, nil
}
