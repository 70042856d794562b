package transformations

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrMalformedCommand is returned for commands that don't follow the
// N:u, N:U or N:RAB grammar
var ErrMalformedCommand = errors.New("malformed command")

// Config represents a transformation configuration, either parsed from a
// command token or decoded from YAML
type Config struct {
	Field int    `yaml:"field"`
	Type  Type   `yaml:"type"`
	From  string `yaml:"from,omitempty"`
	To    string `yaml:"to,omitempty"`
}

// String formats the config back into command grammar
func (c Config) String() string {
	if c.Type == TypeReplace {
		return fmt.Sprintf("%d:%s%s%s", c.Field, c.Type, c.From, c.To)
	}
	return fmt.Sprintf("%d:%s", c.Field, c.Type)
}

// UnmarshalYAML accepts either a command token ("1:u") or a mapping with
// field, type, from and to keys
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		cfg, err := ParseConfig(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = cfg
		return nil
	}

	type plain Config
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// ParseConfig parses a single command token into a Config
func ParseConfig(token string) (Config, error) {
	parts := Tokenize(token, ':')
	if len(parts) != 2 {
		return Config{}, fmt.Errorf("unable to parse argument [%s]: %w: expected N:operation", token, ErrMalformedCommand)
	}

	field, err := strconv.Atoi(parts[0])
	if err != nil || field < 0 {
		return Config{}, fmt.Errorf("unable to parse argument [%s]: %w: field %q is not a non-negative integer", token, ErrMalformedCommand, parts[0])
	}

	op := parts[1]
	switch {
	case op == string(TypeLowerCase):
		return Config{Field: field, Type: TypeLowerCase}, nil
	case op == string(TypeUpperCase):
		return Config{Field: field, Type: TypeUpperCase}, nil
	case len(op) == 3 && op[0] == 'R':
		return Config{Field: field, Type: TypeReplace, From: op[1:2], To: op[2:3]}, nil
	default:
		return Config{}, fmt.Errorf("unable to parse argument [%s]: %w: unknown operation %q", token, ErrMalformedCommand, op)
	}
}

// BuildTransformation creates a Transformation from a config
func BuildTransformation(cfg Config) (Transformation, error) {
	if cfg.Field < 0 {
		return nil, fmt.Errorf("%w: negative field %d", ErrMalformedCommand, cfg.Field)
	}

	switch cfg.Type {
	case TypeLowerCase:
		return LowerCase{Field: cfg.Field}, nil
	case TypeUpperCase:
		return UpperCase{Field: cfg.Field}, nil
	case TypeReplace:
		if len(cfg.From) != 1 || len(cfg.To) != 1 {
			return nil, fmt.Errorf("%w: replace needs single byte from and to, got %q and %q", ErrMalformedCommand, cfg.From, cfg.To)
		}
		return Replace{Field: cfg.Field, From: cfg.From[0], To: cfg.To[0]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown transformation type %q", ErrMalformedCommand, cfg.Type)
	}
}

// BuildTransformations creates Transformations from configs, keeping their order
func BuildTransformations(configs []Config) ([]Transformation, error) {
	commands := make([]Transformation, 0, len(configs))
	for _, cfg := range configs {
		t, err := BuildTransformation(cfg)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cfg, err)
		}
		commands = append(commands, t)
	}
	return commands, nil
}

// ParseCommand parses a command token into a Transformation
func ParseCommand(token string) (Transformation, error) {
	cfg, err := ParseConfig(token)
	if err != nil {
		return nil, err
	}
	return BuildTransformation(cfg)
}

// ParseCommands parses command tokens in order and stops at the first
// malformed one
func ParseCommands(tokens []string) ([]Transformation, error) {
	commands := make([]Transformation, 0, len(tokens))
	for _, token := range tokens {
		t, err := ParseCommand(token)
		if err != nil {
			return nil, err
		}
		commands = append(commands, t)
	}
	return commands, nil
}
