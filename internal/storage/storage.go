package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/packwise/loadout/internal/solver"
)

const maxRules = 100

var (
	// ErrInvalidRules indicates the provided rule set violates validation rules.
	ErrInvalidRules = errors.New("synergy rules must each name at least two items and carry a positive bonus")
)

var defaultRules = []solver.SynergyRule{
	{Names: []string{"Laptop", "Charger"}, Bonus: 200},
	{Names: []string{"Camera", "Tripod"}, Bonus: 150},
	{Names: []string{"Tent", "Sleeping Bag", "Stove"}, Bonus: 350},
}

// Store provides access to the synergy rule set used by the solver.
type Store interface {
	GetRules() ([]solver.SynergyRule, error)
	SetRules(rules []solver.SynergyRule) error
}

// MemoryStore keeps the rule set in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	rules []solver.SynergyRule
}

// NewMemoryStore initialises the store with a copy of the default rule set.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rules: cloneRules(defaultRules),
	}
}

// DefaultRules returns a copy of the default synergy rule set.
func DefaultRules() []solver.SynergyRule {
	return cloneRules(defaultRules)
}

// GetRules returns a defensive copy of the currently configured rules.
func (s *MemoryStore) GetRules() ([]solver.SynergyRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneRules(s.rules), nil
}

// SetRules validates, normalises, and stores the provided rule set.
// An empty slice is valid and disables synergy bonuses entirely.
func (s *MemoryStore) SetRules(rules []solver.SynergyRule) error {
	normalized, err := normalizeRules(rules)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rules = normalized
	s.mu.Unlock()

	return nil
}

// LoadRulesFile reads a YAML rule file: a list of {names: [...], bonus: N}.
func LoadRulesFile(path string) ([]solver.SynergyRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var raw []yamlRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rules := make([]solver.SynergyRule, 0, len(raw))
	for _, r := range raw {
		rules = append(rules, solver.SynergyRule{Names: r.Names, Bonus: r.Bonus})
	}

	normalized, err := normalizeRules(rules)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return normalized, nil
}

type yamlRule struct {
	Names []string `yaml:"names"`
	Bonus float64  `yaml:"bonus"`
}

func cloneRules(src []solver.SynergyRule) []solver.SynergyRule {
	out := make([]solver.SynergyRule, len(src))
	for i, rule := range src {
		names := make([]string, len(rule.Names))
		copy(names, rule.Names)
		out[i] = solver.SynergyRule{Names: names, Bonus: rule.Bonus}
	}
	return out
}

func normalizeRules(rules []solver.SynergyRule) ([]solver.SynergyRule, error) {
	if len(rules) > maxRules {
		return nil, ErrInvalidRules
	}

	out := make([]solver.SynergyRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Bonus <= 0 {
			return nil, ErrInvalidRules
		}
		seen := make(map[string]struct{}, len(rule.Names))
		names := make([]string, 0, len(rule.Names))
		for _, name := range rule.Names {
			if name == "" {
				return nil, ErrInvalidRules
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		if len(names) < 2 {
			return nil, ErrInvalidRules
		}
		out = append(out, solver.SynergyRule{Names: names, Bonus: rule.Bonus})
	}
	return out, nil
}
