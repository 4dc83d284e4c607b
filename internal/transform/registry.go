package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_income", createSetIncome)
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("add_dependents", createAddDependents)
	registry.Register("set_age", createSetAge)
	registry.Register("move_state", createMoveState)
	registry.Register("set_dental", createSetDental)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_income:amount=32000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses every spec in order.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	transforms := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	raw = strings.NewReplacer("$", "", ",", "").Replace(raw)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func createSetIncome(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createAdjustIncome(params map[string]string) (ProfileTransform, error) {
	delta, err := decimalParam("adjust_income", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Delta: delta}, nil
}

func createScaleIncome(params map[string]string) (ProfileTransform, error) {
	percent, err := decimalParam("scale_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Percent: percent}, nil
}

func createSetDependents(params map[string]string) (ProfileTransform, error) {
	count, err := intParam("set_dependents", params, "count")
	if err != nil {
		return nil, err
	}
	return &SetDependents{Count: count}, nil
}

func createAddDependents(params map[string]string) (ProfileTransform, error) {
	count, err := intParam("add_dependents", params, "count")
	if err != nil {
		return nil, err
	}
	return &AddDependents{Count: count}, nil
}

func createSetAge(params map[string]string) (ProfileTransform, error) {
	age, err := intParam("set_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetAge{Age: age}, nil
}

func createMoveState(params map[string]string) (ProfileTransform, error) {
	state, err := requireParam("move_state", params, "state")
	if err != nil {
		return nil, err
	}
	return &MoveState{State: state}, nil
}

func createSetDental(params map[string]string) (ProfileTransform, error) {
	raw, err := requireParam("set_dental", params, "wants")
	if err != nil {
		return nil, err
	}
	wants, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid wants value: %w", err)
	}
	return &SetDental{Wants: wants}, nil
}
