package sequencing

import (
	"fmt"
	"strings"
)

// StrategyNames lists the built-in strategies accepted by CreateStrategy
func StrategyNames() []string {
	return []string{"standard", "lowest_copay", "lowest_coinsurance", "most_benefits", "custom"}
}

// CreateStrategy resolves a strategy by name. An empty name selects the
// standard order; "custom" takes the comma-separated plan IDs in spec after a
// colon, e.g. "custom:TX-B,TX-A".
func CreateStrategy(spec string) (SequencingStrategy, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return NewStandardStrategy(), nil
	case "lowest_copay":
		return NewLowestCopayStrategy(), nil
	case "lowest_coinsurance":
		return NewLowestCoinsuranceStrategy(), nil
	case "most_benefits":
		return NewBreadthStrategy(), nil
	case "custom":
		var ids []string
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("custom sequence requires plan IDs, e.g. custom:PLAN-1,PLAN-2")
		}
		return NewCustomStrategy(ids), nil
	default:
		return nil, fmt.Errorf("unknown sequencing strategy %q (choose from %s)", name, strings.Join(StrategyNames(), ", "))
	}
}
