// internal/address/yaml.go
package address

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML lets config files list addresses as plain scalars ("D194").
func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: address must be a scalar", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = parsed
	return nil
}

func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
