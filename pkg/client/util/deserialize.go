package util

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// BindJsonOrYaml decodes the json or yaml document at filePath into obj. Field
// names follow obj's json tags.
func BindJsonOrYaml(filePath string, obj interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed opening file %s due to %s", filePath, err)
	}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return fmt.Errorf("failed to parse file %s because: %v", filePath, err)
	}
	return nil
}
