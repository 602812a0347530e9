package project

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template returns the starter YAML document for a new project.
func Template(name string) ([]byte, error) {
	def := map[string]any{
		"api": map[string]any{
			"name":      name,
			"base_url":  "",
			"scenarios": map[string][]string{},
		},
		"requests": []map[string]any{
			{
				"name":   "docs",
				"method": "GET",
				"path":   "/docs",
			},
		},
	}

	out, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}
