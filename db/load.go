package db

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// TableSpec is the YAML representation of a Table.
type TableSpec struct {
	Name string                   `yaml:"name"`
	Rows []map[string]interface{} `yaml:"rows"`
}

// ParseRows parses YAML into a Table.
func ParseRows(src []byte) (*Table, error) {
	var spec TableSpec
	if err := yaml.Unmarshal(src, &spec); err != nil {
		return nil, err
	}
	return NewTable(spec.Name, spec.Rows...)
}

// LoadRows reads a Table from a YAML file.
func LoadRows(filename string) (*Table, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	t, err := ParseRows(src)
	if err != nil {
		return nil, fmt.Errorf("facts %s: %w", filename, err)
	}
	if t.Name == "" {
		t.Name = filename
	}
	return t, nil
}
