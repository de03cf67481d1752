package ibis

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// DomainSpec is the YAML (or JSON) representation of a StdDomain.
//
// Plan constructs are either compact move strings ("Findout('?x.how(x)')")
// or maps with "if", "then", and (optionally) "else" properties.
type DomainSpec struct {
	Name   string              `json:"name,omitempty" yaml:"name,omitempty"`
	Doc    string              `json:"doc,omitempty" yaml:"doc,omitempty"`
	Preds0 []string            `json:"preds0,omitempty" yaml:"preds0,omitempty"`
	Preds1 map[string]string   `json:"preds1,omitempty" yaml:"preds1,omitempty"`
	Sorts  map[string][]string `json:"sorts,omitempty" yaml:"sorts,omitempty"`
	Plans  []PlanSpec          `json:"plans,omitempty" yaml:"plans,omitempty"`
}

// PlanSpec is the YAML representation of a Plan.
type PlanSpec struct {
	Trigger string        `json:"trigger" yaml:"trigger"`
	Doc     string        `json:"doc,omitempty" yaml:"doc,omitempty"`
	Plan    []interface{} `json:"plan" yaml:"plan"`
}

// ParseDomain parses YAML into a StdDomain.
func ParseDomain(src []byte) (*StdDomain, error) {
	var spec DomainSpec
	if err := yaml.Unmarshal(src, &spec); err != nil {
		return nil, err
	}
	return spec.Domain()
}

// LoadDomain reads a YAML file into a StdDomain.
func LoadDomain(filename string) (*StdDomain, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	d, err := ParseDomain(src)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", filename, err)
	}
	return d, nil
}

// Domain builds the StdDomain that the DomainSpec describes.
func (spec *DomainSpec) Domain() (*StdDomain, error) {
	d, err := NewDomain(spec.Preds0, spec.Preds1, spec.Sorts)
	if err != nil {
		return nil, err
	}
	d.Name = spec.Name
	d.Doc = spec.Doc

	for _, ps := range spec.Plans {
		trigger, err := ParseQuestion(ps.Trigger)
		if err != nil {
			return nil, err
		}
		constructs, err := parseConstructs(ps.Plan)
		if err != nil {
			return nil, fmt.Errorf("plan for %s: %w", ps.Trigger, err)
		}
		if err = d.AddPlanDoc(trigger, ps.Doc, constructs...); err != nil {
			return nil, fmt.Errorf("plan for %s: %w", ps.Trigger, err)
		}
	}

	return d, nil
}

func parseConstructs(xs []interface{}) ([]Move, error) {
	acc := make([]Move, 0, len(xs))
	for _, x := range xs {
		m, err := parseConstruct(x)
		if err != nil {
			return nil, err
		}
		acc = append(acc, m)
	}
	return acc, nil
}

func parseConstruct(x interface{}) (Move, error) {
	switch vv := x.(type) {
	case string:
		return ParseMove(vv)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			s, is := k.(string)
			if !is {
				return nil, fmt.Errorf("bad plan construct key %#v", k)
			}
			m[s] = v
		}
		return parseConstruct(m)
	case map[string]interface{}:
		cond, is := vv["if"].(string)
		if !is {
			return nil, fmt.Errorf("plan construct %v needs an 'if' question", vv)
		}
		q, err := ParseQuestion(cond)
		if err != nil {
			return nil, err
		}
		c := If{Cond: q}
		if c.Then, err = parseBranch(vv["then"]); err != nil {
			return nil, err
		}
		if c.Else, err = parseBranch(vv["else"]); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("bad plan construct %#v", x)
	}
}

func parseBranch(x interface{}) ([]Move, error) {
	switch vv := x.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return parseConstructs(vv)
	default:
		return nil, fmt.Errorf("bad plan branch %#v", x)
	}
}
