// Package hcl parses well registry files.
//
// A registry file declares one block per well:
//
//	well "Pozo 1" {
//	  capacity  = 10
//	  arsenic   = 0.004
//	  chloride  = 272.3
//	  available = true
//	}
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"waterblend/core/registry"
	"waterblend/core/types"
	"waterblend/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "well", LabelNames: []string{"id"}},
	},
}

var wellSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "capacity", Required: true},
		{Name: "arsenic", Required: true},
		{Name: "chloride", Required: true},
		{Name: "available", Required: false},
	},
}

// ParseFile reads a well registry from an HCL file
func ParseFile(path string) (*registry.Registry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing("failed to read wells file", err)
	}
	return Parse(src, path)
}

// Parse reads a well registry from HCL source
func Parse(src []byte, filename string) (*registry.Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid wells file", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid wells file structure", diags)
	}

	reg := registry.New()
	for _, block := range content.Blocks {
		well, err := decodeWell(block)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(well); err != nil {
			return nil, err
		}
	}

	if reg.Len() == 0 {
		return nil, errors.Inputf("no wells declared in %s", filename)
	}
	return reg, nil
}

func decodeWell(block *hcl.Block) (types.Source, error) {
	content, diags := block.Body.Content(wellSchema)
	if diags.HasErrors() {
		return types.Source{}, errors.Parsing(
			fmt.Sprintf("invalid well block %q", block.Labels[0]), diags)
	}

	src := types.Source{
		ID:        types.WellID(block.Labels[0]),
		Available: true,
	}

	var err error
	if src.Capacity, err = numberAttr(content, "capacity"); err != nil {
		return types.Source{}, err
	}
	if src.Quality.Arsenic, err = numberAttr(content, "arsenic"); err != nil {
		return types.Source{}, err
	}
	if src.Quality.Chloride, err = numberAttr(content, "chloride"); err != nil {
		return types.Source{}, err
	}

	if attr, ok := content.Attributes["available"]; ok {
		val, err := attrValue(attr)
		if err != nil {
			return types.Source{}, err
		}
		if val.Type() != cty.Bool {
			return types.Source{}, errors.Inputf(
				"attribute %q must be a bool", attr.Name)
		}
		src.Available = val.True()
	}

	return src, nil
}

func numberAttr(content *hcl.BodyContent, name string) (float64, error) {
	attr := content.Attributes[name]
	val, err := attrValue(attr)
	if err != nil {
		return 0, err
	}
	if val.Type() != cty.Number {
		return 0, errors.Inputf("attribute %q must be a number", name)
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func attrValue(attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, errors.Parsing(
			fmt.Sprintf("failed to evaluate attribute %q", attr.Name), diags)
	}
	if !val.IsKnown() || val.IsNull() {
		return cty.NilVal, errors.Inputf("attribute %q has no value", attr.Name)
	}
	return val, nil
}
