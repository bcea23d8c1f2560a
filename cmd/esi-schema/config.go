package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/hwtype"
)

// Config is the TOML description of the types the tool works with.
type Config struct {
	Types []TypeDef `toml:"types"`
}

// TypeDef declares one named type: either a type expression or a list
// of struct fields, not both.
type TypeDef struct {
	Name   string     `toml:"name"`
	Expr   string     `toml:"expr"`
	Fields []FieldDef `toml:"fields"`
}

// FieldDef is one struct member.
type FieldDef struct {
	Name string `toml:"name"`
	Expr string `toml:"expr"`
}

func loadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// resolveAll builds the descriptor for every declared type. Later
// declarations may reference earlier ones by name; such references
// become aliases.
func (c *Config) resolveAll() (map[string]hwtype.Type, []string, error) {
	types := make(map[string]hwtype.Type)
	var order []string
	for _, td := range c.Types {
		if td.Name == "" {
			return nil, nil, fmt.Errorf("type declaration without a name")
		}
		if _, dup := types[td.Name]; dup {
			return nil, nil, fmt.Errorf("type %q declared twice", td.Name)
		}
		t, err := td.resolve(types)
		if err != nil {
			return nil, nil, fmt.Errorf("type %q: %w", td.Name, err)
		}
		types[td.Name] = t
		order = append(order, td.Name)
	}
	return types, order, nil
}

func (td TypeDef) resolve(known map[string]hwtype.Type) (hwtype.Type, error) {
	if td.Expr != "" && len(td.Fields) > 0 {
		return nil, fmt.Errorf("has both an expression and fields")
	}
	if td.Expr != "" {
		return parseTypeExpr(td.Expr, known)
	}
	if len(td.Fields) == 0 {
		return nil, fmt.Errorf("has neither an expression nor fields")
	}
	var fields []hwtype.Field
	for _, fd := range td.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("field without a name")
		}
		ft, err := parseTypeExpr(fd.Expr, known)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields = append(fields, hwtype.Field{Name: fd.Name, Type: ft})
	}
	return hwtype.Struct{Fields: fields}, nil
}

// parseTypeExpr reads a type expression: void, bool, uint<N>, int<N>,
// a previously declared type name, or any of those followed by one or
// more [N] array suffixes.
func parseTypeExpr(expr string, known map[string]hwtype.Type) (hwtype.Type, error) {
	expr = strings.TrimSpace(expr)

	// Peel array suffixes from the right: uint4[3][2] is a 2-array of
	// 3-arrays of uint4.
	var sizes []uint
	for strings.HasSuffix(expr, "]") {
		open := strings.LastIndex(expr, "[")
		if open < 0 {
			return nil, fmt.Errorf("unbalanced ']' in %q", expr)
		}
		n, err := strconv.ParseUint(expr[open+1:len(expr)-1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad array size in %q", expr)
		}
		sizes = append(sizes, uint(n))
		expr = expr[:open]
	}

	base, err := parseBaseType(strings.TrimSpace(expr), known)
	if err != nil {
		return nil, err
	}
	// sizes were collected outermost first.
	for i := len(sizes) - 1; i >= 0; i-- {
		base = hwtype.Array{Elem: base, Size: sizes[i]}
	}
	return base, nil
}

func parseBaseType(name string, known map[string]hwtype.Type) (hwtype.Type, error) {
	switch {
	case name == "void":
		return hwtype.Int{Width: 0}, nil
	case name == "bool":
		return hwtype.Int{Width: 1}, nil
	case strings.HasPrefix(name, "uint"):
		w, err := strconv.ParseUint(name[4:], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("bad width in %q", name)
		}
		return hwtype.Int{Width: uint(w)}, nil
	case strings.HasPrefix(name, "int"):
		w, err := strconv.ParseUint(name[3:], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("bad width in %q", name)
		}
		return hwtype.Int{Width: uint(w), Signed: true}, nil
	}
	if t, ok := known[name]; ok {
		return hwtype.Alias{Name: name, To: t}, nil
	}
	return nil, errors.NotFound(errors.PhaseParse, "type", name)
}
