package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// ErrMissingField is returned when an imported record lacks a field its kind requires.
var ErrMissingField = errors.New("missing required field")

// fieldAliases maps spellings common in vendor feeds onto record fields.
// When several aliases target one field the earliest present wins, and a
// field already set under its own name is never overwritten.
var fieldAliases = []struct{ from, to string }{
	{"name", "model"},
	{"tdp", "tdp_watts"},
	{"price", "price_usd"},
	{"msrp", "price_usd"},
	{"vram", "vram_gb"},
	{"memory_size", "vram_gb"},
	{"base_clock", "base_clock_ghz"},
	{"boost_clock", "boost_clock_ghz"},
	{"length", "length_mm"},
	{"height", "height_mm"},
	{"type", "cooler_type"},
}

// recordSchema 每类组件的必填字段与默认值
type recordSchema struct {
	required []string
	defaults map[string]any
}

// objectID, performance_tier and compatibility_tags are derived on import.
var baseRequired = []string{"brand", "model", "price_usd"}

var recordSchemas = map[entity.Kind]recordSchema{
	entity.KindCPU: {
		required: []string{"socket", "tdp_watts", "cores", "threads", "memory_type"},
		defaults: map[string]any{"integrated_graphics": false},
	},
	entity.KindGPU: {
		required: []string{"length_mm", "tdp_watts", "vram_gb"},
	},
	entity.KindMotherboard: {
		required: []string{"socket", "form_factor", "memory_type"},
		defaults: map[string]any{"memory_slots": 4, "max_memory_gb": 128, "m2_slots": 1, "wifi": false},
	},
	entity.KindRAM: {
		required: []string{"memory_type", "speed_mhz", "capacity_gb"},
		defaults: map[string]any{"modules": 2, "rgb": false},
	},
	entity.KindPSU: {
		required: []string{"wattage"},
		defaults: map[string]any{"form_factor": "ATX"},
	},
	entity.KindCase: {
		required: []string{"form_factor_support", "max_gpu_length_mm", "max_cooler_height_mm"},
	},
	entity.KindCooler: {
		required: []string{"cooler_type", "socket_support", "height_mm"},
		defaults: map[string]any{"rgb": false},
	},
}

func (s recordSchema) isRequired(field string) bool {
	for _, f := range baseRequired {
		if f == field {
			return true
		}
	}
	for _, f := range s.required {
		if f == field {
			return true
		}
	}
	return false
}

// canonicalField resolves a column or key name through the alias table.
func canonicalField(name string) string {
	for _, a := range fieldAliases {
		if a.from == name {
			return a.to
		}
	}
	return name
}

func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

func applyAliases(rec map[string]any) {
	for _, a := range fieldAliases {
		v, ok := rec[a.from]
		if !ok {
			continue
		}
		delete(rec, a.from)
		if isMissing(rec[a.to]) {
			rec[a.to] = v
		}
	}
}

var (
	leadingInt   = regexp.MustCompile(`\d+`)
	leadingFloat = regexp.MustCompile(`\d+(\.\d+)?`)
)

// coerce converts v to the shape of col: "65W" → 65, "ATX, mATX" → a list.
func coerce(col sheetColumn, v any) (any, error) {
	if col.list {
		switch t := v.(type) {
		case string:
			out := []string{}
			for _, p := range strings.Split(t, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out, nil
		case []any:
			return t, nil
		}
		return []any{v}, nil
	}

	switch col.kind {
	case reflect.Int:
		switch t := v.(type) {
		case float64:
			return int64(math.Trunc(t)), nil
		case string:
			m := leadingInt.FindString(t)
			if m == "" {
				return nil, fmt.Errorf("cannot read %q as a whole number", t)
			}
			return strconv.Atoi(m)
		case bool:
			return nil, fmt.Errorf("cannot read %v as a whole number", t)
		}
	case reflect.Float64:
		switch t := v.(type) {
		case string:
			m := leadingFloat.FindString(t)
			if m == "" {
				return nil, fmt.Errorf("cannot read %q as a number", t)
			}
			return strconv.ParseFloat(m, 64)
		case bool:
			return nil, fmt.Errorf("cannot read %v as a number", t)
		}
	case reflect.Bool:
		switch t := v.(type) {
		case string:
			b, err := parseBool(strings.TrimSpace(t))
			return err == nil && b, nil
		case float64:
			return t != 0, nil
		}
	case reflect.String:
		switch t := v.(type) {
		case string:
			return t, nil
		case float64, bool:
			return fmt.Sprint(t), nil
		}
	}
	return v, nil
}

// mapRecord brings a raw record of kind k into the stored shape: aliases
// are resolved, values coerced, defaults filled and required fields
// checked. Unreadable optional fields are dropped.
func mapRecord(k entity.Kind, rec map[string]any) error {
	schema := recordSchemas[k]
	applyAliases(rec)

	cols := make(map[string]sheetColumn)
	for _, c := range sheetColumns(k) {
		cols[c.name] = c
	}
	for name, v := range rec {
		col, ok := cols[name]
		if !ok || v == nil {
			continue
		}
		cv, err := coerce(col, v)
		if err != nil {
			if schema.isRequired(name) {
				return fmt.Errorf("field %s: %w", name, err)
			}
			delete(rec, name)
			continue
		}
		rec[name] = cv
	}

	for field, def := range schema.defaults {
		if isMissing(rec[field]) {
			rec[field] = def
		}
	}

	var missing []string
	for _, group := range [][]string{baseRequired, schema.required} {
		for _, f := range group {
			if isMissing(rec[f]) {
				missing = append(missing, f)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// decodeRecord maps rec and decodes it as a component of kind k.
func decodeRecord(k entity.Kind, rec map[string]any) (entity.Component, error) {
	if err := mapRecord(k, rec); err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return entity.DecodeComponentAs(k, data)
}

// decodeImportRecord decodes one element of a JSON import, dispatching on
// its component_type.
func decodeImportRecord(raw json.RawMessage) (entity.Component, error) {
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode component: %w", err)
	}
	name, _ := rec["component_type"].(string)
	kind, err := entity.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return decodeRecord(kind, rec)
}
