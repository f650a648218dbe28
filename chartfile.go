package plotly

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-plotly/internal/yamlutil"
)

// CodeKey marks a code fragment in chart files: a mapping whose only key is
// CodeKey holds script text, e.g. {$js: "function (v) { return v * 2; }"}.
const CodeKey = "$js"

// ParseChart reads a chart from a YAML or JSON document.
//
//	id: sales
//	sourceType: csv
//	sourceFile: /data/sales.csv
//	formatters:
//	  column: "function (rows, name) { return rows.map(function (r) { return r[name]; }); }"
//	traces:
//	  - type: bar
//	    x: {$js: "column(data, 'month')"}
//	    y: {$js: "column(data, 'total')"}
//	layout:
//	  title: Sales
//	options:
//	  class: [chart, wide]
//	loadingAnimation: false
//
// Key order is preserved. Unknown keys and malformed values return
// ErrChartParse; chart semantics are checked later by Chart.Validate.
func ParseChart(data []byte) (Chart, error) {
	root, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return Chart{}, fmt.Errorf("%w: %s", ErrChartParse, yamlutil.FormatError(err))
	}

	var chart Chart
	for _, item := range root {
		key, ok := item.Key.(string)
		if !ok {
			return Chart{}, fmt.Errorf("%w: key %v is not a string", ErrChartParse, item.Key)
		}
		if err := chart.setField(key, item.Value); err != nil {
			return Chart{}, fmt.Errorf("%w: %s: %v", ErrChartParse, key, err)
		}
	}
	return chart, nil
}

func (c *Chart) setField(key string, value any) error {
	var err error
	switch key {
	case "id":
		c.ID, err = asString(value)
	case "sourceType":
		var s string
		s, err = asString(value)
		c.SourceType = SourceType(s)
	case "sourceFile":
		c.SourceFile, err = asString(value)
	case "traces":
		c.Traces, err = asTraces(value)
	case "layout":
		c.Layout, err = asMapping(value, "$")
	case "chartOptions":
		c.ChartOptions, err = asMapping(value, "$")
	case "options":
		c.Options, err = asMapping(value, "$")
	case "loadingAnimation":
		enabled, ok := value.(bool)
		if !ok {
			return fmt.Errorf("want a boolean, got %T", value)
		}
		c.HideLoading = !enabled
	case "formatters":
		c.Formatters, err = asFormatters(value)
	default:
		return errors.New("unknown key")
	}
	return err
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("want a string, got %T", value)
}

func asTraces(value any) ([]M, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("want a sequence, got %T", value)
	}
	traces := make([]M, len(items))
	for i, item := range items {
		m, err := asMapping(item, fmt.Sprintf("$[%d]", i))
		if err != nil {
			return nil, err
		}
		traces[i] = m
	}
	return traces, nil
}

func asMapping(value any, path string) (M, error) {
	if value == nil {
		return nil, nil
	}
	ms, ok := value.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%s: want a mapping, got %T", path, value)
	}
	converted, err := convertNode(ms, path)
	if err != nil {
		return nil, err
	}
	m, ok := converted.(M)
	if !ok {
		return nil, fmt.Errorf("%s: want a mapping, got a %s code fragment", path, CodeKey)
	}
	return m, nil
}

func asFormatters(value any) ([]Formatter, error) {
	if value == nil {
		return nil, nil
	}
	ms, ok := value.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("want a mapping of name to code, got %T", value)
	}
	formatters := make([]Formatter, len(ms))
	for i, item := range ms {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("formatter name %v is not a string", item.Key)
		}
		code, ok := item.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%s: want code as a string, got %T", name, item.Value)
		}
		formatters[i] = Formatter{Name: name, Code: Code(code)}
	}
	return formatters, nil
}

// convertNode turns decoded YAML into chart values: mappings become M,
// {$js: "..."} becomes Code, sequences are converted element-wise.
func convertNode(node any, path string) (any, error) {
	switch v := node.(type) {
	case yaml.MapSlice:
		if len(v) == 1 && v[0].Key == CodeKey {
			code, ok := v[0].Value.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s wants code as a string, got %T", path, CodeKey, v[0].Value)
			}
			return Code(code), nil
		}
		m := make(M, len(v))
		for i, item := range v {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			val, err := convertNode(item.Value, path+"."+key)
			if err != nil {
				return nil, err
			}
			m[i] = KV{Key: key, Value: val}
		}
		return m, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			val, err := convertNode(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	}
	return node, nil
}
