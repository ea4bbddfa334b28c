package models

import (
	"bytes"
	"encoding/json"
	"maps"

	"gopkg.in/yaml.v3"
)

// ZeroKeys ключи числовых полей, явно заданные нулём во входном документе.
// Там, где нулевое значение означает "по умолчанию", по ним явный 0 отличается
// от отсутствующего поля.
type ZeroKeys map[string]bool

// ZeroKeysJSON returns the keys of a JSON object whose value is the number 0.
func ZeroKeysJSON(data []byte) (ZeroKeys, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	var out ZeroKeys
	for k, raw := range m {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var f float64
		if json.Unmarshal(raw, &f) == nil && f == 0 {
			out = out.with(k)
		}
	}
	return out, nil
}

// ZeroKeysYAML returns the keys of a YAML mapping whose value is an int or float 0.
func ZeroKeysYAML(n *yaml.Node) ZeroKeys {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	var out ZeroKeys
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := n.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		if v.Kind != yaml.ScalarNode {
			continue
		}
		if tag := v.ShortTag(); tag != "!!int" && tag != "!!float" {
			continue
		}
		var f float64
		if v.Decode(&f) == nil && f == 0 {
			out = out.with(n.Content[i].Value)
		}
	}
	return out
}

func (z ZeroKeys) with(key string) ZeroKeys {
	if z == nil {
		z = ZeroKeys{}
	}
	z[key] = true
	return z
}

func (z ZeroKeys) Has(key string) bool { return z[key] }

// Or returns def when v is zero and key was not given explicitly.
func (z ZeroKeys) Or(key string, v, def float64) float64 {
	if v == 0 && !z[key] {
		return def
	}
	return v
}

func (z ZeroKeys) Clone() ZeroKeys { return maps.Clone(z) }

// TrimJSON убирает из объекта нулевые числа, не заданные явно, чтобы
// повторное чтение документа снова дало значения по умолчанию.
func (z ZeroKeys) TrimJSON(data []byte) ([]byte, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		if f, ok := v.(float64); ok && f == 0 && !z[k] {
			delete(m, k)
		}
	}
	return json.Marshal(m)
}
