package levels

import "gopkg.in/yaml.v3"

func unmarshalString(s string, v any) error {
	return yaml.Unmarshal([]byte(s), v)
}

func marshalString(v any) (string, error) {
	out, err := yaml.Marshal(v)
	return string(out), err
}
