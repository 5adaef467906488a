package calchttp

import (
	"encoding/json"
	"fmt"
	"strings"

	"bmicalc/internal/bmi"
	"bmicalc/internal/pkg/text"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

const calculateSchema = `{
  "type": "object",
  "required": ["age", "gender", "weight_kg", "height_m"],
  "additionalProperties": false,
  "properties": {
    "age": {"type": "integer"},
    "gender": {"type": "string", "minLength": 1},
    "weight_kg": {"type": "number"},
    "height_m": {"type": "number"}
  }
}`

const maxSchemaErrLen = 240

var calculateSchemaCompiled = mustCompileSchema("calculate.json", calculateSchema)

func mustCompileSchema(name, raw string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// parseCalculatePayload 校验 JSON 请求体并提取一次测量输入（未截断）。
func parseCalculatePayload(raw []byte) (bmi.Measurement, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return bmi.Measurement{}, fmt.Errorf("request body is empty")
	}
	if !gjson.ValidBytes(raw) {
		return bmi.Measurement{}, fmt.Errorf("request body is not valid json")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return bmi.Measurement{}, fmt.Errorf("decode request body: %w", err)
	}
	if err := calculateSchemaCompiled.Validate(doc); err != nil {
		return bmi.Measurement{}, fmt.Errorf("request body does not match schema: %s", text.Truncate(err.Error(), maxSchemaErrLen))
	}
	parsed := gjson.ParseBytes(raw)
	gender, err := bmi.ParseGender(parsed.Get("gender").String())
	if err != nil {
		return bmi.Measurement{}, err
	}
	age, err := wholeAge(parsed.Get("age").Float())
	if err != nil {
		return bmi.Measurement{}, err
	}
	return bmi.Measurement{
		Age:      age,
		Gender:   gender,
		WeightKg: parsed.Get("weight_kg").Float(),
		HeightM:  parsed.Get("height_m").Float(),
	}, nil
}
