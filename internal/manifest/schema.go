package manifest

import "github.com/santhosh-tekuri/jsonschema/v5"

// shapeSchema only requires prediction_fn.args.X. Every other field is
// optional and may have any type.
const shapeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "scivision manifest",
  "type": "object",
  "required": ["prediction_fn"],
  "properties": {
    "prediction_fn": {
      "type": "object",
      "required": ["args"],
      "properties": {
        "args": {
          "type": "object",
          "required": ["X"]
        }
      }
    }
  }
}`

var manifestSchema = jsonschema.MustCompileString("scivision-manifest.schema.json", shapeSchema)
