package plan

// schemaJSON is the JSON schema plan documents are validated against.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["suite", "classes"],
  "additionalProperties": false,
  "properties": {
    "suite": {"type": "string", "minLength": 1},
    "variables": {"$ref": "#/definitions/stringMap"},
    "environments": {
      "type": "object",
      "additionalProperties": {"$ref": "#/definitions/stringMap"}
    },
    "classes": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/definitions/class"}
    }
  },
  "definitions": {
    "stringMap": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number", "boolean"]}
    },
    "groups": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "duration": {
      "type": "string",
      "pattern": "^([0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h))+$"
    },
    "class": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "hooks": {"type": "array", "items": {"$ref": "#/definitions/hook"}},
        "tests": {"type": "array", "items": {"$ref": "#/definitions/test"}}
      }
    },
    "hook": {
      "type": "object",
      "required": ["name", "kinds"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "kinds": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "string",
            "enum": [
              "before-suite", "after-suite", "before-group", "after-group",
              "before-class", "after-class", "before-method", "after-method",
              "precondition", "firefox-only"
            ]
          }
        },
        "groups": {"$ref": "#/definitions/groups"},
        "retry": {"type": "integer", "minimum": 0},
        "run": {"type": "string"},
        "wait_for": {"$ref": "#/definitions/waitFor"}
      },
      "oneOf": [
        {"required": ["run"], "not": {"required": ["wait_for"]}},
        {"required": ["wait_for"], "not": {"required": ["run"]}}
      ]
    },
    "waitFor": {
      "type": "object",
      "required": ["url"],
      "additionalProperties": false,
      "properties": {
        "url": {"type": "string", "minLength": 1},
        "status": {"type": "integer", "minimum": 100, "maximum": 599},
        "timeout": {"$ref": "#/definitions/duration"},
        "interval": {"$ref": "#/definitions/duration"}
      }
    },
    "test": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "groups": {"$ref": "#/definitions/groups"},
        "run": {"type": "string"}
      }
    }
  }
}`
