package validation

const createSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "properties": {
    "title":       {"type": "string", "minLength": 1, "maxLength": 256, "pattern": "\\S"},
    "description": {"type": ["string", "null"]},
    "dueDate":     {"type": ["string", "null"]}
  }
}`

const updateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "title", "isDone"],
  "properties": {
    "id":           {"type": "string", "format": "uuid"},
    "title":        {"type": "string", "minLength": 1, "maxLength": 256, "pattern": "\\S"},
    "description":  {"type": ["string", "null"]},
    "dueDate":      {"type": ["string", "null"]},
    "isDone":       {"type": "boolean"},
    "creationDate": {"type": ["string", "null"]}
  }
}`
