// Package docs derives the machine-readable API description from the entity
// schema registry. The document is built once at startup and served verbatim.
package docs

import (
	"fmt"

	"foliocms/schema"
)

// Build assembles an OpenAPI 3.0 document covering the five resource
// operations of every registered entity kind.
func Build(entities []schema.Entity) map[string]any {
	paths := map[string]any{}
	schemas := map[string]any{}

	for _, e := range entities {
		schemas[e.Name] = entitySchema(e)
		collection, item := entityPaths(e)
		paths["/"+e.Path] = collection
		paths[fmt.Sprintf("/%s/{id}", e.Path)] = item
	}

	return map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       "foliocms API",
			"version":     "1.0.0",
			"description": "CRUD API for the foliocms content platform",
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": schemas,
			"securitySchemes": map[string]any{
				"ApiKeyAuth": map[string]any{
					"type": "apiKey",
					"in":   "header",
					"name": "X-API-Key",
				},
			},
		},
		"security": []any{
			map[string]any{"ApiKeyAuth": []any{}},
		},
	}
}

func entitySchema(e schema.Entity) map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, f := range e.Fields {
		if f.WriteOnly {
			// accepted on input only; not part of the serialized entity
			continue
		}
		prop := map[string]any{"type": f.Type}
		if f.Type == "array" {
			prop["items"] = map[string]any{"type": "string"}
		}
		if f.Immutable {
			prop["readOnly"] = true
		}
		properties[f.JSON] = prop
		if f.Required {
			required = append(required, f.JSON)
		}
	}

	for _, r := range e.Relations {
		ref := map[string]any{"$ref": "#/components/schemas/" + r.Target}
		if r.Many {
			properties[jsonRelationName(r)] = map[string]any{
				"type":  "array",
				"items": ref,
			}
		} else {
			properties[jsonRelationName(r)] = ref
		}
	}

	result := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		result["required"] = required
	}
	return result
}

func jsonRelationName(r schema.Relation) string {
	switch {
	case r.Many && r.Target == "category":
		return "categories"
	case r.Many:
		return r.Target + "s"
	default:
		return r.Target
	}
}

func entityPaths(e schema.Entity) (collection, item map[string]any) {
	ref := map[string]any{"$ref": "#/components/schemas/" + e.Name}
	errShape := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error": map[string]any{"type": "string"},
		},
	}
	jsonBody := func(s map[string]any) map[string]any {
		return map[string]any{
			"content": map[string]any{
				"application/json": map[string]any{"schema": s},
			},
		}
	}
	idParam := []any{
		map[string]any{
			"name":     "id",
			"in":       "path",
			"required": true,
			"schema":   map[string]any{"type": "integer"},
		},
	}

	collection = map[string]any{
		"get": map[string]any{
			"summary": fmt.Sprintf("List all %s", e.Path),
			"tags":    []any{e.Path},
			"responses": map[string]any{
				"200": merge(jsonBody(map[string]any{"type": "array", "items": ref}),
					map[string]any{"description": fmt.Sprintf("List of all %s", e.Path)}),
				"400": merge(jsonBody(errShape), map[string]any{"description": "Invalid request"}),
			},
		},
		"post": map[string]any{
			"summary":     fmt.Sprintf("Create a new %s", e.Name),
			"tags":        []any{e.Path},
			"requestBody": merge(jsonBody(ref), map[string]any{"required": true}),
			"responses": map[string]any{
				"200": merge(jsonBody(ref), map[string]any{"description": fmt.Sprintf("%s created", e.Name)}),
				"400": merge(jsonBody(errShape), map[string]any{"description": "Invalid input"}),
			},
		},
	}

	item = map[string]any{
		"get": map[string]any{
			"summary":    fmt.Sprintf("Get a %s by ID", e.Name),
			"tags":       []any{e.Path},
			"parameters": idParam,
			"responses": map[string]any{
				"200": merge(jsonBody(ref), map[string]any{"description": fmt.Sprintf("%s data", e.Name)}),
				"404": merge(jsonBody(errShape), map[string]any{"description": fmt.Sprintf("%s not found", e.Name)}),
			},
		},
		"put": map[string]any{
			"summary":     fmt.Sprintf("Update a %s by ID", e.Name),
			"tags":        []any{e.Path},
			"parameters":  idParam,
			"requestBody": merge(jsonBody(ref), map[string]any{"required": true}),
			"responses": map[string]any{
				"200": merge(jsonBody(ref), map[string]any{"description": fmt.Sprintf("%s updated", e.Name)}),
				"400": merge(jsonBody(errShape), map[string]any{"description": "Invalid input"}),
				"404": merge(jsonBody(errShape), map[string]any{"description": fmt.Sprintf("%s not found", e.Name)}),
			},
		},
		"delete": map[string]any{
			"summary":    fmt.Sprintf("Delete a %s by ID", e.Name),
			"tags":       []any{e.Path},
			"parameters": idParam,
			"responses": map[string]any{
				"204": map[string]any{"description": fmt.Sprintf("%s deleted", e.Name)},
				"404": merge(jsonBody(errShape), map[string]any{"description": fmt.Sprintf("%s not found", e.Name)}),
			},
		},
	}
	return collection, item
}

func merge(dst map[string]any, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
