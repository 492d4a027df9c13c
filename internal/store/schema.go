package store

// JSON Schemas for the persisted record payloads. Records come back from
// disk as untrusted data — a foreign tool or an older build may have
// written them — so payloads are schema-checked before unmarshal.

var bankRecordSchema = map[string]any{
	"type":     "object",
	"required": []any{"meta", "questions"},
	"properties": map[string]any{
		"meta": map[string]any{"type": "object"},
		"scenario": map[string]any{
			"type":     "object",
			"required": []any{"text"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"text":  map[string]any{"type": "string"},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "axis", "question", "choices", "answer"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string"},
					"module":   map[string]any{"type": "string"},
					"axis":     map[string]any{"type": "string"},
					"question": map[string]any{"type": "string"},
					"choices": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "text"},
							"properties": map[string]any{
								"id":   map[string]any{"type": "string"},
								"text": map[string]any{"type": "string"},
							},
						},
					},
					"answer": map[string]any{
						"type":     "object",
						"required": []any{"correctChoiceId"},
						"properties": map[string]any{
							"correctChoiceId": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

var progressRecordSchema = map[string]any{
	"type":     "object",
	"required": []any{"history"},
	"properties": map[string]any{
		"history": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"finishedAt", "mode", "axisKey", "correct", "total"},
				"properties": map[string]any{
					"finishedAt": map[string]any{"type": "number"},
					"mode":       map[string]any{"type": "string"},
					"axisKey":    map[string]any{"type": "string"},
					"correct":    map[string]any{"type": "number"},
					"total":      map[string]any{"type": "number"},
				},
			},
		},
		"last": map[string]any{
			"type":     []any{"object", "null"},
			"required": []any{"startedAt", "finishedAt", "mode", "axisKey", "order", "answers", "correct", "total"},
			"properties": map[string]any{
				"startedAt":  map[string]any{"type": "number"},
				"finishedAt": map[string]any{"type": "number"},
				"mode":       map[string]any{"type": "string"},
				"axisKey":    map[string]any{"type": "string"},
				"timedOut":   map[string]any{"type": "boolean"},
				"order": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"answers": map[string]any{"type": "object"},
				"flags":   map[string]any{"type": "object"},
				"correct": map[string]any{"type": "number"},
				"total":   map[string]any{"type": "number"},
			},
		},
	},
}
