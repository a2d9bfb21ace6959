package configio

// gameConfigSchema validates the map/loot configuration file against
// the wire contract described in spec §2, grounded on the fields the
// original's json_loader.cpp actually reads (and nothing else).
const gameConfigSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["maps", "lootGeneratorConfig"],
	"properties": {
		"defaultDogSpeed": {"type": "number"},
		"defaultBagCapacity": {"type": "integer"},
		"dogRetirementTime": {"type": "number"},
		"lootGeneratorConfig": {
			"type": "object",
			"required": ["period", "probability"],
			"properties": {
				"period": {"type": "number"},
				"probability": {"type": "number", "minimum": 0, "maximum": 1}
			}
		},
		"maps": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "name", "roads", "lootTypes"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string"},
					"dogSpeed": {"type": "number"},
					"bagCapacity": {"type": "integer"},
					"roads": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["x0", "y0"],
							"properties": {
								"x0": {"type": "integer"},
								"y0": {"type": "integer"},
								"x1": {"type": "integer"},
								"y1": {"type": "integer"}
							}
						}
					},
					"buildings": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["x", "y", "w", "h"],
							"properties": {
								"x": {"type": "integer"},
								"y": {"type": "integer"},
								"w": {"type": "integer"},
								"h": {"type": "integer"}
							}
						}
					},
					"offices": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "x", "y", "offsetX", "offsetY"],
							"properties": {
								"id": {"type": "string"},
								"x": {"type": "integer"},
								"y": {"type": "integer"},
								"offsetX": {"type": "integer"},
								"offsetY": {"type": "integer"}
							}
						}
					},
					"lootTypes": {
						"type": "array",
						"minItems": 1,
						"items": {"type": "object"}
					}
				}
			}
		}
	}
}`
