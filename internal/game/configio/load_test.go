package configio

import (
	"testing"
)

const sampleConfig = `{
	"defaultDogSpeed": 3.0,
	"defaultBagCapacity": 3,
	"dogRetirementTime": 60,
	"lootGeneratorConfig": {"period": 5, "probability": 0.5},
	"maps": [
		{
			"id": "map1",
			"name": "Town",
			"roads": [
				{"x0": 0, "y0": 0, "x1": 40},
				{"x0": 40, "y0": 0, "y1": 30}
			],
			"buildings": [
				{"x": 5, "y": 5, "w": 10, "h": 10}
			],
			"offices": [
				{"id": "o1", "x": 40, "y": 30, "offsetX": 5, "offsetY": 0}
			],
			"lootTypes": [
				{"name": "key", "value": 10},
				{"name": "wallet", "value": 20}
			]
		}
	]
}`

func TestLoad_BuildsMapsAndCatalog(t *testing.T) {
	result, err := load([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Maps) != 1 {
		t.Fatalf("expected 1 map, got %d", len(result.Maps))
	}
	m := result.Maps[0]
	if m.DogSpeed != 3.0 {
		t.Fatalf("expected default dog speed 3.0, got %v", m.DogSpeed)
	}
	if len(m.Roads) != 2 {
		t.Fatalf("expected 2 roads, got %d", len(m.Roads))
	}
	if len(m.Offices) != 1 {
		t.Fatalf("expected 1 office, got %d", len(m.Offices))
	}
	types := result.Catalog.LootTypes("map1")
	if len(types) != 2 {
		t.Fatalf("expected 2 loot types, got %d", len(types))
	}
	if types[1].Value() != 20 {
		t.Fatalf("expected second loot type value 20, got %d", types[1].Value())
	}
	if result.Retirement.Seconds() != 60 {
		t.Fatalf("expected retirement 60s, got %v", result.Retirement)
	}
}

func TestLoad_RejectsEmptyMaps(t *testing.T) {
	_, err := load([]byte(`{"lootGeneratorConfig":{"period":5,"probability":0.5},"maps":[]}`))
	if err == nil {
		t.Fatal("expected error for empty maps array")
	}
}

func TestLoad_RejectsMissingLootGeneratorConfig(t *testing.T) {
	_, err := load([]byte(`{"maps":[{"id":"m","name":"m","roads":[{"x0":0,"y0":0,"x1":1}],"lootTypes":[{}]}]}`))
	if err == nil {
		t.Fatal("expected schema validation error for missing lootGeneratorConfig")
	}
}

func TestLoad_DefaultsBagCapacityWhenOmitted(t *testing.T) {
	result, err := load([]byte(`{
		"lootGeneratorConfig": {"period": 5, "probability": 0.5},
		"maps": [{
			"id": "m", "name": "m",
			"roads": [{"x0": 0, "y0": 0, "x1": 10}],
			"lootTypes": [{"value": 1}]
		}]
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.Maps[0].BagCapacity != defaultBagCapacityFallback {
		t.Fatalf("expected default bag capacity %d, got %d", defaultBagCapacityFallback, result.Maps[0].BagCapacity)
	}
}
