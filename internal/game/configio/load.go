// Package configio loads the map/loot configuration file described in
// spec §2 and builds the maps and loot catalog it describes (ready to
// add to a world.World), validating the raw document against a JSON
// Schema before trusting any of it.
package configio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dogwalk/server/internal/game/world"
)

const (
	defaultDogSpeedFallback    = 1.0
	defaultBagCapacityFallback = 3
	defaultRetirementSeconds   = 15.0
)

// DefaultBagCapacityFallback is the bag capacity a map gets when neither
// its own config nor the top-level defaultBagCapacity sets one. Exported
// so a deployment's tuning override can recognize "still at the
// built-in default" and replace it.
const DefaultBagCapacityFallback = defaultBagCapacityFallback

type rawConfig struct {
	DefaultDogSpeed     *float64    `json:"defaultDogSpeed"`
	DefaultBagCapacity  *int        `json:"defaultBagCapacity"`
	DogRetirementTime   *float64    `json:"dogRetirementTime"`
	LootGeneratorConfig rawLootGen  `json:"lootGeneratorConfig"`
	Maps                []rawMap    `json:"maps"`
}

type rawLootGen struct {
	Period      float64 `json:"period"`
	Probability float64 `json:"probability"`
}

type rawMap struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	DogSpeed    *float64             `json:"dogSpeed"`
	BagCapacity *int                 `json:"bagCapacity"`
	Roads       []rawRoad            `json:"roads"`
	Buildings   []rawBuilding        `json:"buildings"`
	Offices     []rawOffice          `json:"offices"`
	LootTypes   []map[string]any     `json:"lootTypes"`
}

type rawRoad struct {
	X0 int  `json:"x0"`
	Y0 int  `json:"y0"`
	X1 *int `json:"x1"`
	Y1 *int `json:"y1"`
}

type rawBuilding struct {
	X, Y, W, H int
}

type rawOffice struct {
	ID      string `json:"id"`
	X, Y    int
	OffsetX int `json:"offsetX"`
	OffsetY int `json:"offsetY"`
}

// Result bundles everything LoadFile produces: the maps and catalog
// ready to wire into a world.World, plus the configured (or defaulted)
// idle-retirement threshold.
type Result struct {
	Maps       []*world.Map
	Catalog    *world.Catalog
	Retirement time.Duration
}

// LoadFile reads, schema-validates, and parses the configuration file
// at path.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return load(data)
}

func load(data []byte) (*Result, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("config does not match schema: %w", err)
	}

	var cfg rawConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Maps) == 0 {
		return nil, fmt.Errorf("empty maps array in config")
	}

	defaultDogSpeed := defaultDogSpeedFallback
	if cfg.DefaultDogSpeed != nil {
		defaultDogSpeed = *cfg.DefaultDogSpeed
	}
	defaultBagCapacity := defaultBagCapacityFallback
	if cfg.DefaultBagCapacity != nil {
		defaultBagCapacity = *cfg.DefaultBagCapacity
	}

	retirementSeconds := defaultRetirementSeconds
	if cfg.DogRetirementTime != nil {
		retirementSeconds = *cfg.DogRetirementTime
	}

	catalog := world.NewCatalog(
		time.Duration(cfg.LootGeneratorConfig.Period*float64(time.Second)),
		cfg.LootGeneratorConfig.Probability,
	)

	maps := make([]*world.Map, 0, len(cfg.Maps))
	for _, rm := range cfg.Maps {
		m, err := buildMap(rm, defaultDogSpeed, defaultBagCapacity)
		if err != nil {
			return nil, fmt.Errorf("map %q: %w", rm.ID, err)
		}
		maps = append(maps, m)

		types := make([]world.LootType, len(rm.LootTypes))
		for i, lt := range rm.LootTypes {
			types[i] = world.LootType(lt)
		}
		catalog.SetLootTypes(rm.ID, types)
	}

	return &Result{
		Maps:       maps,
		Catalog:    catalog,
		Retirement: time.Duration(retirementSeconds * float64(time.Second)),
	}, nil
}

func buildMap(rm rawMap, defaultDogSpeed float64, defaultBagCapacity int) (*world.Map, error) {
	if len(rm.Roads) == 0 {
		return nil, fmt.Errorf("empty roads array")
	}
	if len(rm.LootTypes) == 0 {
		return nil, fmt.Errorf("empty lootTypes array")
	}

	dogSpeed := defaultDogSpeed
	if rm.DogSpeed != nil {
		dogSpeed = *rm.DogSpeed
	}
	bagCapacity := defaultBagCapacity
	if rm.BagCapacity != nil {
		bagCapacity = *rm.BagCapacity
	}

	m := world.NewMap(rm.ID, rm.Name, dogSpeed, bagCapacity)

	for _, r := range rm.Roads {
		road, err := toRoad(r)
		if err != nil {
			return nil, err
		}
		m.AddRoad(road)
	}
	for _, b := range rm.Buildings {
		m.AddBuilding(toBuilding(b))
	}
	for _, o := range rm.Offices {
		if err := m.AddOffice(toOffice(o)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("game_config.schema.json", strings.NewReader(gameConfigSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile("game_config.schema.json")
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config as JSON: %w", err)
	}
	return schema.Validate(doc)
}
