package model

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CityFile is the on-disk YAML document holding a collection of cities.
// NextID is only meaningful for the local server's data file and is omitted
// when zero.
type CityFile struct {
	NextID CityID `yaml:"next_id,omitempty"`
	Cities []City `yaml:"cities,omitempty"`
}

// LoadCityFile reads a city file from path.
func LoadCityFile(path string) (*CityFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read city file %s: %w", path, err)
	}

	cf, err := UnmarshalCityFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse city file %s: %w", path, err)
	}
	return cf, nil
}

// UnmarshalCityFile parses a city file document.
func UnmarshalCityFile(data []byte) (*CityFile, error) {
	var cf CityFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// SaveCityFile writes a city file to path.
func SaveCityFile(path string, cf *CityFile) error {
	data, err := MarshalCityFile(cf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write city file %s: %w", path, err)
	}
	return nil
}

// MarshalCityFile encodes a city file. Cities keep their order, empty
// optional fields are omitted and multi-line notes use block scalar style.
func MarshalCityFile(cf *CityFile) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	if cf.NextID != NoCity {
		addIntField(doc, "next_id", int64(cf.NextID))
	}

	if len(cf.Cities) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range cf.Cities {
			seq.Content = append(seq.Content, buildCityNode(&cf.Cities[i]))
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "cities"},
			seq,
		)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cities: %w", err)
	}
	return data, nil
}

// buildCityNode creates a yaml.Node for a City.
func buildCityNode(c *City) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if c.ID != NoCity {
		addIntField(node, "id", int64(c.ID))
	}
	addStringField(node, "city_name", c.CityName)
	addStringField(node, "emoji", c.Emoji)
	if c.Country != "" {
		addStringField(node, "country", c.Country)
	}
	addStringField(node, "date", c.Date.String())

	pos := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	addFloatField(pos, "lat", c.Position.Lat)
	addFloatField(pos, "lng", c.Position.Lng)
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "position"},
		pos,
	)

	if c.Notes != "" {
		addMultilineStringField(node, "notes", c.Notes)
	}
	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int64) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(value, 10), Tag: "!!int"},
	)
}

func addFloatField(node *yaml.Node, key string, value float64) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: formatCoord(value), Tag: "!!float"},
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	// Literal block style for multi-line strings
	style := yaml.LiteralStyle
	if !strings.Contains(value, "\n") {
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
