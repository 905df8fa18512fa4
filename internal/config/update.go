package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileHeader = "# pidash configuration\n# Generated by 'pidash init'. See 'pidash fleet' for the parsed view.\n\n"

// Write serializes cfg to path as YAML.
func Write(path string, cfg *Config) error {
	var buf strings.Builder
	buf.WriteString(fileHeader)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AddSensor appends a sensor to fleet.<host>.devices.<device>.sensors in
// the config file. It preserves the existing YAML structure and comments.
// Adding a sensor id that already exists under the device does nothing.
func AddSensor(configPath, hostID, deviceID string, s Sensor) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	fleetNode := findMapValue(docNode, "fleet")
	if fleetNode == nil {
		return fmt.Errorf("'fleet' key not found in config")
	}

	hostNode := findSeqItem(fleetNode, hostID)
	if hostNode == nil {
		return fmt.Errorf("host '%s' not found in config", hostID)
	}

	devicesNode := findMapValue(hostNode, "devices")
	deviceNode := findSeqItem(devicesNode, deviceID)
	if deviceNode == nil {
		return fmt.Errorf("device '%s' not found under host '%s'", deviceID, hostID)
	}

	sensorsNode := findMapValue(deviceNode, "sensors")
	if sensorsNode == nil {
		sensorsNode = &yaml.Node{
			Kind:    yaml.SequenceNode,
			Tag:     "!!seq",
			Content: []*yaml.Node{},
		}
		deviceNode.Content = append(deviceNode.Content, scalar("sensors"), sensorsNode)
	}

	if findSeqItem(sensorsNode, s.ID) != nil {
		return nil
	}

	sensorNode := &yaml.Node{
		Kind:  yaml.MappingNode,
		Tag:   "!!map",
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			scalar("id"), scalar(s.ID),
			scalar("type"), scalar(s.Type),
			scalar("unit"), scalar(s.Unit),
			scalar("value"), {Kind: yaml.ScalarNode, Value: strconv.FormatFloat(s.Value, 'f', -1, 64)},
		},
	}
	sensorsNode.Content = append(sensorsNode.Content, sensorNode)

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// findSeqItem finds the mapping in a sequence node whose id equals id.
func findSeqItem(node *yaml.Node, id string) *yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	for _, item := range node.Content {
		if v := findMapValue(item, "id"); v != nil && v.Value == id {
			return item
		}
	}
	return nil
}
