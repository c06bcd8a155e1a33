package save

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// rollPair encodes a roll log entry as [index, name].
type rollPair struct {
	Index int
	Aura  string
}

func (p rollPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Index, p.Aura})
}

func (p *rollPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := decodePair(data, &raw); err != nil {
		return fmt.Errorf("roll_log entry: %w", err)
	}
	idx, err := decodeIndex(raw[0])
	if err != nil {
		return fmt.Errorf("roll_log entry: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Aura); err != nil {
		return fmt.Errorf("roll_log entry: %w", err)
	}
	p.Index = idx
	return nil
}

// visitPair encodes a visit log entry as [timestamp, biome].
type visitPair struct {
	At    float64
	Biome string
}

func (p visitPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.At, p.Biome})
}

func (p *visitPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := decodePair(data, &raw); err != nil {
		return fmt.Errorf("visit_log entry: %w", err)
	}
	if err := json.Unmarshal(raw[0], &p.At); err != nil {
		return fmt.Errorf("visit_log entry: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Biome); err != nil {
		return fmt.Errorf("visit_log entry: %w", err)
	}
	return nil
}

// shopPair encodes a shop offer as [item, required aura or null].
type shopPair struct {
	Item         string
	RequiredAura string
}

func (p shopPair) MarshalJSON() ([]byte, error) {
	var req any
	if p.RequiredAura != "" {
		req = p.RequiredAura
	}
	return json.Marshal([2]any{p.Item, req})
}

func (p *shopPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := decodePair(data, &raw); err != nil {
		return fmt.Errorf("daily_shop entry: %w", err)
	}
	if err := json.Unmarshal(raw[0], &p.Item); err != nil {
		return fmt.Errorf("daily_shop entry: %w", err)
	}
	var req *string
	if err := json.Unmarshal(raw[1], &req); err != nil {
		return fmt.Errorf("daily_shop entry: %w", err)
	}
	p.RequiredAura = ""
	if req != nil {
		p.RequiredAura = *req
	}
	return nil
}

// decodePair requires a JSON array of exactly two elements.
func decodePair(data []byte, raw *[2]json.RawMessage) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items) != 2 {
		return fmt.Errorf("want 2 elements, got %d", len(items))
	}
	raw[0], raw[1] = items[0], items[1]
	return nil
}

// decodeIndex accepts a roll index written as a number or a numeric string.
func decodeIndex(data json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("roll index: %w", err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("roll index: %w", err)
	}
	return n, nil
}
