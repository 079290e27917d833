package models

import (
	"encoding/json"
	"fmt"
)

// Tag is a free-form label on a post. The API is inconsistent about
// its wire shape: some endpoints emit a bare string, others an object
// {id?, name}. The union is resolved here at the JSON boundary so the
// rest of the code only ever sees a Tag.
type Tag struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*t = Tag{Name: name}
		return nil
	}

	var obj struct {
		ID   any    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tag: expected string or object: %w", err)
	}
	*t = Tag{Name: obj.Name}
	// id arrives as a number or a numeric string depending on the
	// endpoint; anything unparsable is dropped, only name matters.
	switch id := obj.ID.(type) {
	case float64:
		n := int(id)
		t.ID = &n
	case string:
		var n int
		if _, err := fmt.Sscanf(id, "%d", &n); err == nil {
			t.ID = &n
		}
	}
	return nil
}

// MarshalJSON always emits the structured form. The create/update
// endpoints accept it regardless of what they later echo back.
func (t Tag) MarshalJSON() ([]byte, error) {
	type wire Tag
	return json.Marshal(wire(t))
}
