package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownFieldType is returned when decoding properties for a type that is
// not part of the catalog.
var ErrUnknownFieldType = errors.New("model: unknown field type")

type blockJSON struct {
	ID          string          `json:"id"`
	Type        FieldType       `json:"type"`
	Name        string          `json:"name"`
	Label       string          `json:"label,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Properties  json.RawMessage `json:"properties,omitempty"`
	XMLTemplate string          `json:"xmlTemplate,omitempty"`
	TabID       string          `json:"tabId"`
}

// MarshalJSON writes the block in the project-file shape. Custom blocks also
// carry their template at the top level, where the browser designer reads it.
func (b Block) MarshalJSON() ([]byte, error) {
	out := blockJSON{
		ID:    b.ID,
		Type:  b.Type,
		Name:  b.Name,
		Label: b.Label,
		Icon:  b.Icon,
		TabID: b.TabID,
	}
	if b.Properties != nil {
		raw, err := json.Marshal(b.Properties)
		if err != nil {
			return nil, fmt.Errorf("model: marshal properties for block %q: %w", b.Name, err)
		}
		out.Properties = raw
	}
	if custom, ok := b.Properties.(CustomProperties); ok {
		out.XMLTemplate = custom.XMLTemplate
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a block without ever failing on the properties
// payload: undecodable payloads become RawProperties so the rest of the
// project still loads.
func (b *Block) UnmarshalJSON(data []byte) error {
	var in blockJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*b = Block{
		ID:    in.ID,
		Type:  in.Type,
		Name:  in.Name,
		Label: in.Label,
		Icon:  in.Icon,
		TabID: in.TabID,
	}

	props, err := DecodeProperties(in.Type, in.Properties)
	if err != nil {
		b.Properties = RawProperties{Kind: in.Type, Raw: cloneRaw(in.Properties), Err: err.Error()}
		return nil
	}
	if custom, ok := props.(CustomProperties); ok && custom.XMLTemplate == "" && in.XMLTemplate != "" {
		custom.XMLTemplate = in.XMLTemplate
		props = custom
	}
	b.Properties = props
	return nil
}

// DecodeProperties decodes a properties payload into the variant for t.
// Selects and multifields must declare their option and nested-component
// lists; every other key is optional.
func DecodeProperties(t FieldType, raw json.RawMessage) (Properties, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if t == FieldTypeCustom {
			return CustomProperties{}, nil
		}
		if !t.Known() {
			return nil, fmt.Errorf("%w %q", ErrUnknownFieldType, t)
		}
		return nil, fmt.Errorf("model: %s properties missing", t)
	}

	switch t {
	case FieldTypeTextField:
		return decodeInto[TextFieldProperties](raw)
	case FieldTypeTextArea:
		return decodeInto[TextAreaProperties](raw)
	case FieldTypeSelect:
		if err := requireKeys(raw, "options"); err != nil {
			return nil, fmt.Errorf("model: select %w", err)
		}
		return decodeInto[SelectProperties](raw)
	case FieldTypeCheckbox:
		return decodeInto[CheckboxProperties](raw)
	case FieldTypeHeading:
		return decodeInto[HeadingProperties](raw)
	case FieldTypeRichText:
		return decodeInto[RichTextProperties](raw)
	case FieldTypePathField:
		return decodeInto[PathFieldProperties](raw)
	case FieldTypeFileUpload:
		return decodeInto[FileUploadProperties](raw)
	case FieldTypeMultiField:
		if err := requireKeys(raw, "nestedComponents"); err != nil {
			return nil, fmt.Errorf("model: multifield %w", err)
		}
		return decodeInto[MultiFieldProperties](raw)
	case FieldTypeCustom:
		return decodeInto[CustomProperties](raw)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFieldType, t)
	}
}

// MergeProperties applies a JSON merge patch (RFC 7386 top-level semantics:
// null removes a key) to p and decodes the result back into p's variant.
func MergeProperties(p Properties, patch json.RawMessage) (Properties, error) {
	if p == nil {
		return nil, errors.New("model: properties are required")
	}

	var base json.RawMessage
	if raw, ok := p.(RawProperties); ok {
		base = raw.Raw
	} else {
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("model: marshal properties: %w", err)
		}
		base = encoded
	}

	current := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(base)) > 0 {
		if err := json.Unmarshal(base, &current); err != nil {
			return nil, fmt.Errorf("model: properties are not an object: %w", err)
		}
	}

	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil {
		return nil, fmt.Errorf("model: patch must be a JSON object: %w", err)
	}
	for key, value := range changes {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			delete(current, key)
			continue
		}
		current[key] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("model: marshal merged properties: %w", err)
	}
	return DecodeProperties(p.FieldType(), merged)
}

func decodeInto[T Properties](raw json.RawMessage) (Properties, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("model: decode %s properties: %w", out.FieldType(), err)
	}
	return out, nil
}

func requireKeys(raw json.RawMessage, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("properties are not an object: %w", err)
	}
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("property %q missing", key)
		}
	}
	return nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
