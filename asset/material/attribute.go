package material

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/types"
)

// AttributeKind selects the active member of an Attribute.
type AttributeKind int

const (
	KindValue AttributeKind = iota
	KindRGB
	KindMap
)

func (k AttributeKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindRGB:
		return "rgb"
	case KindMap:
		return "map"
	}
	return "invalid"
}

func kindFromName(name string) (AttributeKind, bool) {
	switch name {
	case "value":
		return KindValue, true
	case "rgb":
		return KindRGB, true
	case "map":
		return KindMap, true
	}
	return KindValue, false
}

// An attribute is a constant value, a constant color or a texture map. Map
// attributes keep their value and color which the renderer uses as the
// fallback when the bitmap cannot be loaded.
//
// In JSON an attribute is either a number, a 3 element color array or an
// object with the optional keys kind, value, rgb and map. When kind is
// omitted it is inferred: map if a map is given, else rgb, else value.
type Attribute struct {
	Kind  AttributeKind
	Value float64
	RGB   types.RGB
	Map   *texture.Texture
}

// Create a constant value attribute.
func Value(v float64) Attribute {
	return Attribute{Kind: KindValue, Value: v}
}

// Create a constant color attribute.
func RGB(c types.RGB) Attribute {
	return Attribute{Kind: KindRGB, RGB: c}
}

// Create a texture map attribute.
func Map(t *texture.Texture, fallback float64) Attribute {
	return Attribute{Kind: KindMap, Map: t, Value: fallback}
}

func (a *Attribute) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attribute")
	}

	switch data[0] {
	case '[':
		var c types.RGB
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("attribute color: %v", err)
		}
		*a = RGB(c)
		return nil
	case '{':
		var obj struct {
			Kind  string           `json:"kind"`
			Value *float64         `json:"value"`
			RGB   *types.RGB       `json:"rgb"`
			Map   *texture.Texture `json:"map"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("attribute: %v", err)
		}

		var out Attribute
		if obj.Value != nil {
			out.Value = *obj.Value
		}
		if obj.RGB != nil {
			out.RGB = *obj.RGB
		}
		out.Map = obj.Map

		switch {
		case obj.Kind != "":
			kind, ok := kindFromName(obj.Kind)
			if !ok {
				return fmt.Errorf("attribute: unknown kind %q", obj.Kind)
			}
			out.Kind = kind
		case obj.Map != nil:
			out.Kind = KindMap
		case obj.RGB != nil:
			out.Kind = KindRGB
		default:
			out.Kind = KindValue
		}
		*a = out
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("attribute value: %v", err)
	}
	*a = Value(v)
	return nil
}

// Validate the attribute texture, if any.
func (a Attribute) Validate() error {
	if a.Map != nil {
		return a.Map.Validate()
	}
	return nil
}

// Convert to the renderer attribute. A map attribute without a texture is
// emitted as a bitmap attribute without a texture map, matching the host
// behavior when the bitmap path is unresolved.
func (a Attribute) SceneAttribute() scene.Attribute {
	var out scene.Attribute
	switch a.Kind {
	case KindRGB:
		out = scene.RGBAttribute(a.RGB)
	case KindMap:
		out = scene.Attribute{ActiveType: scene.MapTypeBitmap}
		if a.Map != nil {
			out.TextureMap = a.Map.Map()
		}
	default:
		out = scene.ValueAttribute(a.Value)
	}
	out.Value = a.Value
	out.RGB = a.RGB
	return out
}
