package material

import (
	"encoding/json"
	"fmt"
)

// Subtype selects how a material is described.
type Subtype int

const (
	subtypeInvalid Subtype = iota
	SubtypeExternal
	SubtypeExtension
	SubtypeCustom
)

// Lookup subtype by its name.
func subtypeFromName(name string) Subtype {
	switch name {
	case "EXTERNAL":
		return SubtypeExternal
	case "EXTENSION":
		return SubtypeExtension
	case "CUSTOM":
		return SubtypeCustom
	}

	return subtypeInvalid
}

func (t Subtype) String() string {
	switch t {
	case SubtypeExternal:
		return "EXTERNAL"
	case SubtypeExtension:
		return "EXTENSION"
	case SubtypeCustom:
		return "CUSTOM"
	}

	return "invalid"
}

// Returned for materials whose declared subtype is not recognized.
type UnknownSubtypeError struct {
	Material string
	Subtype  string
}

func (e *UnknownSubtypeError) Error() string {
	return fmt.Sprintf("material %q: unknown subtype %q", e.Material, e.Subtype)
}

// ExtensionUse selects one of the renderer material presets.
type ExtensionUse int

const (
	useInvalid ExtensionUse = iota
	UseAGS
	UseOpaque
	UseTransparent
	UseMetal
	UseTranslucent
	UseCarPaint
	UseHair
	UseEmitter
)

// Lookup extension use by its name.
func extensionUseFromName(name string) ExtensionUse {
	switch name {
	case "AGS":
		return UseAGS
	case "OPAQUE":
		return UseOpaque
	case "TRANSPARENT":
		return UseTransparent
	case "METAL":
		return UseMetal
	case "TRANSLUCENT":
		return UseTranslucent
	case "CARPAINT":
		return UseCarPaint
	case "HAIR":
		return UseHair
	case "EMITTER":
		return UseEmitter
	}

	return useInvalid
}

func (u ExtensionUse) String() string {
	switch u {
	case UseAGS:
		return "AGS"
	case UseOpaque:
		return "OPAQUE"
	case UseTransparent:
		return "TRANSPARENT"
	case UseMetal:
		return "METAL"
	case UseTranslucent:
		return "TRANSLUCENT"
	case UseCarPaint:
		return "CARPAINT"
	case UseHair:
		return "HAIR"
	case UseEmitter:
		return "EMITTER"
	}

	return "invalid"
}

// The name of the renderer extension implementing the preset.
func (u ExtensionUse) ExtensionName() string {
	switch u {
	case UseAGS:
		return "AGS"
	case UseOpaque:
		return "Opaque"
	case UseTransparent:
		return "Transparent"
	case UseMetal:
		return "Metal"
	case UseTranslucent:
		return "Translucent"
	case UseCarPaint:
		return "Car Paint"
	case UseHair:
		return "Hair"
	}

	return ""
}

func (u *ExtensionUse) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if *u = extensionUseFromName(name); *u == useInvalid {
		return fmt.Errorf("unknown extension use %q", name)
	}
	return nil
}

func (u ExtensionUse) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
