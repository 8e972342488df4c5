package registry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockType identifies the material of a single voxel cell.
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
	Bedrock
	Water
	Sand
	Snow
	Wood
	Leaves
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	Cobblestone
	Planks
	Glass

	numBlockTypes
)

// FaceColors holds the shading colors of a block. Top and Bottom are used for
// the +Y/-Y faces, Side for the four horizontal faces.
type FaceColors struct {
	Top    mgl32.Vec3
	Bottom mgl32.Vec3
	Side   mgl32.Vec3
}

// Properties defines the static data of a block type
type Properties struct {
	Name        string
	Solid       bool
	Transparent bool
	// Negative hardness means the block cannot be mined.
	Hardness float32
	Colors   FaceColors
}

// Unknown is returned for block IDs that have no registered definition.
var Unknown = Properties{
	Name:     "unknown",
	Solid:    true,
	Hardness: 1.0,
	Colors:   uniform(rgb(0x8A8A8A)),
}

var (
	blocks     [numBlockTypes]Properties
	registered [numBlockTypes]bool
	blockNames = make(map[string]BlockType, numBlockTypes)
)

func register(id BlockType, def Properties) {
	blocks[id] = def
	registered[id] = true
	blockNames[def.Name] = id
}

func init() {
	register(Air, Properties{
		Name:        "air",
		Solid:       false,
		Transparent: true,
	})

	register(Grass, Properties{
		Name:     "grass",
		Solid:    true,
		Hardness: 0.6,
		Colors: FaceColors{
			Top:    rgb(0x5FA83A),
			Bottom: rgb(0x79553A),
			Side:   rgb(0x6E8B3D),
		},
	})

	register(Dirt, Properties{
		Name:     "dirt",
		Solid:    true,
		Hardness: 0.5,
		Colors:   uniform(rgb(0x79553A)),
	})

	register(Stone, Properties{
		Name:     "stone",
		Solid:    true,
		Hardness: 1.5,
		Colors:   uniform(rgb(0x7D7D7D)),
	})

	// Bedrock
	register(Bedrock, Properties{
		Name:     "bedrock",
		Solid:    true,
		Hardness: -1.0,
		Colors:   uniform(rgb(0x353535)),
	})

	// Players move through water and it is rendered see-through.
	register(Water, Properties{
		Name:        "water",
		Solid:       false,
		Transparent: true,
		Hardness:    -1.0,
		Colors:      uniform(rgb(0x2F5FD0)),
	})

	register(Sand, Properties{
		Name:     "sand",
		Solid:    true,
		Hardness: 0.5,
		Colors:   uniform(rgb(0xDBCF8E)),
	})

	register(Snow, Properties{
		Name:     "snow",
		Solid:    true,
		Hardness: 0.2,
		Colors: FaceColors{
			Top:    rgb(0xF0FAFA),
			Bottom: rgb(0x79553A),
			Side:   rgb(0xD8E4E4),
		},
	})

	register(Wood, Properties{
		Name:     "wood",
		Solid:    true,
		Hardness: 2.0,
		Colors: FaceColors{
			Top:    rgb(0xA0824E),
			Bottom: rgb(0xA0824E),
			Side:   rgb(0x6B5130),
		},
	})

	register(Leaves, Properties{
		Name:        "leaves",
		Solid:       true,
		Transparent: true,
		Hardness:    0.2,
		Colors:      uniform(rgb(0x3C8C28)),
	})

	// Ores
	register(CoalOre, Properties{
		Name:     "coal_ore",
		Solid:    true,
		Hardness: 3.0,
		Colors:   uniform(rgb(0x4A4A4A)),
	})
	register(IronOre, Properties{
		Name:     "iron_ore",
		Solid:    true,
		Hardness: 3.0,
		Colors:   uniform(rgb(0xA88D7A)),
	})
	register(GoldOre, Properties{
		Name:     "gold_ore",
		Solid:    true,
		Hardness: 3.0,
		Colors:   uniform(rgb(0xD9C34A)),
	})
	register(DiamondOre, Properties{
		Name:     "diamond_ore",
		Solid:    true,
		Hardness: 3.0,
		Colors:   uniform(rgb(0x5DDCD2)),
	})

	// Placeable only, never generated.
	register(Cobblestone, Properties{
		Name:     "cobblestone",
		Solid:    true,
		Hardness: 2.0,
		Colors:   uniform(rgb(0x6A6A6A)),
	})
	register(Planks, Properties{
		Name:     "planks",
		Solid:    true,
		Hardness: 2.0,
		Colors:   uniform(rgb(0xB08F55)),
	})
	register(Glass, Properties{
		Name:        "glass",
		Solid:       true,
		Transparent: true,
		Hardness:    0.3,
		Colors:      uniform(rgb(0xC8E6F0)),
	})
}

// Lookup returns the properties of a block type. IDs without a definition
// fall back to Unknown.
func Lookup(bt BlockType) Properties {
	if int(bt) >= len(blocks) || !registered[bt] {
		return Unknown
	}
	return blocks[bt]
}

// IsSolid reports whether the block type blocks movement.
func IsSolid(bt BlockType) bool {
	return Lookup(bt).Solid
}

// HidesNeighborFace reports whether a face adjacent to bt is occluded.
func HidesNeighborFace(bt BlockType) bool {
	if bt == Air {
		return false
	}
	return !Lookup(bt).Transparent
}

// IsBreakable reports whether the block can be mined.
func IsBreakable(bt BlockType) bool {
	if bt == Air {
		return false
	}
	return Lookup(bt).Hardness >= 0
}

// ByName resolves a registered block name such as "stone".
func ByName(name string) (BlockType, bool) {
	bt, ok := blockNames[name]
	return bt, ok
}

// All returns every registered block type in ID order.
func All() []BlockType {
	out := make([]BlockType, 0, len(blocks))
	for i := range blocks {
		if registered[i] {
			out = append(out, BlockType(i))
		}
	}
	return out
}

func (bt BlockType) String() string {
	if int(bt) < len(blocks) && registered[bt] {
		return blocks[bt].Name
	}
	return Unknown.Name
}

func rgb(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xFF) / 255.0,
		float32((hex>>8)&0xFF) / 255.0,
		float32(hex&0xFF) / 255.0,
	}
}

func uniform(c mgl32.Vec3) FaceColors {
	return FaceColors{Top: c, Bottom: c, Side: c}
}
