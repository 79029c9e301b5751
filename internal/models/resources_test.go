package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, "/presets/P1", ResourcePath(PresetsPath, "P1"))
	assert.Equal(t, "/libraries/L1/thumbnail", SubresourcePath(LibrariesPath, "L1", "thumbnail"))
	assert.Equal(t, "/equipment/pipe/E1", EquipmentItemPath(CategoryPipe, "E1"))
	assert.Equal(t, "/equipment/machine/E2/files/rvt", EquipmentFilePath(CategoryMachine, "E2", FileRVT))
	assert.Equal(t, "/structures/S1/files/symbol", StructureFilePath("S1", FileSymbol))
}

func TestPaths_EscapeIDs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"slash", ResourcePath(FilesPath, "../projects/P1"), "/files/..%2Fprojects%2FP1"},
		{"query", ResourcePath(FilesPath, "T1?purge=all"), "/files/T1%3Fpurge=all"},
		{"fragment", ResourcePath(FormulasPath, "F1#x"), "/formulas/F1%23x"},
		{"parent segment", ResourcePath(PresetsPath, ".."), "/presets/%2E%2E"},
		{"current segment", ResourcePath(PresetsPath, "."), "/presets/%2E"},
		{"space", ResourcePath(ClientsPath, "C 1"), "/clients/C%201"},
		{"equipment id", EquipmentItemPath(CategoryPipe, "E1/../E2"), "/equipment/pipe/E1%2F..%2FE2"},
		{"nested", SubresourcePath(LibrariesPath, "L1/x", "model"), "/libraries/L1%2Fx/model"},
		{"structure file", StructureFilePath("S1?a", FileModel), "/structures/S1%3Fa/files/model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestParseEquipmentCategory(t *testing.T) {
	c, err := ParseEquipmentCategory(" Electrical ")
	require.NoError(t, err)
	assert.Equal(t, CategoryElectrical, c)

	_, err = ParseEquipmentCategory("hvac")
	assert.Error(t, err)
}
