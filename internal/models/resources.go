package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Keys under which resource IDs appear in downstream responses and in
// orchestration results.
const (
	ClientIDKey     = "client_id"
	SiteIDKey       = "site_id"
	ProjectIDKey    = "project_id"
	PresetIDKey     = "preset_id"
	LibraryIDKey    = "library_id"
	EquipmentIDKey  = "equipment_id"
	StructureIDKey  = "structure_id"
	FileIDKey       = "file_id"
	ThumbnailIDKey  = "thumbnail_id"
	ModelIDKey      = "model_id"
	AttachmentIDKey = "attachment_id"
	FormulaIDKey    = "formula_id"
)

// Downstream collection paths.
const (
	ClientsPath    = "/clients/"
	SiteInfoPath   = "/site-info/"
	ProjectsPath   = "/projects/"
	PresetsPath    = "/presets/"
	LibrariesPath  = "/libraries/"
	EquipmentPath  = "/equipment/"
	StructuresPath = "/structures/"
	FilesPath      = "/files/"
	FormulasPath   = "/formulas/"
	UploadPath     = "/upload"

	PresetDetailSwapPath = "/presets/details/swap-order"
)

// PathSegment escapes id as exactly one URL path segment. Dot segments are
// percent-encoded as well so an ID never addresses a parent collection.
func PathSegment(id string) string {
	if id == "." || id == ".." {
		return strings.ReplaceAll(id, ".", "%2E")
	}
	return url.PathEscape(id)
}

// ResourcePath joins a collection path and an ID, e.g. ("/presets/", "P1") -> "/presets/P1".
func ResourcePath(collection, id string) string {
	return strings.TrimSuffix(collection, "/") + "/" + PathSegment(id)
}

// SubresourcePath builds e.g. "/libraries/L1/thumbnail".
func SubresourcePath(collection, id, sub string) string {
	return ResourcePath(collection, id) + "/" + sub
}

// FileKind names a file artifact attached to a catalog entry.
type FileKind string

const (
	FileModel     FileKind = "model"
	FileThumbnail FileKind = "thumbnail"
	FileSymbol    FileKind = "symbol"
	FileRFA       FileKind = "rfa"
	FileRVT       FileKind = "rvt"
	FileFormula   FileKind = "formula"
)

// EquipmentFileKinds is the fixed upload order for equipment updates.
var EquipmentFileKinds = []FileKind{FileModel, FileThumbnail, FileSymbol, FileRFA, FileRVT}

// StructureFileKinds is the fixed upload order for structure updates.
var StructureFileKinds = []FileKind{FileModel, FileThumbnail, FileSymbol}

// EquipmentCategory partitions the equipment catalog.
type EquipmentCategory string

const (
	CategoryMachine     EquipmentCategory = "machine"
	CategoryElectrical  EquipmentCategory = "electrical"
	CategoryPipe        EquipmentCategory = "pipe"
	CategoryMeasurement EquipmentCategory = "measurement"
)

func ParseEquipmentCategory(s string) (EquipmentCategory, error) {
	switch c := EquipmentCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryMachine, CategoryElectrical, CategoryPipe, CategoryMeasurement:
		return c, nil
	default:
		return "", fmt.Errorf("unknown equipment category %q", s)
	}
}

// EquipmentItemPath is the downstream path of one equipment record.
func EquipmentItemPath(category EquipmentCategory, id string) string {
	return EquipmentPath + PathSegment(string(category)) + "/" + PathSegment(id)
}

// EquipmentFilePath is the upload path of one file kind of an equipment record.
func EquipmentFilePath(category EquipmentCategory, id string, kind FileKind) string {
	return EquipmentItemPath(category, id) + "/files/" + string(kind)
}

// StructureFilePath is the upload path of one file kind of a structure.
func StructureFilePath(id string, kind FileKind) string {
	return SubresourcePath(StructuresPath, id, "files/"+string(kind))
}
