package extract

// ColumnDescriptor describes one table column as declared in a schema
// payload. Immutable for the duration of that table's processing.
type ColumnDescriptor struct {
	Name        string
	Type        string
	TypeOptions map[string]any
}

// Column types with dedicated normalization rules. Anything else falls
// through to the generic fallback in NormalizeCell.
const (
	TypeRichText           = "richText"
	TypeText               = "text"
	TypeSelect             = "select"
	TypeMultiSelect        = "multiSelect"
	TypeCheckbox           = "checkbox"
	TypeMultipleAttachment = "multipleAttachment"
	TypeNumber             = "number"
	TypeCount              = "count"
	TypeAutoNumber         = "autoNumber"
	TypeFormula            = "formula"
	TypeURL                = "url"
	TypeUnknown            = "unknown"
)

// BuildColumnMap maps column IDs to their descriptors. Missing fields
// default to empty strings; there is no failure path.
func BuildColumnMap(schema map[string]any) map[string]ColumnDescriptor {
	colMap := make(map[string]ColumnDescriptor)
	for _, raw := range asList(schema["columns"]) {
		col := asMap(raw)
		colMap[asString(col["id"])] = ColumnDescriptor{
			Name:        asString(col["name"]),
			Type:        asString(col["type"]),
			TypeOptions: asMap(col["typeOptions"]),
		}
	}
	return colMap
}

// BuildSelectMap maps select option IDs to their display labels, restricted
// to columns of type select/multiSelect. Option storage may be an id→object
// mapping or a list of {id,name} objects; both are accepted.
func BuildSelectMap(schema map[string]any) map[string]string {
	selectMap := make(map[string]string)
	for _, raw := range asList(schema["columns"]) {
		col := asMap(raw)
		colType := asString(col["type"])
		if colType != TypeSelect && colType != TypeMultiSelect {
			continue
		}
		choices := asMap(col["typeOptions"])["choices"]
		switch options := choices.(type) {
		case map[string]any:
			for _, optID := range sortedMapKeys(options) {
				if optData, ok := options[optID].(map[string]any); ok {
					if name, ok := optData["name"]; ok {
						selectMap[optID] = stringify(name)
					} else {
						selectMap[optID] = optID
					}
				} else {
					selectMap[optID] = stringify(options[optID])
				}
			}
		case []any:
			for _, rawOpt := range options {
				if opt, ok := rawOpt.(map[string]any); ok {
					selectMap[asString(opt["id"])] = asString(opt["name"])
				}
			}
		}
	}
	return selectMap
}
