package load

// EntityType is the sys.type marker carried by content-type descriptors.
const EntityType = "ContentType"

// Export is the top-level structure of a space export. Only the content
// types are read; entries, assets and locales are ignored.
type Export struct {
	ContentTypes []*ContentType `json:"contentTypes" yaml:"contentTypes"`
}

// Sys holds the system properties of a content type.
type Sys struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// ContentType represents one entity definition loaded from a schema export.
type ContentType struct {
	Sys          Sys      `json:"sys" yaml:"sys"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayField string   `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields       []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field represents one field of a content type. Type is the raw field kind
// (Symbol, Text, Integer, Number, Date, Boolean, Object, Location, RichText,
// Link or Array) and is interpreted by the field renderer only.
type Field struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Type        string       `json:"type" yaml:"type"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Omitted     bool         `json:"omitted,omitempty" yaml:"omitted,omitempty"`
	Disabled    bool         `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Localized   bool         `json:"localized,omitempty" yaml:"localized,omitempty"`
	LinkType    string       `json:"linkType,omitempty" yaml:"linkType,omitempty"`
	Items       *Items       `json:"items,omitempty" yaml:"items,omitempty"`
	Validations []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Items describes the element type of an Array field.
type Items struct {
	Type        string       `json:"type" yaml:"type"`
	LinkType    string       `json:"linkType,omitempty" yaml:"linkType,omitempty"`
	Validations []Validation `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Validation holds the subset of field validations that affect the
// generated types. Other validation kinds are decoded and dropped.
type Validation struct {
	In              []any    `json:"in,omitempty" yaml:"in,omitempty"`
	LinkContentType []string `json:"linkContentType,omitempty" yaml:"linkContentType,omitempty"`
}

// IsEntity reports whether the descriptor carries the content-type marker.
func (ct *ContentType) IsEntity() bool {
	return ct != nil && ct.Sys.Type == EntityType
}

// InValues returns the allowed literal values of the field, or nil when no
// "in" validation is present.
func InValues(vs []Validation) []any {
	for _, v := range vs {
		if len(v.In) > 0 {
			return v.In
		}
	}
	return nil
}

// LinkContentTypes returns the content type ids an entry link may point to.
func LinkContentTypes(vs []Validation) []string {
	for _, v := range vs {
		if len(v.LinkContentType) > 0 {
			return v.LinkContentType
		}
	}
	return nil
}
