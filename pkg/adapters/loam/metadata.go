package loam

// NodeMetadata is the frontmatter of a pathway document.
// The Markdown body becomes the node description.
type NodeMetadata struct {
	ID          int    `json:"id" yaml:"id" mapstructure:"id"`
	InterestID  int    `json:"interest_id" yaml:"interest_id" mapstructure:"interest_id"`
	PathwayType string `json:"type" yaml:"type" mapstructure:"type"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Status      string `json:"status" yaml:"status" mapstructure:"status"`

	// AdditionalInfo is decoded separately so hand-written files may use
	// loose types (e.g. quoted step ids).
	AdditionalInfo map[string]any `json:"additional_info,omitempty" yaml:"additional_info,omitempty" mapstructure:"additional_info"`
}
