package models

// PortalOverride customizes how a property is syndicated to one portal
type PortalOverride struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	HidePrice   bool    `json:"hide_price"`
	HideAddress bool    `json:"hide_address"`
	Keywords    *string `json:"keywords,omitempty"`
}

// PortalConfig maps a portal identifier to its override record
type PortalConfig map[string]PortalOverride

// Portal is an entry of the syndication catalog
type Portal struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	LogoURL string `yaml:"logo_url" json:"logo_url"`
}
