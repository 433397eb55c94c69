package dto

// AccessResponse reports whether the caller may use a feature
type AccessResponse struct {
	Feature   string `json:"feature"`
	HasAccess bool   `json:"hasAccess"`
	Reason    string `json:"reason,omitempty"`
}
