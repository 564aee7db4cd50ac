package types

// ShowRequest represents a request to show a panel
type ShowRequest struct {
	Kind          Kind                   `json:"kind" binding:"required"`
	Instance      string                 `json:"instance,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	DestroyOnHide bool                   `json:"destroy_on_hide,omitempty"`
}

// HideRequest represents a request to hide one or all panels of a kind
type HideRequest struct {
	Kind     Kind   `json:"kind" binding:"required"`
	Instance string `json:"instance,omitempty"`
}

// SendRequest represents a data delivery request for a specific panel key
type SendRequest struct {
	Key     string                 `json:"key" binding:"required"`
	Payload map[string]interface{} `json:"payload" binding:"required"`
}

// BroadcastRequest represents a data delivery request for every panel of a kind
type BroadcastRequest struct {
	Kind    Kind                   `json:"kind" binding:"required"`
	Payload map[string]interface{} `json:"payload" binding:"required"`
}
