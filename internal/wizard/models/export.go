package models

// ============================================================
// Export Model
// ============================================================

type Export struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	FileName  string `json:"file_name"`
	Path      string `json:"-"`
	Stats     Stats  `json:"stats"`
	Caption   string `json:"caption"`
	CreatedAt string `json:"created_at"`
}
