package dto

// TrackPageViewRequest is the body of POST /page-views.
type TrackPageViewRequest struct {
	Path      string `json:"path" binding:"required,max=512"`
	VisitorID string `json:"visitorId" binding:"omitempty,max=64"`
}
