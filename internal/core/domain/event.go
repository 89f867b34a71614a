package domain

import "time"

// EventType names something that happened in the marketplace.
type EventType string

const (
	EventListingCreated   EventType = "listing.created"
	EventListingUpdated   EventType = "listing.updated"
	EventListingDeleted   EventType = "listing.deleted"
	EventListingPremium   EventType = "listing.premium"
	EventPremiumRequested EventType = "premium.requested"
	EventPremiumReviewed  EventType = "premium.reviewed"
	EventPageViewed       EventType = "page.viewed"
)

// Event streams, used to route events to subscribers.
const (
	StreamListings = "listings"
	StreamVisitors = "visitors"
)

// Event is a marketplace notification fanned out to live subscribers and the message bus.
type Event struct {
	Type       EventType `json:"type"`
	ListingID  string    `json:"listingID,omitempty"`
	UserID     string    `json:"userID,omitempty"`
	RequestID  string    `json:"requestID,omitempty"`
	Path       string    `json:"path,omitempty"`
	VisitorID  string    `json:"visitorID,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Stream returns the stream the event belongs to.
func (e Event) Stream() string {
	if e.Type == EventPageViewed {
		return StreamVisitors
	}
	return StreamListings
}

// Key is the partitioning key used on the message bus.
func (e Event) Key() string {
	switch {
	case e.ListingID != "":
		return e.ListingID
	case e.VisitorID != "":
		return e.VisitorID
	default:
		return e.UserID
	}
}
