package listing

// Attribute names referenced by search predicates and the store schema.
const (
	FieldTitle        = "title"
	FieldContent      = "content"
	FieldCategory     = "category"
	FieldStatus       = "status"
	FieldLocation     = "location"
	FieldCircleRadius = "circle_radius"
	FieldCreatedAt    = "created_at"
	FieldLastSeen     = "last_seen"
	FieldPromoActive  = "promo_active"
	FieldPromoExpires = "promo_expires"
	FieldViews        = "views"
	FieldImages       = "images"
)
