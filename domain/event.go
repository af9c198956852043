package domain

// Actions carried by live-update events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TodoEvent describes a single todo mutation pushed to live-update
// subscribers. Deleted events carry only the identifier. UserID routes the
// event to the owner's subscribers and is not part of the wire payload.
type TodoEvent struct {
	Action string `json:"action"`
	Todo   *Todo  `json:"todo,omitempty"`
	TodoID string `json:"todoId,omitempty"`
	UserID string `json:"-"`
}
