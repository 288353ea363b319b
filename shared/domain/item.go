package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Item struct {
	Id          ItemId    `json:"id"`
	CardId      CardId    `json:"cardId"`
	Title       ItemTitle `json:"title"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedTime Timestamp `json:"createdTime"`
}

type ItemCreationData struct {
	CardId   CardId
	Title    ItemTitle
	Priority Priority
}

// ItemPatch carries the fields of an item update; nil means untouched.
type ItemPatch struct {
	Completed *bool
	Priority  *Priority
}

func (p ItemPatch) IsEmpty() bool {
	return p.Completed == nil && p.Priority == nil
}

type Page struct {
	Limit  int
	Offset int
}
