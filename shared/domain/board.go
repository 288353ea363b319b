package domain

type Board struct {
	Id        BoardId    `json:"id"`
	Title     BoardTitle `json:"title"`
	CreatedAt Timestamp  `json:"createdAt"`
	Cards     []Card     `json:"cards"`
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Title BoardTitle
}
