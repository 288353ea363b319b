package domain

const DefaultCardColor Color = "#ffffff"

type Card struct {
	Id      CardId    `json:"id"`
	BoardId BoardId   `json:"boardId"`
	Title   CardTitle `json:"title"`
	Color   Color     `json:"color"`
	Items   []Item    `json:"items"`
}

type CardCreationData struct {
	BoardId BoardId
	Title   CardTitle
	Color   Color
}
