package models

type Team struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Competition ID     `json:"competition"`
	Users       []ID   `json:"user"`
}

func (t Team) Key() ID { return t.ID }

type TeamInput struct {
	Name        *string `json:"name,omitempty"`
	Competition ID      `json:"competition,omitempty"`
}
