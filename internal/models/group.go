package models

// HabitGroup is an optional named container for habits. A group exists
// independently of whether any habit references it.
type HabitGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Order int    `json:"order"`
}
