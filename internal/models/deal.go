package models

import "time"

// Deal es una promoción con hora de fin absoluta
type Deal struct {
	ID         int       `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	ProductIDs []int     `json:"products" yaml:"products"`
	EndTime    time.Time `json:"end_time" yaml:"endTime"`
}
