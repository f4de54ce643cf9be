package models

import "wageconv.org/explorer/internal/results"

// CountryList is the payload of the country list endpoint.
type CountryList struct {
	Mode      string   `json:"mode"`
	Group     string   `json:"group"`
	Countries []string `json:"countries"`
}

func NewCountryList(mode results.Mode, group results.Group, countries []string) CountryList {
	if countries == nil {
		countries = []string{}
	}
	return CountryList{
		Mode:      mode.String(),
		Group:     group.String(),
		Countries: countries,
	}
}
