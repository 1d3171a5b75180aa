package dto

import (
	domainproperty "dreamstay/internal/domain/property"
)

type PropertyDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	IsApproved  bool     `json:"is_approved"`
	PhotoURLs   []string `json:"photo_urls,omitempty"`
}

type PropertyCollection struct {
	HostID int64         `json:"host_id"`
	Items  []PropertyDTO `json:"items"`
}

func MapProperty(p *domainproperty.Property) PropertyDTO {
	return PropertyDTO{
		ID:          p.ID,
		Title:       p.Title,
		Location:    p.Location,
		Description: p.Description,
		IsApproved:  p.IsApproved,
		PhotoURLs:   append([]string(nil), p.PhotoURLs...),
	}
}

func MapProperties(hostID int64, props []domainproperty.Property) PropertyCollection {
	items := make([]PropertyDTO, 0, len(props))
	for i := range props {
		items = append(items, MapProperty(&props[i]))
	}
	return PropertyCollection{HostID: hostID, Items: items}
}
