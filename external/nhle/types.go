package nhle

import "strings"

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Roster rosterBlock `json:"roster"`
}

type rosterBlock struct {
	Roster []rosterItem `json:"roster"`
}

type rosterItem struct {
	Person personItem `json:"person"`
}

type personItem struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type peopleEnvelope struct {
	People []personDetails `json:"people"`
}

type personDetails struct {
	ID       int64        `json:"id"`
	FullName string       `json:"fullName"`
	Stats    []statsGroup `json:"stats"`
}

type statsGroup struct {
	Splits []statSplit `json:"splits"`
}

type statSplit struct {
	Season string    `json:"season"`
	Stat   statBlock `json:"stat"`
}

type statBlock struct {
	Games  int `json:"games"`
	Points int `json:"points"`
	Shots  int `json:"shots"`
}

// seasonSplit picks the split matching the requested season. The hydrated
// stats payload can carry stale splits around a season rollover, so a
// non-matching split is treated the same as no split at all.
func seasonSplit(groups []statsGroup, season string) (statSplit, bool) {
	for _, group := range groups {
		for _, split := range group.Splits {
			if strings.TrimSpace(split.Season) == season {
				return split, true
			}
		}
	}
	return statSplit{}, false
}
